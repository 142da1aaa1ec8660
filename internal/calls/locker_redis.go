package calls

import (
	"context"
	"time"

	"coaching-calendar/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisDayLocker serializes booking attempts across processes with a
// short-lived Redis mutex. The TTL keeps a crashed process from wedging
// bookings; the Postgres repository remains the authority either way.

type RedisDayLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDayLocker(rdb *redis.Client) *RedisDayLocker {
	return &RedisDayLocker{rdb: rdb, ttl: 10 * time.Second}
}

func (l *RedisDayLocker) Acquire(ctx context.Context, key string) (bool, error) {
	return utils.AcquireMutex(ctx, l.rdb, key, l.ttl)
}

func (l *RedisDayLocker) Release(ctx context.Context, key string) error {
	return utils.ReleaseMutex(ctx, l.rdb, key)
}
