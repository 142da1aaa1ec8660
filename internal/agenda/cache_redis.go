package agenda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache caches day views under a generation-stamped key. Invalidation
// bumps the generation instead of scanning for per-date keys; stale entries
// simply expire.

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

const genKey = "agenda:generation"

func NewRedisCache(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *RedisCache) key(ctx context.Context, date string) string {
	gen, err := c.rdb.Get(ctx, genKey).Int64()
	if err != nil && err != redis.Nil {
		// Fall back to an uncacheable generation so errors never serve
		// stale data.
		return ""
	}
	return fmt.Sprintf("agenda:%d:%s", gen, date)
}

func (c *RedisCache) Get(ctx context.Context, date string) (DayView, bool) {
	key := c.key(ctx, date)
	if key == "" {
		return DayView{}, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return DayView{}, false
	}
	var v DayView
	if err := json.Unmarshal(raw, &v); err != nil {
		c.log.Warn("agenda cache decode failed", "date", date, "err", err)
		return DayView{}, false
	}
	return v, true
}

func (c *RedisCache) Set(ctx context.Context, date string, v DayView) {
	key := c.key(ctx, date)
	if key == "" {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("agenda cache write failed", "date", date, "err", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, genKey).Err(); err != nil {
		c.log.Warn("agenda cache invalidate failed", "err", err)
	}
}
