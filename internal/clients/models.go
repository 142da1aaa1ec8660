package clients

import (
	"context"
	"errors"
)

// Client is a directory entry resolved at booking time. The scheduling side
// copies Name and Phone onto the call and never re-resolves them.

type Client struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Phone string `json:"phone" db:"phone"`
}

var ErrNotFound = errors.New("clients: not found")

// Directory is the lookup contract the booking flow depends on.
type Directory interface {
	Get(ctx context.Context, id string) (Client, error)
	List(ctx context.Context) ([]Client, error)
}
