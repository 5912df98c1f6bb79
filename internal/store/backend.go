package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("flow state not found")

// Backend persists one opaque blob per storage key.
type Backend interface {
	// Load returns ErrNotFound when nothing is stored under key.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
