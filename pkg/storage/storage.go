// Package storage models the durable client-local key-value store that holds
// the serialized cart. Values are opaque strings written whole; there is no
// partial update and the last write wins.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by GetItem when the key has never been written
	// or was removed.
	ErrNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is returned when a write would exceed the backend's capacity.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
	// ErrUnavailable is returned when the backend is disabled or unreachable.
	ErrUnavailable = errors.New("storage: unavailable")
)

// Storage is a named-slot key-value store.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
