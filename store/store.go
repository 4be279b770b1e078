// Package store defines the key-value capability used to persist session state.
//
// Backends live in sub-packages: memory, file, bolt, db (gorm) and redis.
// All of them are safe for concurrent use.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value
var ErrNotFound = errors.New("store: key not found")

// Store persists string values by key
type Store interface {
	// Get returns the value for key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes the keys; missing keys are not an error
	Delete(ctx context.Context, keys ...string) error

	// Close releases the backend
	Close() error
}
