package store

import (
	"context"
	"errors"
)

// Logical keys the quote state is persisted under. The values are JSON blobs
// mapping user id to a newest-first array of message records.
const (
	CacheKey = "quoteMessageCache"
	StoreKey = "quoteMessageStore"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

// Storage defines the interface for the key-value persistence backends the
// quote state is saved to.
type Storage interface {
	// Get returns the serialized value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the serialized value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Close cleans up resources.
	Close() error
}
