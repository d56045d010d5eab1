package store

import (
	"context"
	"sync"
)

// MemoryStorage is an in-memory implementation of Storage for testing.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStorage creates a new MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string][]byte),
	}
}

// Get returns the serialized value for key, or ErrNotFound.
func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}

	data := make([]byte, len(value))
	copy(data, value)
	return data, nil
}

// Set writes the serialized value for key.
func (s *MemoryStorage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]byte, len(value))
	copy(data, value)
	s.values[key] = data
	return nil
}

// Close no-op
func (s *MemoryStorage) Close() error {
	return nil
}
