package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// FileStorage implements Storage as one JSON file per key under a data
// directory. Writes take a file lock so two bot processes sharing the
// directory cannot interleave partial writes.
type FileStorage struct {
	dir      string
	fileLock *flock.Flock
}

// NewFileStorage ensures dir exists and prepares the write lock.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileStorage{
		dir:      dir,
		fileLock: flock.New(filepath.Join(dir, ".quote_bot.lock")),
	}, nil
}

func (s *FileStorage) filePath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the serialized value for key, or ErrNotFound.
func (s *FileStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.filePath(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set writes the serialized value for key under the file lock.
func (s *FileStorage) Set(ctx context.Context, key string, value []byte) error {
	lockCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	locked, err := s.fileLock.TryLockContext(lockCtx, 10*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire file lock for %s: %w", key, err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire file lock for %s", key)
	}
	defer s.fileLock.Unlock() //nolint:errcheck

	if err := os.WriteFile(s.filePath(key), value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close cleans up resources.
func (s *FileStorage) Close() error {
	return nil
}
