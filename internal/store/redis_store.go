package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const RedisPrefix = "quote_bot" // default fallback

// RedisStorage implements Storage on a Redis instance. Each logical key is a
// single JSON blob stored under "<prefix>:<key>".
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage creates a new RedisStorage and verifies the connection.
func NewRedisStorage(url, prefix string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	if prefix == "" {
		prefix = RedisPrefix
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStorage{
		client: client,
		prefix: prefix,
	}, nil
}

func (s *RedisStorage) storageKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

// Get returns the serialized value for key, or ErrNotFound.
func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.storageKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

// Set writes the serialized value for key.
func (s *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.storageKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Close cleans up resources.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
