package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the minimal cache surface the services depend on.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisStore implements Store on a Redis client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by Redis.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// LocalStore implements Store on the in-process MemoryStore.
type LocalStore struct {
	store *MemoryStore
}

// NewLocalStore creates a Store with no external dependency.
func NewLocalStore() *LocalStore {
	return &LocalStore{store: NewMemoryStore()}
}

func (s *LocalStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := s.store.Get(key)
	return value, ok, nil
}

func (s *LocalStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.store.Set(key, value, ttl)
	return nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	s.store.Delete(key)
	return nil
}
