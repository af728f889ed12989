package store

import (
	"context"
	"fmt"
	"time"

	"github.com/defai/walletgate/ports"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis implementation of the consumption ledger
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis store
func NewRedisStore(client *redis.Client) ports.Store {
	return &RedisStore{
		client: client,
		prefix: "walletgate:consumed:",
	}
}

// Consume marks a key as consumed in Redis
func (s *RedisStore) Consume(ctx context.Context, key string, ttl time.Duration) error {
	k := s.prefix + key

	// Set key with expiration
	if err := s.client.Set(ctx, k, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to consume key: %w", err)
	}

	return nil
}

// IsConsumed checks whether a key is marked consumed in Redis
func (s *RedisStore) IsConsumed(ctx context.Context, key string) (bool, error) {
	k := s.prefix + key

	// Check if key exists
	val, err := s.client.Exists(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check consumption: %w", err)
	}

	return val > 0, nil
}
