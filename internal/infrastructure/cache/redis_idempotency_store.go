package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bizledger/backend/internal/domain/shared"
)

// DefaultIdempotencyKeyPrefix namespaces request keys in Redis
const DefaultIdempotencyKeyPrefix = "bizledger:idempotency:"

// RedisIdempotencyStore implements IdempotencyStore using Redis, so several
// server instances share one view of accepted request keys
type RedisIdempotencyStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ownClient bool
}

// NewRedisIdempotencyStore wraps an existing client. Close does not close a
// client it did not open.
func NewRedisIdempotencyStore(client redis.UniversalClient, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = DefaultIdempotencyKeyPrefix
	}
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// MarkProcessed uses SETNX so concurrent replays see exactly one winner
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark request key: %w", err)
	}
	return ok, nil
}

// IsProcessed checks if a key is present
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check request key: %w", err)
	}
	return n > 0, nil
}

// Release deletes key
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release request key: %w", err)
	}
	return nil
}

// Close releases the client when the store owns it
func (s *RedisIdempotencyStore) Close() error {
	if s.ownClient {
		return s.client.Close()
	}
	return nil
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
