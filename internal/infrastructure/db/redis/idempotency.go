package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers which proposal an Idempotency-Key created.
// Key format: idem:proposal:<agent_id>:<client_key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis
// client. Keys expire after ttl, or 24h when ttl is not positive.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the proposal id stored for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember stores the proposal id for key. An existing entry is kept.
func (s *IdempotencyStore) Remember(ctx context.Context, key, proposalID string) error {
	if err := s.client.SetNX(ctx, s.key(key), proposalID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

// Replace stores the proposal id for key, overwriting any existing entry.
func (s *IdempotencyStore) Replace(ctx context.Context, key, proposalID string) error {
	if err := s.client.Set(ctx, s.key(key), proposalID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency replace: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(k string) string {
	return "idem:proposal:" + k
}
