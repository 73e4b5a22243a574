package ratelimit

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "ratelimit:"

// RedisStore implements CounterStore on a shared Redis instance so multiple
// stateless service instances enforce the same limits.
type RedisStore struct {
	client    goredis.UniversalClient
	keyPrefix string
}

// NewRedisStore wraps an existing client. The caller retains ownership of
// the client.
func NewRedisStore(client goredis.UniversalClient, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}

	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

var _ CounterStore = (*RedisStore)(nil)

// Incr increments the window counter atomically. INCR carries the
// concurrency guarantee; the expiry is attached when the key is first
// created so the window slides from the first request.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	fullKey := s.keyPrefix + key

	count, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, 0, errors.Wrap(err, "redis: incr failed")
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, fullKey, window).Err(); err != nil {
			return 0, 0, errors.Wrap(err, "redis: pexpire failed")
		}
		return count, window, nil
	}

	ttl, err := s.client.PTTL(ctx, fullKey).Result()
	if err != nil {
		return 0, 0, errors.Wrap(err, "redis: pttl failed")
	}
	if ttl < 0 {
		// Key exists without expiry (e.g. PEXPIRE lost after a failover).
		// Reattach the window rather than leaking a permanent counter.
		if err := s.client.PExpire(ctx, fullKey, window).Err(); err != nil {
			return 0, 0, errors.Wrap(err, "redis: pexpire failed")
		}
		ttl = window
	}

	return count, ttl, nil
}
