package ratelimit

import (
	"context"
	"time"
)

// CounterStore is the shared counter backend. The store, not the service
// process, owns correctness of concurrent increments: Incr must be atomic
// across all instances sharing the store.
//
// Incr increments the counter for key, starting a new window of the given
// duration if the key does not exist, and returns the post-increment count
// plus the remaining window duration.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, remaining time.Duration, err error)
}
