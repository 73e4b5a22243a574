package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/dropbox/godropbox/time2"
)

// MemoryStore is an in-process CounterStore for development and tests. It
// does not share state across instances and must not be used in production
// multi-instance deployments.
type MemoryStore struct {
	clock time2.Clock

	mu       sync.Mutex
	counters map[string]*memoryCounter
}

type memoryCounter struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryStore creates an in-process store using the given clock.
func NewMemoryStore(clock time2.Clock) *MemoryStore {
	return &MemoryStore{
		clock:    clock,
		counters: make(map[string]*memoryCounter),
	}
}

var _ CounterStore = (*MemoryStore)(nil)

// Incr increments the window counter, starting a fresh window when the key
// is absent or its previous window has expired.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || !c.expiresAt.After(now) {
		c = &memoryCounter{expiresAt: now.Add(window)}
		s.counters[key] = c
	}

	c.count++

	return c.count, c.expiresAt.Sub(now), nil
}
