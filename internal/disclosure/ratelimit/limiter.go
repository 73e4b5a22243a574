// Package ratelimit implements sliding-window admission control over a
// shared counter store.
//
// The limiter fails open: when the store is unreachable the request is
// admitted with a degraded decision. The anonymous submission channel may be
// a reporter's only avenue, so a store outage must never become a denial of
// service against legitimate reporters. Rate limiting here is a courtesy
// control, not a security boundary.
package ratelimit

import (
	"context"

	"github.com/dropbox/godropbox/time2"

	"github.com/sam247/disclosurely-sub001/internal/util"
)

// Limiter checks request admission against per-profile windows.
type Limiter struct {
	store CounterStore
	clock time2.Clock
}

// NewLimiter creates a limiter on the given counter store.
func NewLimiter(store CounterStore, clock time2.Clock) *Limiter {
	return &Limiter{
		store: store,
		clock: clock,
	}
}

// CheckLimit admits or denies one request for the identifier under the given
// profile. Store errors are logged and admitted (fail open).
func (l *Limiter) CheckLimit(ctx context.Context, identifier string, profile Profile) Decision {
	key := profile.Name + ":" + identifier

	count, remaining, err := l.store.Incr(ctx, key, profile.Window)
	if err != nil {
		util.LogFromContext(ctx).Warn().
			Err(err).
			Str("profile", profile.Name).
			Msg("Rate limit store unavailable, failing open")

		return Decision{
			Outcome: OutcomeDegradedAllowed,
			Allowed: true,
		}
	}

	resetAt := l.clock.Now().Add(remaining)

	left := profile.Limit - count
	if left < 0 {
		left = 0
	}

	if count > profile.Limit {
		return Decision{
			Outcome:   OutcomeDenied,
			Allowed:   false,
			Limit:     profile.Limit,
			Remaining: 0,
			ResetAt:   resetAt,
		}
	}

	return Decision{
		Outcome:   OutcomeAllowed,
		Allowed:   true,
		Limit:     profile.Limit,
		Remaining: left,
		ResetAt:   resetAt,
	}
}
