package ratelimit

import "time"

// Profile names one operation class with its window and threshold. Each
// profile is keyed independently in the counter store.
type Profile struct {
	Name   string
	Window time.Duration
	Limit  int64
}

// The production profiles. Report submission and messaging are intentionally
// tight: those endpoints are anonymous and unauthenticated.
var (
	ProfileReportSubmission = Profile{Name: "report_submission", Window: 15 * time.Minute, Limit: 5}
	ProfileDomainOps        = Profile{Name: "domain_ops", Window: 10 * time.Second, Limit: 10}
	ProfileMessaging        = Profile{Name: "messaging", Window: time.Hour, Limit: 20}
	ProfileAuth             = Profile{Name: "auth", Window: 15 * time.Minute, Limit: 5}
	ProfileGeneralAPI       = Profile{Name: "general_api", Window: time.Minute, Limit: 60}
)

// Outcome distinguishes a genuine under-limit admission from a degraded one,
// so tests and operators can tell "under limit" apart from "store down,
// proceeding anyway".
type Outcome int

const (
	OutcomeAllowed Outcome = iota
	OutcomeDenied
	OutcomeDegradedAllowed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAllowed:
		return "allowed"
	case OutcomeDenied:
		return "denied"
	case OutcomeDegradedAllowed:
		return "degraded_allowed"
	default:
		return "unknown"
	}
}

// Decision is the result of one admission check.
type Decision struct {
	Outcome   Outcome
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RetryAfter returns the duration a denied client should wait.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.ResetAt.IsZero() || !d.ResetAt.After(now) {
		return 0
	}
	return d.ResetAt.Sub(now)
}
