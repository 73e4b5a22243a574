package pii

import (
	"context"

	"github.com/sam247/disclosurely-sub001/internal/util"
)

// FlagLookup decides per organization whether the external detector is
// enabled. Implementations must treat lookup failures as false.
type FlagLookup interface {
	IsAdvancedPIIEnabled(ctx context.Context, organizationID string) bool
}

// Scanner selects a detector backend per call and guarantees a usable result:
// external detector errors fall back to the pattern detector, and pattern
// detector errors degrade to an empty result. Scanning never blocks or fails
// a submission.
type Scanner struct {
	legacy   *PatternDetector
	external Backend
	flags    FlagLookup
}

// NewScanner creates a scanner. external and flags may be nil, in which case
// only the legacy pattern path is used.
func NewScanner(legacy *PatternDetector, external Backend, flags FlagLookup) *Scanner {
	return &Scanner{
		legacy:   legacy,
		external: external,
		flags:    flags,
	}
}

// Scan runs the appropriate backend for the organization and returns its
// result. All failure paths degrade instead of propagating.
func (s *Scanner) Scan(ctx context.Context, organizationID string, text string) Result {
	log := util.LogFromContext(ctx)

	if s.external != nil && s.flags != nil && s.flags.IsAdvancedPIIEnabled(ctx, organizationID) {
		res, err := s.external.Scan(ctx, text)
		if err == nil {
			return res
		}
		log.Warn().Err(err).Msg("External PII detector failed, falling back to pattern detector")
	}

	res, err := s.legacy.Scan(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("PII scan failed, continuing with empty result")
		return Result{}
	}

	return res
}
