// Package flags resolves per-organization feature flags. Lookups sit on the
// request path of every scan, so failures default to the safe value instead
// of propagating.
package flags

import (
	"context"

	"github.com/sam247/disclosurely-sub001/internal/disclosure/storage"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

// Lookup answers feature-flag questions for an organization.
type Lookup interface {
	IsAdvancedPIIEnabled(ctx context.Context, organizationID string) bool
}

type lookup struct {
	store storage.DataStore
}

// NewLookup creates a store-backed flag lookup.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewLookup(store storage.DataStore) Lookup {
	return &lookup{store: store}
}

// IsAdvancedPIIEnabled reports whether the external PII detector is enabled
// for the organization. Any lookup error means false: the scan must proceed
// on the legacy path, never block.
func (l *lookup) IsAdvancedPIIEnabled(ctx context.Context, organizationID string) bool {
	enabled, err := l.store.IsAdvancedPIIEnabled(ctx, organizationID)
	if err != nil {
		util.LogFromContext(ctx).Debug().Err(err).Msg("Feature flag lookup failed, defaulting to legacy detector")
		return false
	}

	return enabled
}
