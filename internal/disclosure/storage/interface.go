package storage

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrOrgLinkNotFound = errors.New("organization link not found")
)

// DataStore is the persistence boundary of the disclosure pipeline. All
// backend implementations must keep SaveReport and SaveMessage single atomic
// inserts; the orchestrator relies on that for its durability contract.
type DataStore interface {
	// Organization link registry
	ResolveOrgLink(ctx context.Context, linkToken string) (organizationID string, err error)

	// Reports
	SaveReport(ctx context.Context, report *Report) error
	GetReportByTrackingID(ctx context.Context, trackingID string) (*Report, error)

	// Messages
	SaveMessage(ctx context.Context, message *Message) error
	ListMessagesByReportID(ctx context.Context, reportID string) ([]*Message, error)

	// Feature flags
	IsAdvancedPIIEnabled(ctx context.Context, organizationID string) (bool, error)

	// Audit log
	SaveAuditEvent(ctx context.Context, event *AuditEvent) error
	QueryAuditEvents(ctx context.Context, filter *AuditEventFilter) ([]*AuditEvent, error)
}
