package audit

import (
	"context"

	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sam247/disclosurely-sub001/internal/disclosure/storage"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

// Logger records audit events. Audit writes are advisory: callers ignore the
// returned error for request-path events so a logging failure never fails
// the operation being audited.
type Logger interface {
	LogEvent(ctx context.Context, event *Event) error
}

type logger struct {
	store storage.DataStore
	clock time2.Clock
}

// NewLogger creates a store-backed audit logger.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewLogger(store storage.DataStore, clock time2.Clock) Logger {
	return &logger{
		store: store,
		clock: clock,
	}
}

// LogEvent persists one audit event, stamping time and ID when unset.
func (l *logger) LogEvent(ctx context.Context, event *Event) error {
	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = l.clock.Now()
	}

	storageEvent := &storage.AuditEvent{
		ID:             uuid.NewString(),
		Timestamp:      timestamp,
		EventType:      event.EventType,
		OrganizationID: event.OrganizationID,
		ReportID:       event.ReportID,
		Operation:      event.Operation,
		Result:         event.Result,
		Details:        event.Details,
		IPAddress:      event.IPAddress,
	}

	if err := l.store.SaveAuditEvent(ctx, storageEvent); err != nil {
		util.LogFromContext(ctx).Error().Err(err).Str("event_type", event.EventType).Msg("Failed to save audit event")
		return errors.Wrap(err, "failed to save audit event")
	}

	return nil
}
