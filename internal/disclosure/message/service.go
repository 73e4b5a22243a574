// Package message handles the two-way anonymous thread attached to a report.
// Message bodies reuse the tenant envelope contract: one envelope per
// message, keyed by the parent report's organization.
package message

import (
	"context"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sam247/disclosurely-sub001/internal/disclosure/audit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/crypto"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/ratelimit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/report"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/storage"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

// ErrInvalidRequest mirrors the report service: unknown tracking IDs get the
// same generic answer as any other bad input.
var ErrInvalidRequest = errors.New("invalid request")

// SendRequest is one inbound thread message. Messaging is limited per
// tracking ID rather than per network address, so a reporter behind a
// changing address keeps one budget.
type SendRequest struct {
	TrackingID string
	Sender     string
	Body       string
}

// Item is a decrypted message.
type Item struct {
	ID        string
	Sender    string
	Body      string
	CreatedAt time.Time
}

// Service sends and lists report thread messages.
type Service interface {
	Send(ctx context.Context, req *SendRequest) (*Item, error)
	List(ctx context.Context, trackingID string) ([]*Item, error)
}

type service struct {
	store       storage.DataStore
	cryptoSvc   *crypto.Service
	limiter     *ratelimit.Limiter
	auditLogger audit.Logger
	clock       time2.Clock
}

// NewService creates the messaging service.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewService(
	store storage.DataStore,
	cryptoSvc *crypto.Service,
	limiter *ratelimit.Limiter,
	auditLogger audit.Logger,
	clock time2.Clock,
) Service {
	return &service{
		store:       store,
		cryptoSvc:   cryptoSvc,
		limiter:     limiter,
		auditLogger: auditLogger,
		clock:       clock,
	}
}

// Send encrypts and persists one message on the report's thread.
func (s *service) Send(ctx context.Context, req *SendRequest) (*Item, error) {
	log := util.LogFromContext(ctx)

	decision := s.limiter.CheckLimit(ctx, req.TrackingID, ratelimit.ProfileMessaging)
	if !decision.Allowed {
		return nil, &report.RateLimitedError{Decision: decision}
	}

	parent, err := s.store.GetReportByTrackingID(ctx, req.TrackingID)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			return nil, ErrInvalidRequest
		}
		log.Error().Err(err).Msg("Failed to load report for message")
		return nil, errors.Wrap(ErrInvalidRequest, "report lookup failed")
	}

	envelope, err := s.cryptoSvc.Encrypt(parent.OrganizationID, []byte(req.Body))
	if err != nil {
		if !errors.Is(err, crypto.ErrConfiguration) {
			err = errors.Wrap(err, "encryption failed")
		}
		log.Error().Err(err).Msg("Failed to encrypt message body")
		return nil, err
	}

	fingerprint, err := s.cryptoSvc.KeyFingerprint(parent.OrganizationID)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "request canceled before persistence")
	}

	now := s.clock.Now()
	record := &storage.Message{
		ID:             uuid.NewString(),
		ReportID:       parent.ID,
		OrganizationID: parent.OrganizationID,
		Sender:         req.Sender,
		EncryptedBody:  envelope,
		KeyFingerprint: fingerprint,
		CreatedAt:      now,
	}

	if err := s.store.SaveMessage(ctx, record); err != nil {
		log.Error().Err(err).Msg("Failed to persist message")
		return nil, report.ErrPersistence
	}

	_ = s.auditLogger.LogEvent(ctx, &audit.Event{
		EventType:      audit.EventMessageSent,
		OrganizationID: parent.OrganizationID,
		ReportID:       parent.ID,
		Operation:      "send_message",
		Result:         audit.ResultSuccess,
	})

	return &Item{
		ID:        record.ID,
		Sender:    record.Sender,
		Body:      req.Body,
		CreatedAt: now,
	}, nil
}

// List decrypts the full thread for a tracking ID. Decryption failure of any
// message fails the whole read; a partially garbled thread would hide an
// integrity problem.
func (s *service) List(ctx context.Context, trackingID string) ([]*Item, error) {
	parent, err := s.store.GetReportByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			return nil, ErrInvalidRequest
		}
		return nil, errors.Wrap(ErrInvalidRequest, "report lookup failed")
	}

	records, err := s.store.ListMessagesByReportID(ctx, parent.ID)
	if err != nil {
		util.LogFromContext(ctx).Error().Err(err).Msg("Failed to list messages")
		return nil, errors.Wrap(ErrInvalidRequest, "message listing failed")
	}

	items := make([]*Item, 0, len(records))
	for _, record := range records {
		plaintext, err := s.cryptoSvc.Decrypt(parent.OrganizationID, record.EncryptedBody)
		if err != nil {
			if errors.Is(err, crypto.ErrDecryption) {
				_ = s.auditLogger.LogEvent(ctx, &audit.Event{
					EventType:      audit.EventDecryptFailed,
					OrganizationID: parent.OrganizationID,
					ReportID:       parent.ID,
					Operation:      "list_messages",
					Result:         audit.ResultFailure,
				})
			}
			return nil, err
		}

		items = append(items, &Item{
			ID:        record.ID,
			Sender:    record.Sender,
			Body:      string(plaintext),
			CreatedAt: record.CreatedAt,
		})
	}

	return items, nil
}
