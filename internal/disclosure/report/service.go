// Package report implements the submission pipeline: rate-limit gate, then
// advisory PII scan, then encryption, then a single atomic insert. Scan
// failures never abort a submission; encryption failures always do, because
// a report must never be persisted in plaintext.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sam247/disclosurely-sub001/internal/disclosure/audit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/crypto"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/pii"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/ratelimit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/storage"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

var (
	// ErrInvalidRequest covers everything the anonymous caller gets no
	// detail about: unknown link tokens, missing reports. Uniform on
	// purpose so the endpoint resists enumeration.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPersistence is surfaced when the storage write fails. The caller
	// sees a generic failure; detail goes to the server log only.
	ErrPersistence = errors.New("submission failed")
)

// RateLimitedError carries the limiter decision so the handler can emit
// Retry-After and the X-RateLimit headers.
type RateLimitedError struct {
	Decision ratelimit.Decision
}

func (e *RateLimitedError) Error() string {
	return "rate limit exceeded"
}

// SubmitRequest is one inbound report submission.
type SubmitRequest struct {
	OrgLinkToken     string
	ClientIdentifier string

	Title       string
	Description string
	Type        string
	Priority    string
	Tags        []string
}

// SubmitResult is returned to the reporter on success.
type SubmitResult struct {
	TrackingID string
	Status     string
	CreatedAt  time.Time
}

// View is a decrypted report for the recipient side.
type View struct {
	TrackingID  string
	Title       string
	Description string
	Type        string
	Priority    string
	Tags        []string
	PIIScan     storage.PIIScanSummary
	CreatedAt   time.Time
}

// Service is the submission orchestrator.
type Service interface {
	Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*View, error)
}

type service struct {
	store       storage.DataStore
	cryptoSvc   *crypto.Service
	scanner     *pii.Scanner
	limiter     *ratelimit.Limiter
	auditLogger audit.Logger
	clock       time2.Clock
}

// NewService creates the submission orchestrator.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewService(
	store storage.DataStore,
	cryptoSvc *crypto.Service,
	scanner *pii.Scanner,
	limiter *ratelimit.Limiter,
	auditLogger audit.Logger,
	clock time2.Clock,
) Service {
	return &service{
		store:       store,
		cryptoSvc:   cryptoSvc,
		scanner:     scanner,
		limiter:     limiter,
		auditLogger: auditLogger,
		clock:       clock,
	}
}

// Submit runs the pipeline for one report.
func (s *service) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	log := util.LogFromContext(ctx)

	decision := s.limiter.CheckLimit(ctx, req.ClientIdentifier, ratelimit.ProfileReportSubmission)
	if !decision.Allowed {
		_ = s.auditLogger.LogEvent(ctx, &audit.Event{
			EventType: audit.EventRateLimited,
			Operation: "submit_report",
			Result:    audit.ResultFailure,
			IPAddress: req.ClientIdentifier,
		})
		return nil, &RateLimitedError{Decision: decision}
	}

	organizationID, err := s.store.ResolveOrgLink(ctx, req.OrgLinkToken)
	if err != nil {
		if errors.Is(err, storage.ErrOrgLinkNotFound) {
			return nil, ErrInvalidRequest
		}
		log.Error().Err(err).Msg("Failed to resolve organization link")
		return nil, errors.Wrap(ErrInvalidRequest, "link resolution failed")
	}

	// Advisory scan: results become metadata next to the encrypted payload,
	// never a gate in front of it.
	scanResult := s.scanner.Scan(ctx, organizationID, req.Description)
	summary := scanResult.Summary()
	if summary.HasPII {
		log.Info().
			Int("high", summary.HighCount).
			Int("medium", summary.MediumCount).
			Int("low", summary.LowCount).
			Msg("PII detected in report submission")
	}

	envelope, err := s.cryptoSvc.Encrypt(organizationID, []byte(req.Description))
	if err != nil {
		if errors.Is(err, crypto.ErrConfiguration) {
			log.Error().Msg("Encryption secret missing, rejecting submission")
			return nil, err
		}
		log.Error().Err(err).Msg("Failed to encrypt report content")
		return nil, errors.Wrap(err, "encryption failed")
	}

	fingerprint, err := s.cryptoSvc.KeyFingerprint(organizationID)
	if err != nil {
		return nil, err
	}

	// The caller may have gone away while we encrypted; discard rather than
	// persist on a half-completed request.
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "request canceled before persistence")
	}

	now := s.clock.Now()
	record := &storage.Report{
		ID:               uuid.NewString(),
		OrganizationID:   organizationID,
		TrackingID:       newTrackingID(),
		Title:            req.Title,
		Type:             req.Type,
		Priority:         req.Priority,
		Tags:             req.Tags,
		EncryptedContent: envelope,
		KeyFingerprint:   fingerprint,
		PIIScan: storage.PIIScanSummary{
			HasPII:      summary.HasPII,
			HighCount:   summary.HighCount,
			MediumCount: summary.MediumCount,
			LowCount:    summary.LowCount,
			Categories:  summary.Categories,
		},
		CreatedAt: now,
	}

	if err := s.store.SaveReport(ctx, record); err != nil {
		log.Error().Err(err).Msg("Failed to persist report")
		return nil, ErrPersistence
	}

	_ = s.auditLogger.LogEvent(ctx, &audit.Event{
		EventType:      audit.EventReportSubmitted,
		OrganizationID: organizationID,
		ReportID:       record.ID,
		Operation:      "submit_report",
		Result:         audit.ResultSuccess,
		Details: map[string]interface{}{
			"has_pii":    summary.HasPII,
			"high_count": summary.HighCount,
		},
		IPAddress: req.ClientIdentifier,
	})

	return &SubmitResult{
		TrackingID: record.TrackingID,
		Status:     "submitted",
		CreatedAt:  now,
	}, nil
}

// GetByTrackingID loads and decrypts one report. Decryption failures surface
// as crypto.ErrDecryption: an authentication-tag mismatch means tenant
// isolation or data integrity is broken and must never look like an empty
// report.
func (s *service) GetByTrackingID(ctx context.Context, trackingID string) (*View, error) {
	record, err := s.store.GetReportByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			return nil, ErrInvalidRequest
		}
		util.LogFromContext(ctx).Error().Err(err).Msg("Failed to load report")
		return nil, errors.Wrap(ErrInvalidRequest, "report lookup failed")
	}

	plaintext, err := s.cryptoSvc.Decrypt(record.OrganizationID, record.EncryptedContent)
	if err != nil {
		if errors.Is(err, crypto.ErrDecryption) {
			util.LogFromContext(ctx).Error().
				Str("report_id", record.ID).
				Str("key_fingerprint", record.KeyFingerprint).
				Msg("Report decryption failed, possible tenant isolation violation or data corruption")

			_ = s.auditLogger.LogEvent(ctx, &audit.Event{
				EventType:      audit.EventDecryptFailed,
				OrganizationID: record.OrganizationID,
				ReportID:       record.ID,
				Operation:      "get_report",
				Result:         audit.ResultFailure,
			})
		}
		return nil, err
	}

	_ = s.auditLogger.LogEvent(ctx, &audit.Event{
		EventType:      audit.EventReportViewed,
		OrganizationID: record.OrganizationID,
		ReportID:       record.ID,
		Operation:      "get_report",
		Result:         audit.ResultSuccess,
	})

	return &View{
		TrackingID:  record.TrackingID,
		Title:       record.Title,
		Description: string(plaintext),
		Type:        record.Type,
		Priority:    record.Priority,
		Tags:        record.Tags,
		PIIScan:     record.PIIScan,
		CreatedAt:   record.CreatedAt,
	}, nil
}

// newTrackingID generates the reporter-facing follow-up code.
func newTrackingID() string {
	return fmt.Sprintf("DSC-%s", uuid.NewString())
}
