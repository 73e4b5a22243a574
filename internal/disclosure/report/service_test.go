package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam247/disclosurely-sub001/internal/disclosure/audit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/crypto"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/pii"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/ratelimit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/report"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/storage"
)

// mockDataStore is an in-memory DataStore used across the service tests.
type mockDataStore struct {
	links    map[string]string
	reports  map[string]*storage.Report
	messages map[string][]*storage.Message
	events   []*storage.AuditEvent

	failSaveReport bool
}

func newMockDataStore() *mockDataStore {
	return &mockDataStore{
		links:    map[string]string{"link-token-1": "org-1"},
		reports:  make(map[string]*storage.Report),
		messages: make(map[string][]*storage.Message),
	}
}

func (m *mockDataStore) ResolveOrgLink(_ context.Context, linkToken string) (string, error) {
	if orgID, ok := m.links[linkToken]; ok {
		return orgID, nil
	}
	return "", storage.ErrOrgLinkNotFound
}

func (m *mockDataStore) SaveReport(_ context.Context, r *storage.Report) error {
	if m.failSaveReport {
		return errors.New("insert failed")
	}
	m.reports[r.TrackingID] = r
	return nil
}

func (m *mockDataStore) GetReportByTrackingID(_ context.Context, trackingID string) (*storage.Report, error) {
	if r, ok := m.reports[trackingID]; ok {
		return r, nil
	}
	return nil, storage.ErrReportNotFound
}

func (m *mockDataStore) SaveMessage(_ context.Context, msg *storage.Message) error {
	m.messages[msg.ReportID] = append(m.messages[msg.ReportID], msg)
	return nil
}

func (m *mockDataStore) ListMessagesByReportID(_ context.Context, reportID string) ([]*storage.Message, error) {
	return m.messages[reportID], nil
}

func (m *mockDataStore) IsAdvancedPIIEnabled(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (m *mockDataStore) SaveAuditEvent(_ context.Context, event *storage.AuditEvent) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockDataStore) QueryAuditEvents(_ context.Context, _ *storage.AuditEventFilter) ([]*storage.AuditEvent, error) {
	return m.events, nil
}

func (m *mockDataStore) eventTypes() []string {
	types := make([]string, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.EventType)
	}
	return types
}

type fixture struct {
	store   *mockDataStore
	crypto  *crypto.Service
	clock   *time2.MockClock
	service report.Service
}

func newFixture(t *testing.T, secret string) *fixture {
	t.Helper()

	store := newMockDataStore()
	cryptoSvc := crypto.NewService(secret)
	clock := time2.NewMockClock(time.Now())
	scanner := pii.NewScanner(pii.NewPatternDetector(pii.DetectorConfig{}), nil, nil)
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(clock), clock)
	auditLogger := audit.NewLogger(store, clock)

	return &fixture{
		store:   store,
		crypto:  cryptoSvc,
		clock:   clock,
		service: report.NewService(store, cryptoSvc, scanner, limiter, auditLogger, clock),
	}
}

func submitRequest() *report.SubmitRequest {
	return &report.SubmitRequest{
		OrgLinkToken:     "link-token-1",
		ClientIdentifier: "1.2.3.4",
		Title:            "Improper expense handling",
		Description:      "My email is jane@example.com, call me at 555-123-4567",
		Type:             "fraud",
		Priority:         "high",
		Tags:             []string{"finance"},
	}
}

func TestService_SubmitEncryptsAndRecordsScan(t *testing.T) {
	f := newFixture(t, "server-secret")
	ctx := context.Background()

	result, err := f.service.Submit(ctx, submitRequest())
	require.NoError(t, err)
	require.NotEmpty(t, result.TrackingID)
	assert.Equal(t, "submitted", result.Status)

	stored := f.store.reports[result.TrackingID]
	require.NotNil(t, stored)

	// Body must never be persisted in the clear.
	assert.NotContains(t, stored.EncryptedContent, "jane@example.com")
	assert.NotEmpty(t, stored.KeyFingerprint)

	// Scan metadata is persisted, the matched text is not.
	assert.True(t, stored.PIIScan.HasPII)
	assert.Equal(t, 2, stored.PIIScan.HighCount)
	assert.ElementsMatch(t, []string{"email", "phone"}, stored.PIIScan.Categories)

	// And the envelope decrypts back to the verbatim submission.
	plaintext, err := f.crypto.Decrypt("org-1", stored.EncryptedContent)
	require.NoError(t, err)
	assert.Equal(t, submitRequest().Description, string(plaintext))

	assert.Contains(t, f.store.eventTypes(), audit.EventReportSubmitted)
}

func TestService_SubmitUnknownLinkToken(t *testing.T) {
	f := newFixture(t, "server-secret")

	req := submitRequest()
	req.OrgLinkToken = "no-such-token"

	_, err := f.service.Submit(context.Background(), req)
	assert.True(t, errors.Is(err, report.ErrInvalidRequest))
	assert.Empty(t, f.store.reports)
}

func TestService_SubmitRateLimited(t *testing.T) {
	f := newFixture(t, "server-secret")
	ctx := context.Background()

	for i := int64(0); i < ratelimit.ProfileReportSubmission.Limit; i++ {
		_, err := f.service.Submit(ctx, submitRequest())
		require.NoError(t, err)
	}

	_, err := f.service.Submit(ctx, submitRequest())
	require.Error(t, err)

	var rateLimited *report.RateLimitedError
	require.True(t, errors.As(err, &rateLimited))
	assert.Equal(t, ratelimit.OutcomeDenied, rateLimited.Decision.Outcome)
	assert.Contains(t, f.store.eventTypes(), audit.EventRateLimited)

	// The window slides: after it passes, submission works again.
	f.clock.Advance(ratelimit.ProfileReportSubmission.Window + time.Second)
	_, err = f.service.Submit(ctx, submitRequest())
	assert.NoError(t, err)
}

func TestService_SubmitMissingSecretRejectsWithoutPersisting(t *testing.T) {
	f := newFixture(t, "")

	_, err := f.service.Submit(context.Background(), submitRequest())
	assert.True(t, errors.Is(err, crypto.ErrConfiguration))
	assert.Empty(t, f.store.reports)
}

func TestService_SubmitPersistenceFailure(t *testing.T) {
	f := newFixture(t, "server-secret")
	f.store.failSaveReport = true

	_, err := f.service.Submit(context.Background(), submitRequest())
	assert.True(t, errors.Is(err, report.ErrPersistence))
}

func TestService_SubmitCanceledContextDoesNotPersist(t *testing.T) {
	f := newFixture(t, "server-secret")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.Submit(ctx, submitRequest())
	require.Error(t, err)
	assert.Empty(t, f.store.reports)
}

func TestService_GetByTrackingID(t *testing.T) {
	f := newFixture(t, "server-secret")
	ctx := context.Background()

	result, err := f.service.Submit(ctx, submitRequest())
	require.NoError(t, err)

	view, err := f.service.GetByTrackingID(ctx, result.TrackingID)
	require.NoError(t, err)

	assert.Equal(t, result.TrackingID, view.TrackingID)
	assert.Equal(t, "Improper expense handling", view.Title)
	assert.Equal(t, submitRequest().Description, view.Description)
	assert.True(t, view.PIIScan.HasPII)

	assert.Contains(t, f.store.eventTypes(), audit.EventReportViewed)
}

func TestService_GetByTrackingIDNotFound(t *testing.T) {
	f := newFixture(t, "server-secret")

	_, err := f.service.GetByTrackingID(context.Background(), "DSC-missing")
	assert.True(t, errors.Is(err, report.ErrInvalidRequest))
}

func TestService_GetByTrackingIDDecryptionFailureIsLoud(t *testing.T) {
	f := newFixture(t, "server-secret")
	ctx := context.Background()

	result, err := f.service.Submit(ctx, submitRequest())
	require.NoError(t, err)

	// Corrupt the stored envelope; the read must fail with the decryption
	// sentinel, not an empty report.
	f.store.reports[result.TrackingID].EncryptedContent = "AAAAAAAAAAAAAAAAAAAAAAAAAAAA"

	_, err = f.service.GetByTrackingID(ctx, result.TrackingID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, crypto.ErrDecryption))
	assert.Contains(t, f.store.eventTypes(), audit.EventDecryptFailed)
}
