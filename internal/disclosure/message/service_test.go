package message_test

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
	"github.com/sam247/disclosurely-sub001/internal/disclosure/message"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/ratelimit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/report"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/storage"
)

type mockDataStore struct {
	reports  map[string]*storage.Report
	messages map[string][]*storage.Message
	events   []*storage.AuditEvent
}

func newMockDataStore() *mockDataStore {
	return &mockDataStore{
		reports:  make(map[string]*storage.Report),
		messages: make(map[string][]*storage.Message),
	}
}

func (m *mockDataStore) ResolveOrgLink(_ context.Context, _ string) (string, error) {
	return "", storage.ErrOrgLinkNotFound
}

func (m *mockDataStore) SaveReport(_ context.Context, r *storage.Report) error {
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

type fixture struct {
	store   *mockDataStore
	crypto  *crypto.Service
	clock   *time2.MockClock
	service message.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMockDataStore()
	cryptoSvc := crypto.NewService("server-secret")
	clock := time2.NewMockClock(time.Now())
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(clock), clock)
	auditLogger := audit.NewLogger(store, clock)

	// Seed the parent report the thread hangs off.
	store.reports["DSC-parent"] = &storage.Report{
		ID:             "report-1",
		OrganizationID: "org-1",
		TrackingID:     "DSC-parent",
		Title:          "Seeded report",
	}

	return &fixture{
		store:   store,
		crypto:  cryptoSvc,
		clock:   clock,
		service: message.NewService(store, cryptoSvc, limiter, auditLogger, clock),
	}
}

func TestService_SendEncryptsBody(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.service.Send(ctx, &message.SendRequest{
		TrackingID: "DSC-parent",
		Sender:     "reporter",
		Body:       "I have additional evidence",
	})
	require.NoError(t, err)
	assert.Equal(t, "reporter", item.Sender)
	assert.Equal(t, "I have additional evidence", item.Body)

	stored := f.store.messages["report-1"]
	require.Len(t, stored, 1)
	assert.NotContains(t, stored[0].EncryptedBody, "evidence")
	assert.NotEmpty(t, stored[0].KeyFingerprint)

	plaintext, err := f.crypto.Decrypt("org-1", stored[0].EncryptedBody)
	require.NoError(t, err)
	assert.Equal(t, "I have additional evidence", string(plaintext))
}

func TestService_SendUnknownTrackingID(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Send(context.Background(), &message.SendRequest{
		TrackingID: "DSC-missing",
		Sender:     "reporter",
		Body:       "hello",
	})
	assert.True(t, errors.Is(err, message.ErrInvalidRequest))
}

func TestService_SendRateLimited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := int64(0); i < ratelimit.ProfileMessaging.Limit; i++ {
		_, err := f.service.Send(ctx, &message.SendRequest{
			TrackingID: "DSC-parent",
			Sender:     "reporter",
			Body:       "message",
		})
		require.NoError(t, err)
	}

	_, err := f.service.Send(ctx, &message.SendRequest{
		TrackingID: "DSC-parent",
		Sender:     "reporter",
		Body:       "one too many",
	})
	require.Error(t, err)

	var rateLimited *report.RateLimitedError
	assert.True(t, errors.As(err, &rateLimited))
}

func TestService_ListDecryptsThreadInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Send(ctx, &message.SendRequest{TrackingID: "DSC-parent", Sender: "reporter", Body: "first"})
	require.NoError(t, err)
	_, err = f.service.Send(ctx, &message.SendRequest{TrackingID: "DSC-parent", Sender: "organization", Body: "second"})
	require.NoError(t, err)

	items, err := f.service.List(ctx, "DSC-parent")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "first", items[0].Body)
	assert.Equal(t, "reporter", items[0].Sender)
	assert.Equal(t, "second", items[1].Body)
	assert.Equal(t, "organization", items[1].Sender)
}

func TestService_ListDecryptionFailureFailsWholeRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Send(ctx, &message.SendRequest{TrackingID: "DSC-parent", Sender: "reporter", Body: "intact"})
	require.NoError(t, err)

	f.store.messages["report-1"][0].EncryptedBody = "AAAAAAAAAAAAAAAAAAAAAAAAAAAA"

	_, err = f.service.List(ctx, "DSC-parent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, crypto.ErrDecryption))
}

func TestService_ListEmptyThread(t *testing.T) {
	f := newFixture(t)

	items, err := f.service.List(context.Background(), "DSC-parent")
	require.NoError(t, err)
	assert.Empty(t, items)
}
