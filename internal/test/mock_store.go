package test

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/sam247/disclosurely-sub001/internal/disclosure/storage"
)

var errSaveFailed = errors.New("save failed")

// MockDataStore is a threadsafe in-memory storage.DataStore for tests.
type MockDataStore struct {
	mu sync.Mutex

	Links           map[string]string
	Reports         map[string]*storage.Report
	Messages        map[string][]*storage.Message
	AdvancedPIIOrgs map[string]bool
	Events          []*storage.AuditEvent

	FailSaveReport  bool
	FailSaveMessage bool
}

var _ storage.DataStore = (*MockDataStore)(nil)

// NewMockDataStore returns a store pre-seeded with one active organization
// link, "link-token-1" resolving to "org-1".
func NewMockDataStore() *MockDataStore {
	return &MockDataStore{
		Links:           map[string]string{"link-token-1": "org-1"},
		Reports:         make(map[string]*storage.Report),
		Messages:        make(map[string][]*storage.Message),
		AdvancedPIIOrgs: make(map[string]bool),
	}
}

func (m *MockDataStore) ResolveOrgLink(_ context.Context, linkToken string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if orgID, ok := m.Links[linkToken]; ok {
		return orgID, nil
	}
	return "", storage.ErrOrgLinkNotFound
}

func (m *MockDataStore) SaveReport(_ context.Context, r *storage.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSaveReport {
		return errSaveFailed
	}
	m.Reports[r.TrackingID] = r
	return nil
}

func (m *MockDataStore) GetReportByTrackingID(_ context.Context, trackingID string) (*storage.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.Reports[trackingID]; ok {
		return r, nil
	}
	return nil, storage.ErrReportNotFound
}

func (m *MockDataStore) SaveMessage(_ context.Context, msg *storage.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSaveMessage {
		return errSaveFailed
	}
	m.Messages[msg.ReportID] = append(m.Messages[msg.ReportID], msg)
	return nil
}

func (m *MockDataStore) ListMessagesByReportID(_ context.Context, reportID string) ([]*storage.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Messages[reportID], nil
}

func (m *MockDataStore) IsAdvancedPIIEnabled(_ context.Context, organizationID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.AdvancedPIIOrgs[organizationID], nil
}

func (m *MockDataStore) SaveAuditEvent(_ context.Context, event *storage.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Events = append(m.Events, event)
	return nil
}

func (m *MockDataStore) QueryAuditEvents(_ context.Context, filter *storage.AuditEventFilter) ([]*storage.AuditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]*storage.AuditEvent, 0, len(m.Events))
	for _, event := range m.Events {
		if filter != nil {
			if filter.EventType != "" && event.EventType != filter.EventType {
				continue
			}
			if filter.OrganizationID != "" && event.OrganizationID != filter.OrganizationID {
				continue
			}
			if filter.ReportID != "" && event.ReportID != filter.ReportID {
				continue
			}
		}
		events = append(events, event)
	}
	return events, nil
}
