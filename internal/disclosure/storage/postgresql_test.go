package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam247/disclosurely-sub001/internal/disclosure/storage"
	"github.com/sam247/disclosurely-sub001/internal/test"
)

func seedLink(t *testing.T, db *sql.DB, token, orgID string, active bool) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO organization_links (token, organization_id, active) VALUES ($1, $2, $3)`,
		token, orgID, active,
	)
	require.NoError(t, err)
}

func TestPostgreSQLStore_ResolveOrgLink(t *testing.T) {
	test.WithTestDatabase(t, func(db *sql.DB) {
		ctx := context.Background()
		store := storage.NewPostgreSQLStore(db)

		seedLink(t, db, "token-1", "org-1", true)
		seedLink(t, db, "token-2", "org-2", false)

		orgID, err := store.ResolveOrgLink(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, "org-1", orgID)

		// Inactive links resolve like unknown ones.
		_, err = store.ResolveOrgLink(ctx, "token-2")
		assert.ErrorIs(t, err, storage.ErrOrgLinkNotFound)

		_, err = store.ResolveOrgLink(ctx, "no-such-token")
		assert.ErrorIs(t, err, storage.ErrOrgLinkNotFound)
	})
}

func TestPostgreSQLStore_SaveAndGetReport(t *testing.T) {
	test.WithTestDatabase(t, func(db *sql.DB) {
		ctx := context.Background()
		store := storage.NewPostgreSQLStore(db)

		report := &storage.Report{
			ID:               "report-1",
			OrganizationID:   "org-1",
			TrackingID:       "DSC-abc",
			Title:            "Test report",
			Type:             "fraud",
			Priority:         "high",
			Tags:             []string{"finance", "expenses"},
			EncryptedContent: "ZW52ZWxvcGU=",
			KeyFingerprint:   "0011223344556677",
			PIIScan: storage.PIIScanSummary{
				HasPII:     true,
				HighCount:  2,
				Categories: []string{"email", "phone"},
			},
			CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		}

		require.NoError(t, store.SaveReport(ctx, report))

		got, err := store.GetReportByTrackingID(ctx, "DSC-abc")
		require.NoError(t, err)
		assert.Equal(t, report.ID, got.ID)
		assert.Equal(t, report.Title, got.Title)
		assert.Equal(t, report.Tags, got.Tags)
		assert.Equal(t, report.EncryptedContent, got.EncryptedContent)
		assert.Equal(t, report.PIIScan, got.PIIScan)
		assert.True(t, report.CreatedAt.Equal(got.CreatedAt))

		_, err = store.GetReportByTrackingID(ctx, "DSC-missing")
		assert.ErrorIs(t, err, storage.ErrReportNotFound)
	})
}

func TestPostgreSQLStore_Messages(t *testing.T) {
	test.WithTestDatabase(t, func(db *sql.DB) {
		ctx := context.Background()
		store := storage.NewPostgreSQLStore(db)

		parent := &storage.Report{
			ID:               "report-1",
			OrganizationID:   "org-1",
			TrackingID:       "DSC-abc",
			Title:            "Test report",
			EncryptedContent: "ZW52ZWxvcGU=",
			KeyFingerprint:   "0011223344556677",
			CreatedAt:        time.Now(),
		}
		require.NoError(t, store.SaveReport(ctx, parent))

		base := time.Now().UTC().Truncate(time.Microsecond)
		for i, sender := range []string{"reporter", "organization"} {
			require.NoError(t, store.SaveMessage(ctx, &storage.Message{
				ID:             "msg-" + sender,
				ReportID:       "report-1",
				OrganizationID: "org-1",
				Sender:         sender,
				EncryptedBody:  "Ym9keQ==",
				KeyFingerprint: "0011223344556677",
				CreatedAt:      base.Add(time.Duration(i) * time.Second),
			}))
		}

		messages, err := store.ListMessagesByReportID(ctx, "report-1")
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "reporter", messages[0].Sender)
		assert.Equal(t, "organization", messages[1].Sender)
	})
}

func TestPostgreSQLStore_AdvancedPIIFlag(t *testing.T) {
	test.WithTestDatabase(t, func(db *sql.DB) {
		ctx := context.Background()
		store := storage.NewPostgreSQLStore(db)

		// No settings row means disabled, not an error.
		enabled, err := store.IsAdvancedPIIEnabled(ctx, "org-1")
		require.NoError(t, err)
		assert.False(t, enabled)

		_, err = db.Exec(
			`INSERT INTO organization_settings (organization_id, advanced_pii_enabled) VALUES ($1, true)`,
			"org-1",
		)
		require.NoError(t, err)

		enabled, err = store.IsAdvancedPIIEnabled(ctx, "org-1")
		require.NoError(t, err)
		assert.True(t, enabled)
	})
}

func TestPostgreSQLStore_AuditEvents(t *testing.T) {
	test.WithTestDatabase(t, func(db *sql.DB) {
		ctx := context.Background()
		store := storage.NewPostgreSQLStore(db)

		base := time.Now().UTC().Truncate(time.Microsecond)
		events := []*storage.AuditEvent{
			{ID: "ev-1", Timestamp: base, EventType: "report_submitted", OrganizationID: "org-1", Operation: "submit_report", Result: "success", Details: map[string]interface{}{"has_pii": true}},
			{ID: "ev-2", Timestamp: base.Add(time.Second), EventType: "rate_limited", OrganizationID: "org-2", Operation: "submit_report", Result: "failure", IPAddress: "1.2.3.4"},
		}
		for _, event := range events {
			require.NoError(t, store.SaveAuditEvent(ctx, event))
		}

		got, err := store.QueryAuditEvents(ctx, &storage.AuditEventFilter{EventType: "rate_limited"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ev-2", got[0].ID)
		assert.Equal(t, "1.2.3.4", got[0].IPAddress)

		got, err = store.QueryAuditEvents(ctx, &storage.AuditEventFilter{OrganizationID: "org-1"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, true, got[0].Details["has_pii"])

		// Newest first.
		got, err = store.QueryAuditEvents(ctx, &storage.AuditEventFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ev-2", got[0].ID)
	})
}
