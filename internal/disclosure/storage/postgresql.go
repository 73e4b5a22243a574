package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// postgresqlStore implements DataStore on PostgreSQL.
type postgresqlStore struct {
	db *sql.DB
}

// NewPostgreSQLStore creates the PostgreSQL-backed store.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewPostgreSQLStore(db *sql.DB) DataStore {
	return &postgresqlStore{db: db}
}

func (s *postgresqlStore) ResolveOrgLink(ctx context.Context, linkToken string) (string, error) {
	var organizationID string

	err := s.db.QueryRowContext(ctx,
		`SELECT organization_id FROM organization_links WHERE token = $1 AND active`,
		linkToken,
	).Scan(&organizationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrOrgLinkNotFound
		}
		return "", errors.Wrap(err, "failed to resolve organization link")
	}

	return organizationID, nil
}

func (s *postgresqlStore) SaveReport(ctx context.Context, report *Report) error {
	piiScanJSON, err := json.Marshal(report.PIIScan)
	if err != nil {
		return errors.Wrap(err, "failed to marshal pii scan summary")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports
			(id, organization_id, tracking_id, title, type, priority, tags,
			 encrypted_content, key_fingerprint, pii_scan, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		report.ID,
		report.OrganizationID,
		report.TrackingID,
		report.Title,
		report.Type,
		report.Priority,
		pq.Array(report.Tags),
		report.EncryptedContent,
		report.KeyFingerprint,
		piiScanJSON,
		report.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert report")
	}

	return nil
}

func (s *postgresqlStore) GetReportByTrackingID(ctx context.Context, trackingID string) (*Report, error) {
	var (
		report      Report
		tags        pq.StringArray
		piiScanJSON []byte
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, organization_id, tracking_id, title, type, priority, tags,
		        encrypted_content, key_fingerprint, pii_scan, created_at
		 FROM reports WHERE tracking_id = $1`,
		trackingID,
	).Scan(
		&report.ID,
		&report.OrganizationID,
		&report.TrackingID,
		&report.Title,
		&report.Type,
		&report.Priority,
		&tags,
		&report.EncryptedContent,
		&report.KeyFingerprint,
		&piiScanJSON,
		&report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, errors.Wrap(err, "failed to get report")
	}

	report.Tags = tags
	if len(piiScanJSON) > 0 {
		if err := json.Unmarshal(piiScanJSON, &report.PIIScan); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal pii scan summary")
		}
	}

	return &report, nil
}

func (s *postgresqlStore) SaveMessage(ctx context.Context, message *Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO report_messages
			(id, report_id, organization_id, sender, encrypted_body, key_fingerprint, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		message.ID,
		message.ReportID,
		message.OrganizationID,
		message.Sender,
		message.EncryptedBody,
		message.KeyFingerprint,
		message.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert message")
	}

	return nil
}

func (s *postgresqlStore) ListMessagesByReportID(ctx context.Context, reportID string) ([]*Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, report_id, organization_id, sender, encrypted_body, key_fingerprint, created_at
		 FROM report_messages WHERE report_id = $1 ORDER BY created_at ASC`,
		reportID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query messages")
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID,
			&m.ReportID,
			&m.OrganizationID,
			&m.Sender,
			&m.EncryptedBody,
			&m.KeyFingerprint,
			&m.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan message")
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate messages")
	}

	return messages, nil
}

func (s *postgresqlStore) IsAdvancedPIIEnabled(ctx context.Context, organizationID string) (bool, error) {
	var enabled bool

	err := s.db.QueryRowContext(ctx,
		`SELECT advanced_pii_enabled FROM organization_settings WHERE organization_id = $1`,
		organizationID,
	).Scan(&enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to look up organization settings")
	}

	return enabled, nil
}

func (s *postgresqlStore) SaveAuditEvent(ctx context.Context, event *AuditEvent) error {
	var detailsJSON []byte
	if event.Details != nil {
		var err error
		detailsJSON, err = json.Marshal(event.Details)
		if err != nil {
			return errors.Wrap(err, "failed to marshal audit details")
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events
			(id, timestamp, event_type, organization_id, report_id, operation, result, details, ip_address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.ID,
		event.Timestamp,
		event.EventType,
		event.OrganizationID,
		event.ReportID,
		event.Operation,
		event.Result,
		detailsJSON,
		event.IPAddress,
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert audit event")
	}

	return nil
}

func (s *postgresqlStore) QueryAuditEvents(ctx context.Context, filter *AuditEventFilter) ([]*AuditEvent, error) {
	query := `SELECT id, timestamp, event_type, organization_id, report_id, operation, result, details, ip_address
	          FROM audit_events WHERE 1=1`
	var args []interface{}

	addArg := func(clause string, val interface{}) {
		args = append(args, val)
		query += clause + " $" + strconv.Itoa(len(args))
	}

	if filter.OrganizationID != "" {
		addArg(" AND organization_id =", filter.OrganizationID)
	}
	if filter.ReportID != "" {
		addArg(" AND report_id =", filter.ReportID)
	}
	if filter.EventType != "" {
		addArg(" AND event_type =", filter.EventType)
	}
	if filter.Result != "" {
		addArg(" AND result =", filter.Result)
	}
	if filter.StartTime != nil {
		addArg(" AND timestamp >=", *filter.StartTime)
	}
	if filter.EndTime != nil {
		addArg(" AND timestamp <=", *filter.EndTime)
	}

	query += " ORDER BY timestamp DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	addArg(" LIMIT", limit)
	if filter.Offset > 0 {
		addArg(" OFFSET", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query audit events")
	}
	defer rows.Close()

	var events []*AuditEvent
	for rows.Next() {
		var (
			event       AuditEvent
			detailsJSON []byte
		)
		if err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.EventType,
			&event.OrganizationID,
			&event.ReportID,
			&event.Operation,
			&event.Result,
			&detailsJSON,
			&event.IPAddress,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan audit event")
		}
		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &event.Details); err != nil {
				return nil, errors.Wrap(err, "failed to unmarshal audit details")
			}
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate audit events")
	}

	return events, nil
}
