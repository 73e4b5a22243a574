package storage

import "time"

// Report is the persisted disclosure record. The body lives only inside
// EncryptedContent; Title/Type/Priority/Tags stay plaintext on purpose so
// the recipient side can list and sort without decrypting.
type Report struct {
	ID             string
	OrganizationID string
	TrackingID     string

	Title    string
	Type     string
	Priority string
	Tags     []string

	// base64(nonce || ciphertext-with-tag)
	EncryptedContent string
	// informational derived-key fingerprint, never the key
	KeyFingerprint string

	PIIScan PIIScanSummary

	CreatedAt time.Time
}

// PIIScanSummary is persisted scan metadata: counts and category names only,
// never raw matched text.
type PIIScanSummary struct {
	HasPII      bool     `json:"has_pii"`
	HighCount   int      `json:"high_count"`
	MediumCount int      `json:"medium_count"`
	LowCount    int      `json:"low_count"`
	Categories  []string `json:"categories,omitempty"`
}

// Message is one encrypted message in a report thread.
type Message struct {
	ID             string
	ReportID       string
	OrganizationID string
	Sender         string
	EncryptedBody  string
	KeyFingerprint string
	CreatedAt      time.Time
}

// OrganizationLink maps a public link token to an organization.
type OrganizationLink struct {
	Token          string
	OrganizationID string
	Active         bool
}

// AuditEvent is a persisted operational audit record. Details must never
// contain report plaintext or matched PII text.
type AuditEvent struct {
	ID             string
	Timestamp      time.Time
	EventType      string
	OrganizationID string
	ReportID       string
	Operation      string
	Result         string
	Details        map[string]interface{}
	IPAddress      string
}

// AuditEventFilter narrows audit queries.
type AuditEventFilter struct {
	StartTime      *time.Time
	EndTime        *time.Time
	OrganizationID string
	ReportID       string
	EventType      string
	Result         string
	Limit          int
	Offset         int
}
