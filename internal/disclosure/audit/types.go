package audit

import "time"

// Event types emitted by the disclosure pipeline.
const (
	EventReportSubmitted = "report_submitted"
	EventReportViewed    = "report_viewed"
	EventMessageSent     = "message_sent"
	EventDecryptFailed   = "decrypt_failed"
	EventRateLimited     = "rate_limited"
)

// Event results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Event is an operational audit record. Details must never contain report
// plaintext or raw matched PII text.
type Event struct {
	Timestamp      time.Time
	EventType      string
	OrganizationID string
	ReportID       string
	Operation      string
	Result         string
	Details        map[string]interface{}
	IPAddress      string
}
