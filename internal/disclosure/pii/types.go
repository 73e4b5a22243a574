package pii

import "context"

// Category classifies a detected PII span.
type Category string

const (
	CategoryEmail          Category = "email"
	CategoryPhone          Category = "phone"
	CategoryEmployeeID     Category = "employee_id"
	CategorySSN            Category = "ssn"
	CategoryCreditCard     Category = "credit_card"
	CategoryIPAddress      Category = "ip_address"
	CategoryURL            Category = "url"
	CategoryPossibleName   Category = "possible_name"
	CategoryStandaloneName Category = "standalone_name"
	CategorySpecificDate   Category = "specific_date"
	CategoryAddress        Category = "address"
)

// Severity ranks how identifying a detection is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Detection is a single PII span found in the scanned text. The matched text
// is kept in memory for redaction only and is never persisted or logged.
type Detection struct {
	Category    Category
	Text        string
	Start       int
	End         int
	Severity    Severity
	Description string
}

// Result is the outcome of one scan. Recomputed fresh per call.
type Result struct {
	Detections  []Detection
	HasPII      bool
	HighCount   int
	MediumCount int
	LowCount    int
}

// Metadata is the persistable, PII-free summary of a Result: severity counts
// and category names only.
type Metadata struct {
	HasPII      bool
	HighCount   int
	MediumCount int
	LowCount    int
	Categories  []string
}

// Summary strips raw matched text from the result so it can be stored and
// logged safely.
func (r Result) Summary() Metadata {
	m := Metadata{
		HasPII:      r.HasPII,
		HighCount:   r.HighCount,
		MediumCount: r.MediumCount,
		LowCount:    r.LowCount,
	}

	seen := make(map[Category]bool, len(r.Detections))
	for _, d := range r.Detections {
		if seen[d.Category] {
			continue
		}
		seen[d.Category] = true
		m.Categories = append(m.Categories, string(d.Category))
	}

	return m
}

// Backend is the strategy interface both detector implementations honor.
// Implementations must be safe for concurrent use.
type Backend interface {
	Scan(ctx context.Context, text string) (Result, error)
}
