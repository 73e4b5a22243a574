package pii

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ExternalDetectorConfig configures the NLP-based detector service client.
type ExternalDetectorConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// ExternalDetector calls an external NLP entity-recognition service. It is
// selected per organization behind a feature flag; any failure here makes the
// caller fall back to the pattern detector, so errors are returned verbatim
// rather than retried.
type ExternalDetector struct {
	cfg    ExternalDetectorConfig
	client *http.Client
}

// NewExternalDetector creates the external detector client with a bounded
// request timeout.
func NewExternalDetector(cfg ExternalDetectorConfig) *ExternalDetector {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &ExternalDetector{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

var _ Backend = (*ExternalDetector)(nil)

type externalScanRequest struct {
	Text string `json:"text"`
}

type externalEntity struct {
	Type       string  `json:"type"`
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

type externalScanResponse struct {
	Entities []externalEntity `json:"entities"`
}

// externalTypeMap translates the service's entity types onto the detector's
// category/severity taxonomy. Unknown entity types are dropped.
var externalTypeMap = map[string]struct {
	category Category
	severity Severity
}{
	"EMAIL":       {CategoryEmail, SeverityHigh},
	"PHONE":       {CategoryPhone, SeverityHigh},
	"EMPLOYEE_ID": {CategoryEmployeeID, SeverityHigh},
	"SSN":         {CategorySSN, SeverityHigh},
	"CREDIT_CARD": {CategoryCreditCard, SeverityMedium},
	"IP_ADDRESS":  {CategoryIPAddress, SeverityMedium},
	"URL":         {CategoryURL, SeverityLow},
	"PERSON":      {CategoryPossibleName, SeverityHigh},
	"DATE":        {CategorySpecificDate, SeverityLow},
	"ADDRESS":     {CategoryAddress, SeverityHigh},
}

// Scan sends text to the external service and maps its entities onto the
// shared Result contract.
func (d *ExternalDetector) Scan(ctx context.Context, text string) (Result, error) {
	if d.cfg.Endpoint == "" {
		return Result{}, errors.New("external detector endpoint is not configured")
	}

	body, err := json.Marshal(externalScanRequest{Text: text})
	if err != nil {
		return Result{}, errors.Wrap(err, "failed to marshal scan request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, errors.Wrap(err, "failed to build scan request")
	}
	req.Header.Set("Content-Type", "application/json")
	if d.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Result{}, errors.Wrap(err, "external detector request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, errors.Errorf("external detector returned status %d", resp.StatusCode)
	}

	var parsed externalScanResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, errors.Wrap(err, "failed to decode external detector response")
	}

	var res Result
	for _, entity := range parsed.Entities {
		mapping, ok := externalTypeMap[entity.Type]
		if !ok {
			continue
		}

		res.Detections = append(res.Detections, Detection{
			Category:    mapping.category,
			Text:        entity.Text,
			Start:       entity.Start,
			End:         entity.End,
			Severity:    mapping.severity,
			Description: "Detected by external entity recognition",
		})

		switch mapping.severity {
		case SeverityHigh:
			res.HighCount++
		case SeverityMedium:
			res.MediumCount++
		case SeverityLow:
			res.LowCount++
		}
	}
	res.HasPII = len(res.Detections) > 0

	return res, nil
}
