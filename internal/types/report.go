package types

import (
	goerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PostReportPayload is the inbound body for anonymous report submission.
type PostReportPayload struct {
	// Organization link token resolving to the receiving organization
	// Required: true
	OrgLinkToken *string `json:"orgLinkToken"`

	// Report title (stored as plaintext metadata, used for listing)
	// Required: true
	Title *string `json:"title"`

	// Free-text report body (encrypted at rest)
	// Required: true
	Description *string `json:"description"`

	// Report category
	Type string `json:"type,omitempty"`

	// Reporter-assigned priority
	Priority string `json:"priority,omitempty"`

	// Plaintext tags used for querying
	Tags []string `json:"tags,omitempty"`
}

// Validate validates this post report payload.
func (m *PostReportPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("orgLinkToken", "body", m.OrgLinkToken); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("description", "body", m.Description); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return goerrors.CompositeValidationError(res...)
	}

	return nil
}

// PostReportResponse is returned after successful submission.
type PostReportResponse struct {
	// Tracking ID the reporter uses for follow-up
	// Required: true
	TrackingID *string `json:"trackingId"`

	// Submission status
	// Required: true
	Status *string `json:"status"`

	// Creation timestamp
	// Required: true
	CreatedAt *strfmt.DateTime `json:"createdAt"`
}

// Validate validates this post report response.
func (m *PostReportResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("trackingId", "body", m.TrackingID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("status", "body", m.Status); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("createdAt", "body", m.CreatedAt); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return goerrors.CompositeValidationError(res...)
	}

	return nil
}

// PIIScanMetadata is the persisted, PII-free summary of a scan. It carries
// counts and category names only, never matched text.
type PIIScanMetadata struct {
	HasPII      bool     `json:"hasPii"`
	HighCount   int64    `json:"highCount"`
	MediumCount int64    `json:"mediumCount"`
	LowCount    int64    `json:"lowCount"`
	Categories  []string `json:"categories"`
}

// Validate validates this PII scan metadata.
func (m *PIIScanMetadata) Validate(_ strfmt.Registry) error {
	return nil
}

// GetReportResponse is the decrypted report view for the recipient side.
type GetReportResponse struct {
	// Required: true
	TrackingID *string `json:"trackingId"`

	// Required: true
	Title *string `json:"title"`

	// Decrypted report body
	// Required: true
	Description *string `json:"description"`

	Type     string   `json:"type,omitempty"`
	Priority string   `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	PIIScan *PIIScanMetadata `json:"piiScan,omitempty"`

	// Required: true
	CreatedAt *strfmt.DateTime `json:"createdAt"`
}

// Validate validates this get report response.
func (m *GetReportResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("trackingId", "body", m.TrackingID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("description", "body", m.Description); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("createdAt", "body", m.CreatedAt); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return goerrors.CompositeValidationError(res...)
	}

	return nil
}
