package types

import (
	goerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// Public HTTP error types returned to anonymous clients. The submission
// surface is unauthenticated, so error payloads stay generic and never carry
// internal detail.
const (
	PublicHTTPErrorTypeGeneric = "generic"
)

// PublicHTTPError is the wire format for all error responses.
type PublicHTTPError struct {
	// HTTP status code
	// Required: true
	Code *int64 `json:"status"`

	// Error type identifier
	// Required: true
	Type *string `json:"type"`

	// Short human-readable summary
	// Required: true
	Title *string `json:"title"`

	// Optional free-form detail (kept generic on the public surface)
	Detail string `json:"detail,omitempty"`
}

// Validate validates this public HTTP error.
func (m *PublicHTTPError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("status", "body", m.Code); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return goerrors.CompositeValidationError(res...)
	}

	return nil
}

// HTTPValidationErrorDetail describes a single failed field validation.
type HTTPValidationErrorDetail struct {
	// Field key
	// Required: true
	Key *string `json:"key"`

	// Location of the field (body, query, path)
	// Required: true
	In *string `json:"in"`

	// Validation error message
	// Required: true
	Error *string `json:"error"`
}

// Validate validates this HTTP validation error detail.
func (m *HTTPValidationErrorDetail) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("key", "body", m.Key); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("in", "body", m.In); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("error", "body", m.Error); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return goerrors.CompositeValidationError(res...)
	}

	return nil
}

// PublicHTTPValidationError extends PublicHTTPError with per-field details.
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of failed field validations
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// Validate validates this public HTTP validation error.
func (m *PublicHTTPValidationError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.PublicHTTPError.Validate(formats); err != nil {
		res = append(res, err)
	}

	for i := range m.ValidationErrors {
		if m.ValidationErrors[i] == nil {
			continue
		}
		if err := m.ValidationErrors[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return goerrors.CompositeValidationError(res...)
	}

	return nil
}
