package types

import (
	goerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// Message sender roles.
const (
	MessageSenderReporter     = "reporter"
	MessageSenderOrganization = "organization"
)

// PostMessagePayload is the inbound body for a report thread message.
type PostMessagePayload struct {
	// Message body (encrypted at rest)
	// Required: true
	Body *string `json:"body"`

	// Sender role, defaults to "reporter" on the anonymous surface
	Sender string `json:"sender,omitempty"`
}

// Validate validates this post message payload.
func (m *PostMessagePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("body", "body", m.Body); err != nil {
		res = append(res, err)
	}

	if m.Sender != "" {
		if err := validate.Enum("sender", "body", m.Sender, []interface{}{MessageSenderReporter, MessageSenderOrganization}); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return goerrors.CompositeValidationError(res...)
	}

	return nil
}

// MessageItem is a single decrypted message in a report thread.
type MessageItem struct {
	// Required: true
	ID *string `json:"id"`

	// Required: true
	Sender *string `json:"sender"`

	// Decrypted message body
	// Required: true
	Body *string `json:"body"`

	// Required: true
	CreatedAt *strfmt.DateTime `json:"createdAt"`
}

// Validate validates this message item.
func (m *MessageItem) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("id", "body", m.ID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("sender", "body", m.Sender); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("body", "body", m.Body); err != nil {
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

// GetMessagesResponse lists the decrypted messages of a report thread.
type GetMessagesResponse struct {
	Messages []*MessageItem `json:"messages"`

	// Required: true
	Total *int64 `json:"total"`
}

// Validate validates this get messages response.
func (m *GetMessagesResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("total", "body", m.Total); err != nil {
		res = append(res, err)
	}

	for i := range m.Messages {
		if m.Messages[i] == nil {
			continue
		}
		if err := m.Messages[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return goerrors.CompositeValidationError(res...)
	}

	return nil
}
