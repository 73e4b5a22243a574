package httperrors

import (
	"fmt"
	"net/http"

	goerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/swag"

	"github.com/sam247/disclosurely-sub001/internal/types"
)

// HTTPError wraps a public error payload so handlers can return it directly.
// The Internal error (if any) is only ever logged, never serialized.
type HTTPError struct {
	types.PublicHTTPError
	Internal error
}

// NewHTTPError constructs a plain public HTTP error.
func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  swag.Int64(int64(code)),
			Type:  swag.String(errorType),
			Title: swag.String(title),
		},
	}
}

// NewHTTPErrorWithInternal constructs a public HTTP error carrying an internal
// cause for server-side logging.
func NewHTTPErrorWithInternal(code int, errorType string, title string, internal error) *HTTPError {
	e := NewHTTPError(code, errorType, title)
	e.Internal = internal
	return e
}

func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("HTTPError %d (%s): %s (internal: %s)", *e.Code, *e.Type, *e.Title, e.Internal.Error())
	}
	return fmt.Sprintf("HTTPError %d (%s): %s", *e.Code, *e.Type, *e.Title)
}

// HTTPValidationError extends HTTPError with field-level details.
type HTTPValidationError struct {
	types.PublicHTTPValidationError
}

// NewHTTPValidationError constructs a validation error with explicit details.
func NewHTTPValidationError(code int, errorType string, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(errorType),
				Title: swag.String(title),
			},
			ValidationErrors: validationErrors,
		},
	}
}

// NewHTTPValidationErrorFromError converts go-openapi validation failures into
// the public validation error envelope. Field names are retained; submitted
// values are not echoed back.
func NewHTTPValidationErrorFromError(err error) *HTTPValidationError {
	var details []*types.HTTPValidationErrorDetail

	if composite, ok := err.(*goerrors.CompositeError); ok {
		for _, sub := range composite.Errors {
			if v, ok := sub.(*goerrors.Validation); ok {
				details = append(details, &types.HTTPValidationErrorDetail{
					Key:   swag.String(v.Name),
					In:    swag.String(v.In),
					Error: swag.String(v.Error()),
				})
				continue
			}
			details = append(details, &types.HTTPValidationErrorDetail{
				Key:   swag.String("body"),
				In:    swag.String("body"),
				Error: swag.String(sub.Error()),
			})
		}
	}

	return NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid request", details)
}

func (e *HTTPValidationError) Error() string {
	return fmt.Sprintf("HTTPValidationError %d (%s): %s (%d validation errors)", *e.Code, *e.Type, *e.Title, len(e.ValidationErrors))
}
