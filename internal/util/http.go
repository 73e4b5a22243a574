package util

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"

	"github.com/sam247/disclosurely-sub001/internal/api/httperrors"
	"github.com/sam247/disclosurely-sub001/internal/types"
)

// Validatable is implemented by all payload types in internal/types.
type Validatable interface {
	Validate(formats strfmt.Registry) error
}

// BindAndValidateBody binds the request body to v and runs its validations,
// converting validation failures into a public HTTP validation error.
func BindAndValidateBody(c echo.Context, v Validatable) error {
	if err := c.Bind(v); err != nil {
		return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid request")
	}

	if err := v.Validate(strfmt.Default); err != nil {
		return httperrors.NewHTTPValidationErrorFromError(err)
	}

	return nil
}

// ValidateAndReturn validates the response payload and writes it as JSON.
// An invalid response payload is a programming error and surfaces as a 500.
func ValidateAndReturn(c echo.Context, code int, v Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		return err
	}

	return c.JSON(code, v)
}

// headers consulted for the client network address, most trustworthy first.
var clientAddressHeaders = []string{
	"CF-Connecting-IP",
	"X-Real-IP",
	"X-Forwarded-For",
}

// ClientIdentifier extracts a best-effort client network address from the
// proxy header chain, falling back to the connection's remote address. This
// is an anti-abuse signal only, never an authenticated identity.
func ClientIdentifier(r *http.Request) string {
	for _, header := range clientAddressHeaders {
		val := r.Header.Get(header)
		if val == "" {
			continue
		}

		// X-Forwarded-For may carry a chain; the first entry is the client.
		if idx := strings.Index(val, ","); idx >= 0 {
			val = val[:idx]
		}

		if ip := strings.TrimSpace(val); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
