package middleware

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/sam247/disclosurely-sub001/internal/api/httperrors"
	"github.com/sam247/disclosurely-sub001/internal/types"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

// HTTPErrorHandlerConfig controls the central error handler.
type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

var DefaultHTTPErrorHandlerConfig = HTTPErrorHandlerConfig{
	HideInternalServerErrorDetails: true,
}

func HTTPErrorHandler() echo.HTTPErrorHandler {
	return HTTPErrorHandlerWithConfig(DefaultHTTPErrorHandlerConfig)
}

// HTTPErrorHandlerWithConfig maps every error escaping a handler onto the
// public error envelope. Unknown errors never leak their message to the
// client when HideInternalServerErrorDetails is set.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromEchoContext(c)

		var code int
		var payload interface{}

		switch e := err.(type) {
		case *httperrors.HTTPError:
			code = int(*e.Code)
			if e.Internal != nil {
				log.Warn().Err(e.Internal).Int("status", code).Msg("Internal error behind public HTTP error")
			}
			payload = e.PublicHTTPError
		case *httperrors.HTTPValidationError:
			code = int(*e.Code)
			payload = e.PublicHTTPValidationError
		case *echo.HTTPError:
			code = e.Code
			title := http.StatusText(code)
			if msg, ok := e.Message.(string); ok && !(config.HideInternalServerErrorDetails && code == http.StatusInternalServerError) {
				title = msg
			}
			if e.Internal != nil {
				log.Warn().Err(e.Internal).Int("status", code).Msg("Internal error behind echo HTTP error")
			}
			payload = types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(title),
			}
		default:
			code = http.StatusInternalServerError
			log.Error().Err(err).Msg("Unhandled error escaped a handler")

			title := http.StatusText(code)
			if !config.HideInternalServerErrorDetails {
				title = err.Error()
			}
			payload = types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(title),
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, payload)
		}

		if writeErr != nil {
			log.Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
