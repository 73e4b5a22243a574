package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerConfig controls the request logger middleware.
type LoggerConfig struct {
	Skipper echoMiddleware.Skipper
	Level   zerolog.Level
}

var DefaultLoggerConfig = LoggerConfig{
	Skipper: echoMiddleware.DefaultSkipper,
	Level:   zerolog.DebugLevel,
}

func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(DefaultLoggerConfig)
}

// LoggerWithConfig attaches a request-scoped zerolog logger to the request
// context (retrievable via util.LogFromContext / util.LogFromEchoContext) and
// emits one line per completed request.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultLoggerConfig.Skipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()

			l := log.With().
				Str("id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			req = req.WithContext(l.WithContext(req.Context()))
			c.SetRequest(req)

			start := time.Now()
			if err = next(c); err != nil {
				// Resolve the status via the error handler before logging.
				c.Error(err)
			}

			res := c.Response()

			l.WithLevel(config.Level).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration_ms", time.Since(start)).
				Msg("Request handled")

			return err
		}
	}
}
