package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/sam247/disclosurely-sub001/internal/api/httperrors"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/ratelimit"
	"github.com/sam247/disclosurely-sub001/internal/types"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

// RateLimitConfig controls the per-route admission middleware.
type RateLimitConfig struct {
	Skipper echoMiddleware.Skipper
	Limiter *ratelimit.Limiter
	Profile ratelimit.Profile
}

// RateLimit keys the given profile by client IP. A nil limiter disables the
// middleware entirely rather than blocking traffic.
func RateLimit(limiter *ratelimit.Limiter, profile ratelimit.Profile) echo.MiddlewareFunc {
	return RateLimitWithConfig(RateLimitConfig{
		Skipper: echoMiddleware.DefaultSkipper,
		Limiter: limiter,
		Profile: profile,
	})
}

func RateLimitWithConfig(config RateLimitConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = echoMiddleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) || config.Limiter == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			decision := config.Limiter.CheckLimit(ctx, util.ClientIdentifier(c.Request()), config.Profile)

			SetRateLimitHeaders(c, decision)

			if !decision.Allowed {
				c.Response().Header().Set("Retry-After", RetryAfterValue(decision, time.Now()))
				return httperrors.NewHTTPError(http.StatusTooManyRequests, types.PublicHTTPErrorTypeGeneric, "Too many requests, please try again later")
			}

			return next(c)
		}
	}
}

// RetryAfterValue renders a denied decision's wait as whole seconds, rounded
// up so a client honoring the header never retries inside the window.
func RetryAfterValue(decision ratelimit.Decision, now time.Time) string {
	return strconv.FormatInt(int64(decision.RetryAfter(now).Seconds())+1, 10)
}

// SetRateLimitHeaders writes the standard X-RateLimit-* headers for a
// decision. Shared with handlers that run the limiter inside the service
// layer instead of in middleware.
func SetRateLimitHeaders(c echo.Context, decision ratelimit.Decision) {
	h := c.Response().Header()
	h.Set("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
	h.Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
	if !decision.ResetAt.IsZero() {
		h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
	}
}
