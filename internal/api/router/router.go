package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/api/handlers"
	"github.com/sam247/disclosurely-sub001/internal/api/middleware"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/ratelimit"
)

// Init builds the echo instance, wires the middleware stack and attaches all
// routes. Called after wire has initialized the server components.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HTTPErrorHandler = middleware.HTTPErrorHandler()

	s.Echo.Pre(echoMiddleware.RemoveTrailingSlash())

	s.Echo.Use(echoMiddleware.Recover())
	s.Echo.Use(echoMiddleware.RequestID())
	s.Echo.Use(middleware.Logger())

	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		Root: s.Echo.Group(""),

		Management: s.Echo.Group("/-", middleware.RateLimit(s.Limiter, ratelimit.ProfileDomainOps)),

		// Submission and messaging endpoints run their own tight profiles
		// inside the service layer; the group-level limiter only guards
		// against bulk scraping of the whole surface.
		APIV1Reports: s.Echo.Group("/api/v1/reports",
			middleware.RateLimit(s.Limiter, ratelimit.ProfileGeneralAPI),
		),
		APIV1Messages: s.Echo.Group("/api/v1/reports/:trackingId/messages",
			middleware.RateLimit(s.Limiter, ratelimit.ProfileGeneralAPI),
		),
	}

	handlers.AttachAllRoutes(s)
}
