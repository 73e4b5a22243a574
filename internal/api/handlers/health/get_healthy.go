package health

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sam247/disclosurely-sub001/internal/api"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Liveness only: the process is up and serving. Dependency state is the
// readiness probe's concern.
func getHealthyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "healthy.")
	}
}
