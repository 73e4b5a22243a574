package health

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/util"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness checks the dependencies a request actually needs: the database,
// the encryption secret, and redis when the shared rate-limit store is
// enabled. A degraded redis is reported but does not fail readiness since
// the limiter fails open.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromEchoContext(c)

		var notReady []string

		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if s.DB == nil {
			notReady = append(notReady, "database")
		} else if err := s.DB.PingContext(checkCtx); err != nil {
			log.Warn().Err(err).Msg("Readiness: database ping failed")
			notReady = append(notReady, "database")
		}

		if !s.Crypto.Ready() {
			notReady = append(notReady, "encryption")
		}

		if s.Config.Redis.Enabled && s.Redis != nil {
			if err := s.Redis.Ping(checkCtx).Err(); err != nil {
				log.Warn().Err(err).Msg("Readiness: redis ping failed, rate limiting degraded")
			}
		}

		if len(notReady) > 0 {
			return c.String(http.StatusServiceUnavailable, "Not ready: "+strings.Join(notReady, ", "))
		}

		return c.String(http.StatusOK, "ready.")
	}
}
