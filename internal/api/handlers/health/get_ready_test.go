package health_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/test"
)

func TestGetHealthy(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.MockDataStore) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "healthy.", res.Body.String())
	})
}

func TestGetReadyReportsMissingDependencies(t *testing.T) {
	// The test server runs without a database; readiness must say so.
	test.WithTestServer(t, func(s *api.Server, _ *test.MockDataStore) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, res.Code)
		assert.Contains(t, res.Body.String(), "database")
	})
}

func TestGetReadyReportsMissingSecret(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.Crypto.Secret = ""

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server, _ *test.MockDataStore) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, res.Code)
		assert.Contains(t, res.Body.String(), "encryption")
	})
}
