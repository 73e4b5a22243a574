// Package test provides server fixtures for handler-level tests: a fully
// wired in-memory server (mock datastore, in-process rate limiting, mock
// clock) behind the real router and middleware stack.
package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/stretchr/testify/require"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/api/router"
	"github.com/sam247/disclosurely-sub001/internal/config"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/audit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/crypto"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/flags"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/message"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/pii"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/ratelimit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/report"
)

// DefaultTestConfig returns a config suitable for in-memory tests: no redis,
// a fixed encryption secret, quiet logging.
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Redis.Enabled = false
	cfg.Crypto.Secret = "test-server-secret"
	return cfg
}

// WithTestServer builds a server on in-memory components, attaches the real
// router and middleware, and hands it to the closure together with the mock
// datastore for seeding and assertions.
func WithTestServer(t *testing.T, closure func(s *api.Server, store *MockDataStore)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

// WithTestServerConfigurable is WithTestServer with a caller-supplied config.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server, store *MockDataStore)) {
	t.Helper()

	store := NewMockDataStore()
	clock := time2.NewMockClock(time.Now())
	cryptoService := crypto.NewService(cfg.Crypto.Secret)
	flagLookup := flags.NewLookup(store)
	scanner := pii.NewScanner(pii.NewPatternDetector(pii.DefaultDetectorConfig()), nil, flagLookup)
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(clock), clock)
	auditLogger := audit.NewLogger(store, clock)

	s := api.NewServer(cfg)
	s.Clock = clock
	s.DataStore = store
	s.Crypto = cryptoService
	s.Flags = flagLookup
	s.Scanner = scanner
	s.Limiter = limiter
	s.AuditLogger = auditLogger
	s.ReportService = report.NewService(store, cryptoService, scanner, limiter, auditLogger, clock)
	s.MessageService = message.NewService(store, cryptoService, limiter, auditLogger, clock)

	router.Init(s)

	closure(s, store)
}

// PerformRequest runs one request through the server's full middleware and
// routing stack. A non-nil body is sent as JSON.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body interface{}, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set(echoHeaderContentType, echoMIMEApplicationJSON)
	}
	for key, vals := range headers {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	return rec
}

const (
	echoHeaderContentType   = "Content-Type"
	echoMIMEApplicationJSON = "application/json"
)

// ParseResponseBody decodes the recorded JSON response into v.
func ParseResponseBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
