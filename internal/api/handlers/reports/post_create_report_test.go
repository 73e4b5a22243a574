package reports_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/ratelimit"
	"github.com/sam247/disclosurely-sub001/internal/test"
	"github.com/sam247/disclosurely-sub001/internal/types"
)

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"orgLinkToken": "link-token-1",
		"title":        "Improper expense handling",
		"description":  "My email is jane@example.com",
		"type":         "fraud",
		"tags":         []string{"finance"},
	}
}

func TestPostCreateReport(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, store *test.MockDataStore) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/reports", validPayload(), nil)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		var response types.PostReportResponse
		test.ParseResponseBody(t, res, &response)

		require.NotNil(t, response.TrackingID)
		assert.Contains(t, *response.TrackingID, "DSC-")
		assert.Equal(t, "submitted", *response.Status)

		stored := store.Reports[*response.TrackingID]
		require.NotNil(t, stored)
		assert.Equal(t, "org-1", stored.OrganizationID)
		assert.NotContains(t, stored.EncryptedContent, "jane@example.com")
		assert.True(t, stored.PIIScan.HasPII)
	})
}

func TestPostCreateReportValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.MockDataStore) {
		payload := validPayload()
		delete(payload, "title")

		res := test.PerformRequest(t, s, "POST", "/api/v1/reports", payload, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code, res.Body.String())
	})
}

func TestPostCreateReportUnknownLinkToken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, store *test.MockDataStore) {
		payload := validPayload()
		payload["orgLinkToken"] = "no-such-token"

		res := test.PerformRequest(t, s, "POST", "/api/v1/reports", payload, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code, res.Body.String())
		assert.Empty(t, store.Reports)
	})
}

func TestPostCreateReportRateLimited(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.MockDataStore) {
		for i := int64(0); i < ratelimit.ProfileReportSubmission.Limit; i++ {
			res := test.PerformRequest(t, s, "POST", "/api/v1/reports", validPayload(), nil)
			require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/reports", validPayload(), nil)
		assert.Equal(t, http.StatusTooManyRequests, res.Code, res.Body.String())
		assert.NotEmpty(t, res.Header().Get("Retry-After"))
		assert.Equal(t, "0", res.Header().Get("X-RateLimit-Remaining"))
	})
}
