package reports_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/test"
	"github.com/sam247/disclosurely-sub001/internal/types"
)

func TestGetReport(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.MockDataStore) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/reports", validPayload(), nil)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		var created types.PostReportResponse
		test.ParseResponseBody(t, res, &created)

		res = test.PerformRequest(t, s, "GET", "/api/v1/reports/"+*created.TrackingID, nil, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		var report types.GetReportResponse
		test.ParseResponseBody(t, res, &report)

		assert.Equal(t, *created.TrackingID, *report.TrackingID)
		assert.Equal(t, "Improper expense handling", *report.Title)
		assert.Equal(t, "My email is jane@example.com", *report.Description)
		require.NotNil(t, report.PIIScan)
		assert.True(t, report.PIIScan.HasPII)
	})
}

func TestGetReportNotFound(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.MockDataStore) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/reports/DSC-missing", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code, res.Body.String())
	})
}

func TestGetReportCorruptedEnvelope(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, store *test.MockDataStore) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/reports", validPayload(), nil)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		var created types.PostReportResponse
		test.ParseResponseBody(t, res, &created)

		store.Reports[*created.TrackingID].EncryptedContent = "AAAAAAAAAAAAAAAAAAAAAAAAAAAA"

		res = test.PerformRequest(t, s, "GET", "/api/v1/reports/"+*created.TrackingID, nil, nil)
		assert.Equal(t, http.StatusInternalServerError, res.Code, res.Body.String())
		assert.NotContains(t, res.Body.String(), "decrypt")
	})
}
