package messages_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam247/disclosurely-sub001/internal/api"
	"github.com/sam247/disclosurely-sub001/internal/test"
	"github.com/sam247/disclosurely-sub001/internal/types"
)

func TestGetListMessages(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, store *test.MockDataStore) {
		seedReport(store)

		for _, body := range []string{"first", "second"} {
			res := test.PerformRequest(t, s, "POST", "/api/v1/reports/DSC-parent/messages", map[string]interface{}{
				"body": body,
			}, nil)
			require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
		}

		res := test.PerformRequest(t, s, "GET", "/api/v1/reports/DSC-parent/messages", nil, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		var response types.GetMessagesResponse
		test.ParseResponseBody(t, res, &response)

		require.NotNil(t, response.Total)
		assert.Equal(t, int64(2), *response.Total)
		require.Len(t, response.Messages, 2)
		assert.Equal(t, "first", *response.Messages[0].Body)
		assert.Equal(t, "second", *response.Messages[1].Body)
	})
}

func TestGetListMessagesEmptyThread(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, store *test.MockDataStore) {
		seedReport(store)

		res := test.PerformRequest(t, s, "GET", "/api/v1/reports/DSC-parent/messages", nil, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		var response types.GetMessagesResponse
		test.ParseResponseBody(t, res, &response)

		assert.Equal(t, int64(0), *response.Total)
		assert.Empty(t, response.Messages)
	})
}

func TestGetListMessagesUnknownReport(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.MockDataStore) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/reports/DSC-missing/messages", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code, res.Body.String())
	})
}
