package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundpal/clientcore/internal/config"
	"github.com/fundpal/clientcore/internal/domain"
	"github.com/fundpal/clientcore/internal/logging"
)

func newTestClient(t *testing.T, mode string, identity IdentityProvider, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Options{
		BaseURL:      srv.URL,
		IdentityMode: mode,
		Identity:     identity,
		Logger:       logging.Discard(),
	})
	require.NoError(t, err)
	return client
}

func TestHeaderStrategyAttachesUserIDHeader(t *testing.T) {
	var gotHeader, gotQuery string
	client := newTestClient(t, config.IdentityModeHeader,
		func() string { return "u42" },
		func(w http.ResponseWriter, r *http.Request) {
			gotHeader = r.Header.Get("user-id")
			gotQuery = r.URL.Query().Get("user_id")
			_ = json.NewEncoder(w).Encode([]any{})
		})

	_, err := client.ListGoals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u42", gotHeader)
	assert.Empty(t, gotQuery)
}

func TestQueryStrategyAttachesUserIDParam(t *testing.T) {
	var gotHeader, gotQuery string
	client := newTestClient(t, config.IdentityModeQuery,
		func() string { return "u42" },
		func(w http.ResponseWriter, r *http.Request) {
			gotHeader = r.Header.Get("user-id")
			gotQuery = r.URL.Query().Get("user_id")
			_ = json.NewEncoder(w).Encode([]any{})
		})

	_, err := client.ListGoals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u42", gotQuery)
	assert.Empty(t, gotHeader)
}

func TestAuthCallsAreUnscoped(t *testing.T) {
	client := newTestClient(t, config.IdentityModeHeader,
		func() string { return "stale" },
		func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("user-id"))
			assert.Equal(t, "/auth/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "9999", body["phone"])
			assert.Equal(t, "pw", body["password"])

			_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1", "name": "Asha"})
		})

	identity, err := client.Login(context.Background(), "9999", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, "Asha", identity.Name)
}

func TestServerDetailMessageIsPreferred(t *testing.T) {
	client := newTestClient(t, config.IdentityModeHeader, nil,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid phone or password"})
		})

	_, err := client.Login(context.Background(), "9999", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid phone or password", apiErr.Message())
	assert.Equal(t, "Invalid phone or password", UserMessage(err))
}

func TestMissingDetailFallsBackToGenericMessage(t *testing.T) {
	client := newTestClient(t, config.IdentityModeHeader, nil,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

	_, err := client.Dashboard(context.Background())
	require.Error(t, err)
	assert.Equal(t, GenericErrorMessage, UserMessage(err))
}

func TestTransportFailureSurfacesGenericMessage(t *testing.T) {
	client, err := New(Options{
		BaseURL:      "http://127.0.0.1:1", // nothing listens here
		IdentityMode: config.IdentityModeHeader,
		Logger:       logging.Discard(),
	})
	require.NoError(t, err)

	_, err = client.Dashboard(context.Background())
	require.Error(t, err)
	assert.Equal(t, GenericErrorMessage, UserMessage(err))
}

func TestListTransactionsPassesLimit(t *testing.T) {
	client := newTestClient(t, config.IdentityModeQuery,
		func() string { return "u1" },
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transactions", r.URL.Path)
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			assert.Equal(t, "u1", r.URL.Query().Get("user_id"))
			_ = json.NewEncoder(w).Encode([]any{})
		})

	_, err := client.ListTransactions(context.Background(), 5)
	require.NoError(t, err)
}

func TestSubmitOnboardingUsesExplicitUserID(t *testing.T) {
	client := newTestClient(t, config.IdentityModeQuery,
		func() string { return "" }, // sign-up-less path: no identity yet
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/onboarding", r.URL.Path)
			assert.Equal(t, "user_77", r.URL.Query().Get("user_id"))
			w.WriteHeader(http.StatusOK)
		})

	err := client.SubmitOnboarding(context.Background(), "user_77", domain.Profile{UserID: "user_77"})
	require.NoError(t, err)
}

func TestChatDecodesReplyWithCard(t *testing.T) {
	client := newTestClient(t, config.IdentityModeQuery, nil,
		func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"response": "Here is a plan",
				"alerts":   []string{"Low balance"},
				"card": map[string]any{
					"type":     "investment_allocation",
					"title":    "Suggested Allocation",
					"subtitle": "Moderate",
					"data": map[string]any{
						"allocation": map[string]any{
							"Equity": map[string]any{"pct": 60, "fund": "Index Fund", "expected_return": "12%"},
						},
					},
				},
			})
		})

	reply, err := client.Chat(context.Background(), "u1", "invest?")
	require.NoError(t, err)
	assert.Equal(t, "Here is a plan", reply.Response)
	assert.Equal(t, []string{"Low balance"}, reply.Alerts)
	require.NotNil(t, reply.Card)
	assert.Equal(t, 60.0, reply.Card.Data.Allocation["Equity"].Pct)
}

func TestUnknownIdentityModeIsRejected(t *testing.T) {
	_, err := New(Options{BaseURL: "http://localhost", IdentityMode: "cookie"})
	require.Error(t, err)
}
