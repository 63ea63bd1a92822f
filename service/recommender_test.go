package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/normie1221/Sanchay/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceAPIProvider_Disabled(t *testing.T) {
	provider := NewFinanceAPIProvider(config.FinanceAPIConfig{})
	recs := provider.FetchRecommendations(context.Background(), AdviceRequest{UserID: 1})
	assert.Nil(t, recs)
}

func TestFinanceAPIProvider_FetchRecommendations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The configured URL is hit verbatim, no path is appended.
		assert.Equal(t, "/advice/v2", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendations":[
			{"heading":"Cut subscriptions","body":"You pay for three streaming services","potentialSavings":400},
			{"title":"Refinance","text":"Rates dropped","actionable":false}
		]}`))
	}))
	defer server.Close()

	provider := NewFinanceAPIProvider(config.FinanceAPIConfig{
		BaseURL: server.URL + "/advice/v2",
		APIKey:  "test-key",
	})
	recs := provider.FetchRecommendations(context.Background(), AdviceRequest{UserID: 1, HealthScore: 55})
	require.Len(t, recs, 2)

	// Alternate field names normalize onto the standard shape.
	assert.Equal(t, "Cut subscriptions", recs[0].Title)
	assert.Equal(t, "You pay for three streaming services", recs[0].Description)
	assert.Equal(t, 400.0, recs[0].PotentialSavings)
	assert.True(t, recs[0].Actionable)
	assert.Equal(t, "external", recs[0].Source)

	assert.Equal(t, "Refinance", recs[1].Title)
	assert.Equal(t, "Rates dropped", recs[1].Description)
	assert.False(t, recs[1].Actionable)
}

func TestFinanceAPIProvider_BareArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"Save more","description":"Automate transfers"}]`))
	}))
	defer server.Close()

	provider := NewFinanceAPIProvider(config.FinanceAPIConfig{BaseURL: server.URL, APIKey: "k"})
	recs := provider.FetchRecommendations(context.Background(), AdviceRequest{UserID: 1})
	require.Len(t, recs, 1)
	assert.Equal(t, "Save more", recs[0].Title)
}

func TestFinanceAPIProvider_FailsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewFinanceAPIProvider(config.FinanceAPIConfig{BaseURL: server.URL, APIKey: "k"})
	assert.Nil(t, provider.FetchRecommendations(context.Background(), AdviceRequest{UserID: 1}))
}
