package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/normie1221/Sanchay/config"
)

// Recommendation is a single piece of financial advice, produced either
// by the built-in rule templates or by the external provider.
type Recommendation struct {
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Priority         string  `json:"priority,omitempty"`
	Category         string  `json:"category,omitempty"`
	Impact           string  `json:"impact,omitempty"`
	Actionable       bool    `json:"actionable"`
	PotentialSavings float64 `json:"potential_savings,omitempty"`
	Source           string  `json:"source"`
}

// AdviceRequest is the snapshot sent to the external provider.
type AdviceRequest struct {
	UserID           uint              `json:"userId"`
	HealthScore      int               `json:"healthScore"`
	Metrics          HealthMetrics     `json:"metrics"`
	SpendingPatterns *SpendingPatterns `json:"spendingPatterns,omitempty"`
}

// RecommendationProvider supplies advice from an external service.
// Implementations must fail soft: no advice is never an error the
// caller has to handle.
type RecommendationProvider interface {
	FetchRecommendations(ctx context.Context, req AdviceRequest) []Recommendation
}

// FinanceAPIProvider calls the configured finance insights API over
// HTTP. Any failure (missing config, transport, status, payload) is
// logged and yields nil so analytics degrade to local advice only.
type FinanceAPIProvider struct {
	cfg    config.FinanceAPIConfig
	client *http.Client
}

// NewFinanceAPIProvider creates the HTTP provider.
func NewFinanceAPIProvider(cfg config.FinanceAPIConfig) *FinanceAPIProvider {
	return &FinanceAPIProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

// FetchRecommendations posts the user snapshot and normalizes whatever
// comes back. Provider payloads vary, so several field spellings are
// accepted.
func (p *FinanceAPIProvider) FetchRecommendations(ctx context.Context, req AdviceRequest) []Recommendation {
	if !p.cfg.Enabled() {
		return nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		log.Printf("finance api: marshal request: %v", err)
		return nil
	}

	// The configured URL is the full endpoint, posted to as-is.
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("finance api: build request: %v", err)
		return nil
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	httpReq.Header.Set("x-api-key", p.cfg.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		log.Printf("finance api: request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("finance api: unexpected status %d", resp.StatusCode)
		return nil
	}

	items, err := decodeProviderItems(resp.Body)
	if err != nil {
		log.Printf("finance api: decode response: %v", err)
		return nil
	}

	recs := make([]Recommendation, 0, len(items))
	for _, item := range items {
		recs = append(recs, normalizeProviderItem(item))
	}
	return recs
}

// decodeProviderItems accepts either a bare array or an object wrapping
// the array under "recommendations".
func decodeProviderItems(r io.Reader) ([]map[string]interface{}, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var wrapper struct {
		Recommendations []map[string]interface{} `json:"recommendations"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Recommendations == nil {
		return nil, fmt.Errorf("no recommendations field in response")
	}
	return wrapper.Recommendations, nil
}

func normalizeProviderItem(item map[string]interface{}) Recommendation {
	rec := Recommendation{
		Type:        stringField(item, "type"),
		Title:       stringField(item, "title", "heading"),
		Description: stringField(item, "description", "body", "text"),
		Priority:    stringField(item, "priority"),
		Category:    stringField(item, "category"),
		Impact:      stringField(item, "impact"),
		Actionable:  true,
		Source:      "external",
	}
	if v, ok := item["actionable"].(bool); ok {
		rec.Actionable = v
	}
	if v, ok := item["potentialSavings"].(float64); ok {
		rec.PotentialSavings = v
	}
	return rec
}

func stringField(item map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := item[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
