// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/uninavi/uninavi/pkg/types"
)

// tavilySearchBase is the Tavily search endpoint. Declared as a var so
// tests can substitute an httptest server.
var tavilySearchBase = "https://api.tavily.com/search"

// TavilyProvider queries the Tavily search API. Tavily already returns
// the common title/url/content shape, so no field translation is needed.
type TavilyProvider struct {
	APIKey string
	Client *http.Client
}

// Name returns the provider identifier.
func (p *TavilyProvider) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []types.SearchResultItem `json:"results"`
}

// Search queries Tavily and returns the mapped results.
func (p *TavilyProvider) Search(ctx context.Context, query string, cfg types.WebSearchConfig) ([]types.SearchResultItem, error) {
	maxResults := cfg.MaxResultsPerQuery
	if maxResults <= 0 {
		maxResults = 20
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:     p.APIKey,
		Query:      query,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilySearchBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := p.client(cfg).Do(req)
	if err != nil {
		return nil, fmt.Errorf("Tavily API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Tavily API returned HTTP %d", resp.StatusCode)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parsing Tavily response: %w", err)
	}
	return parsed.Results, nil
}

func (p *TavilyProvider) client(cfg types.WebSearchConfig) *http.Client {
	if p.Client != nil {
		return p.Client
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
