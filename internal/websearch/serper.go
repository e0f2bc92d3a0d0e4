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

// serperSearchBase is the Serper search endpoint. Declared as a var so
// tests can substitute an httptest server.
var serperSearchBase = "https://google.serper.dev/search"

// SerperProvider queries the Serper Google-search API and translates its
// organic-result field names (link, snippet) into the common item shape.
type SerperProvider struct {
	APIKey string
	Client *http.Client
}

// Name returns the provider identifier.
func (p *SerperProvider) Name() string { return "serper" }

type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search queries Serper and returns the mapped results.
func (p *SerperProvider) Search(ctx context.Context, query string, cfg types.WebSearchConfig) ([]types.SearchResultItem, error) {
	maxResults := cfg.MaxResultsPerQuery
	if maxResults <= 0 {
		maxResults = 20
	}

	body, err := json.Marshal(serperRequest{Query: query, Num: maxResults})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperSearchBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", p.APIKey)
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := p.client(cfg).Do(req)
	if err != nil {
		return nil, fmt.Errorf("Serper API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Serper API returned HTTP %d", resp.StatusCode)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parsing Serper response: %w", err)
	}

	results := make([]types.SearchResultItem, 0, len(parsed.Organic))
	for _, item := range parsed.Organic {
		results = append(results, types.SearchResultItem{
			Title:   item.Title,
			URL:     item.Link,
			Content: item.Snippet,
		})
	}
	return results, nil
}

func (p *SerperProvider) client(cfg types.WebSearchConfig) *http.Client {
	if p.Client != nil {
		return p.Client
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
