// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch queries the configured web search providers and
// returns unified, URL-deduplicated results. Each provider implements the
// Provider interface per the Strategy pattern; a provider without a
// credential is simply absent, and a failing provider degrades result
// completeness instead of aborting the query.
package websearch

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/uninavi/uninavi/pkg/types"
)

// Provider searches a single web search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.WebSearchConfig) ([]types.SearchResultItem, error)
}

// Aggregator fans one query out to every configured provider concurrently
// and merges the results in provider-priority order.
type Aggregator struct {
	providers []Provider
	cfg       types.WebSearchConfig
	logw      io.Writer
}

// NewAggregator builds an aggregator from configuration. Providers are
// ordered by merge priority: Tavily first, then Serper.
func NewAggregator(cfg types.WebSearchConfig, logw io.Writer) *Aggregator {
	if logw == nil {
		logw = io.Discard
	}
	var providers []Provider
	if cfg.TavilyAPIKey != "" {
		providers = append(providers, &TavilyProvider{APIKey: cfg.TavilyAPIKey})
	}
	if cfg.SerperAPIKey != "" {
		providers = append(providers, &SerperProvider{APIKey: cfg.SerperAPIKey})
	}
	return &Aggregator{providers: providers, cfg: cfg, logw: logw}
}

// Configured reports whether at least one provider has a credential.
func (a *Aggregator) Configured() bool { return len(a.providers) > 0 }

// Search queries every provider concurrently for one query string. The
// merged sequence keeps provider-priority order and holds exactly one
// item per unique URL. Provider failures are logged and contribute zero
// results; with no providers configured the call returns an empty slice.
func (a *Aggregator) Search(ctx context.Context, query string) []types.SearchResultItem {
	if len(a.providers) == 0 {
		return nil
	}

	byProvider := make([][]types.SearchResultItem, len(a.providers))
	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			results, err := p.Search(ctx, query, a.cfg)
			if err != nil {
				fmt.Fprintf(a.logw, "warning: provider %s failed: %v\n", p.Name(), err)
				return
			}
			byProvider[i] = results
		}(i, p)
	}
	wg.Wait()

	return mergeByURL(byProvider)
}

// mergeByURL flattens per-provider result sets in priority order,
// keeping the first item seen for each URL. Items without a URL are
// dropped since they cannot be deduplicated or ranked.
func mergeByURL(byProvider [][]types.SearchResultItem) []types.SearchResultItem {
	var merged []types.SearchResultItem
	seen := make(map[string]bool)
	for _, results := range byProvider {
		for _, item := range results {
			if item.URL == "" || seen[item.URL] {
				continue
			}
			seen[item.URL] = true
			merged = append(merged, item)
		}
	}
	return merged
}
