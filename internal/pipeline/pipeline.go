// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the full university search: query
// planning, fan-out web search, trust ranking, structured extraction,
// condition verification, and deduplication.
package pipeline

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/uninavi/uninavi/internal/extract"
	"github.com/uninavi/uninavi/internal/llm"
	"github.com/uninavi/uninavi/internal/planner"
	"github.com/uninavi/uninavi/internal/trust"
	"github.com/uninavi/uninavi/internal/verify"
	"github.com/uninavi/uninavi/internal/websearch"
	"github.com/uninavi/uninavi/pkg/types"
)

const defaultSearchConcurrency = 10

// ModelSelector resolves the model identifier used for all gateway calls
// of one search.
type ModelSelector interface {
	Select(ctx context.Context) string
}

// WebSearcher runs a single query against the configured providers.
type WebSearcher interface {
	Search(ctx context.Context, query string) []types.SearchResultItem
	Configured() bool
}

// Engine wires the pipeline stages together. Zero-value fields take
// defaults; the seams are interfaces so tests can stub each stage.
type Engine struct {
	Selector          ModelSelector
	Completer         extract.Completer
	Web               WebSearcher
	GatewayConfigured bool
	SearchConcurrency int
	VerifyConcurrency int
	Logw              io.Writer
}

// New builds an Engine from configuration, sharing one gateway client
// between model probing, extraction, and verification.
func New(cfg types.PipelineConfig, logw io.Writer) *Engine {
	client := llm.NewClient(cfg.LLM)
	return &Engine{
		Selector:          llm.NewSelector(client, cfg.LLM.Model, logw),
		Completer:         client,
		Web:               websearch.NewAggregator(cfg.WebSearch, logw),
		GatewayConfigured: client.Configured(),
		SearchConcurrency: cfg.SearchConcurrency,
		VerifyConcurrency: cfg.VerifyConcurrency,
		Logw:              logw,
	}
}

// Run executes one search. progress and sink may be nil; sink receives
// each verified record as soon as its judgment completes, before the
// final dedup pass. The returned slice is deduplicated and sorted.
func (e *Engine) Run(ctx context.Context, filters types.SearchFilters, progress func(types.ProgressEvent), sink func(types.UniversityRecord)) []types.UniversityRecord {
	logw := e.Logw
	if logw == nil {
		logw = io.Discard
	}
	emit := func(stage string, detail map[string]any) {
		if progress != nil {
			progress(types.ProgressEvent{Stage: stage, Detail: detail})
		}
	}

	model := e.Selector.Select(ctx)
	emit(types.StageModelSelected, map[string]any{"model": model})

	queries := planner.Plan(filters)
	emit(types.StageQueryBuilt, map[string]any{"query": queries[0]})

	ranked := e.collectResults(ctx, queries, emit)
	emit(types.StageSearchComplete, map[string]any{"results": len(ranked)})

	emit(types.StageSummarizing, map[string]any{"sources": len(ranked)})
	queryLabel := strings.Join(queries, " | ")
	raws := extract.Extract(ctx, e.Completer, model, ranked, queryLabel, logw)

	records := make([]types.UniversityRecord, 0, len(raws))
	for _, raw := range raws {
		rec := extract.Normalize(raw)
		extract.SpliceOfficialURL(&rec)
		records = append(records, rec)
	}
	emit(types.StageSummarizeComplete, map[string]any{"count": len(records)})

	filter := &verify.Filter{
		Client:      e.Completer,
		Model:       model,
		Configured:  e.GatewayConfigured,
		Concurrency: e.VerifyConcurrency,
		Logw:        logw,
	}
	records = filter.Run(ctx, records, filters, progress, sink)

	records = dedupe(records)
	emit(types.StageCompleted, map[string]any{"count": len(records)})
	return records
}

// collectResults fans queries out with bounded concurrency and merges the
// hits first-URL-wins, then orders them by source trust so the extraction
// prompt sees the most reliable pages first.
func (e *Engine) collectResults(ctx context.Context, queries []string, emit func(string, map[string]any)) []types.SearchResultItem {
	concurrency := e.SearchConcurrency
	if concurrency <= 0 {
		concurrency = defaultSearchConcurrency
	}
	sem := make(chan struct{}, concurrency)

	var mu sync.Mutex
	seen := make(map[string]struct{})
	var aggregated []types.SearchResultItem

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(idx int, q string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			mu.Lock()
			emit(types.StageSearching, map[string]any{"current": idx, "total": len(queries), "query": q})
			mu.Unlock()

			results := e.Web.Search(ctx, q)

			mu.Lock()
			defer mu.Unlock()
			for _, item := range results {
				if item.URL == "" {
					continue
				}
				if _, dup := seen[item.URL]; dup {
					continue
				}
				seen[item.URL] = struct{}{}
				aggregated = append(aggregated, item)
			}
		}(i+1, q)
	}
	wg.Wait()

	sort.SliceStable(aggregated, func(i, j int) bool {
		return trust.RankTier(aggregated[i].URL) > trust.RankTier(aggregated[j].URL)
	})
	return aggregated
}
