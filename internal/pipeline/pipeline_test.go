// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/uninavi/uninavi/internal/llm"
	"github.com/uninavi/uninavi/pkg/types"
)

type stubSelector struct{ model string }

func (s stubSelector) Select(context.Context) string { return s.model }

type stubSearcher struct {
	mu      sync.Mutex
	results map[string][]types.SearchResultItem
	queries []string
}

func (s *stubSearcher) Configured() bool { return len(s.results) > 0 }

func (s *stubSearcher) Search(_ context.Context, query string) []types.SearchResultItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	return s.results[query]
}

// stageCompleter answers extraction and judgment prompts separately,
// keyed on the system prompt wording.
type stageCompleter struct {
	mu            sync.Mutex
	extractReply  string
	judgeReply    string
	extractPrompt string
}

func (c *stageCompleter) Complete(_ context.Context, messages []llm.Message, _ llm.Options) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.Contains(messages[0].Content, "検索条件を比較") {
		return c.judgeReply, nil
	}
	c.extractPrompt = messages[len(messages)-1].Content
	return c.extractReply, nil
}

func collectStages(events []types.ProgressEvent) []string {
	var stages []string
	for _, ev := range events {
		if len(stages) == 0 || stages[len(stages)-1] != ev.Stage {
			stages = append(stages, ev.Stage)
		}
	}
	return stages
}

func TestRunEndToEnd(t *testing.T) {
	base := "大学 学部 入試情報 入試情報"
	searcher := &stubSearcher{results: map[string][]types.SearchResultItem{
		base: {
			{Title: "東大 工学部", URL: "https://passnavi.obunsha.co.jp/univ/2080/", Content: "偏差値70"},
			{Title: "京大 工学部", URL: "https://www.keinet.ne.jp/univ/kyoto/", Content: "偏差値68"},
		},
	}}
	completer := &stageCompleter{
		extractReply: `[
			{"name": "京都大学", "faculty": "工学部", "examType": "一般選抜", "officialUrl": "https://www.kyoto-u.ac.jp/", "sources": ["https://www.keinet.ne.jp/univ/kyoto/"]},
			{"name": "東京大学", "faculty": "工学部", "examType": "一般選抜", "officialUrl": "https://www.u-tokyo.ac.jp/", "sources": ["https://passnavi.obunsha.co.jp/univ/2080/"]}
		]`,
		judgeReply: `{"matches": true, "reason": "条件に合致"}`,
	}

	e := &Engine{
		Selector:          stubSelector{model: "test-model"},
		Completer:         completer,
		Web:               searcher,
		GatewayConfigured: true,
		Logw:              io.Discard,
	}

	var mu sync.Mutex
	var events []types.ProgressEvent
	var sunk []string
	records := e.Run(context.Background(), types.SearchFilters{},
		func(ev types.ProgressEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
		func(rec types.UniversityRecord) {
			mu.Lock()
			sunk = append(sunk, rec.Name)
			mu.Unlock()
		})

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Sorted ascending by name: 京都大学 < 東京大学.
	if records[0].Name != "京都大学" || records[1].Name != "東京大学" {
		t.Errorf("order = %s, %s", records[0].Name, records[1].Name)
	}
	// Official URL spliced to the front of sources.
	if len(records[1].Sources) != 2 || records[1].Sources[0] != "https://www.u-tokyo.ac.jp/" {
		t.Errorf("sources = %v", records[1].Sources)
	}
	if len(sunk) != 2 {
		t.Errorf("sink received %d records", len(sunk))
	}

	stages := collectStages(events)
	want := []string{
		types.StageModelSelected, types.StageQueryBuilt, types.StageSearching,
		types.StageSearchComplete, types.StageSummarizing, types.StageSummarizeComplete,
		types.StageFiltering, types.StageCompleted,
	}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v", stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stage[%d] = %q, want %q (all: %v)", i, stages[i], want[i], stages)
		}
	}
	if events[0].Detail["model"] != "test-model" {
		t.Errorf("model_selected detail = %v", events[0].Detail)
	}
	if events[1].Detail["query"] != base {
		t.Errorf("query_built detail = %v", events[1].Detail)
	}
}

func TestRunPromptOrderedByTrust(t *testing.T) {
	base := "大学 学部 入試情報 入試情報"
	searcher := &stubSearcher{results: map[string][]types.SearchResultItem{
		base: {
			{Title: "blog", URL: "https://blog.example.com/a", Content: "c"},
			{Title: "official", URL: "https://www.u-tokyo.ac.jp/admissions/", Content: "c"},
			{Title: "passnavi", URL: "https://passnavi.obunsha.co.jp/univ/2080/", Content: "c"},
		},
	}}
	completer := &stageCompleter{extractReply: "[]", judgeReply: `{"matches": true}`}

	e := &Engine{
		Selector:          stubSelector{model: "m"},
		Completer:         completer,
		Web:               searcher,
		GatewayConfigured: true,
		Logw:              io.Discard,
	}
	e.Run(context.Background(), types.SearchFilters{}, nil, nil)

	prompt := completer.extractPrompt
	passnavi := strings.Index(prompt, "passnavi.obunsha.co.jp")
	official := strings.Index(prompt, "u-tokyo.ac.jp")
	other := strings.Index(prompt, "blog.example.com")
	if passnavi < 0 || official < 0 || other < 0 {
		t.Fatalf("prompt missing result URLs:\n%s", prompt)
	}
	if !(passnavi < official && official < other) {
		t.Errorf("trust ordering violated: passnavi=%d official=%d other=%d", passnavi, official, other)
	}
}

func TestRunEmptyExtraction(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]types.SearchResultItem{}}
	completer := &stageCompleter{extractReply: "[]", judgeReply: `{"matches": true}`}

	e := &Engine{
		Selector:          stubSelector{model: "m"},
		Completer:         completer,
		Web:               searcher,
		GatewayConfigured: true,
		Logw:              io.Discard,
	}
	records := e.Run(context.Background(), types.SearchFilters{}, nil, nil)
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestRunUnconfiguredGatewayServesOfflineDataset(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]types.SearchResultItem{}}
	client := llm.NewClient(types.LLMConfig{})

	e := &Engine{
		Selector:          stubSelector{model: "m"},
		Completer:         client,
		Web:               searcher,
		GatewayConfigured: client.Configured(),
		Logw:              io.Discard,
	}
	records := e.Run(context.Background(), types.SearchFilters{}, nil, nil)

	// The offline dataset carries nine entries; two university/faculty/exam
	// triples repeat, so dedup leaves seven.
	if len(records) != 7 {
		t.Fatalf("got %d records, want 7", len(records))
	}
	seen := make(map[string]bool)
	for _, rec := range records {
		seen[rec.Name] = true
	}
	for _, name := range []string{"東京大学", "京都大学", "東京工業大学", "早稲田大学", "慶應義塾大学"} {
		if !seen[name] {
			t.Errorf("offline dataset missing %s", name)
		}
	}
}

func TestDedupe(t *testing.T) {
	records := []types.UniversityRecord{
		{Name: "東京大学", Faculty: "工学部", ExamType: "一般選抜", Sources: []string{"https://blog.example.com/"}},
		{Name: "東京大学", Faculty: "工学部", ExamType: "一般選抜", Sources: []string{"https://passnavi.obunsha.co.jp/"}},
		{Name: "京都大学", Faculty: "工学部", ExamType: "一般選抜", Sources: []string{"https://www.kyoto-u.ac.jp/"}},
		{Name: " 京都大学 ", Faculty: "工学部", ExamType: "一般選抜", Sources: []string{"https://blog.example.com/"}},
	}

	got := dedupe(records)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// Higher source score replaces the first claim.
	if got[1].Name != "東京大学" || got[1].Sources[0] != "https://passnavi.obunsha.co.jp/" {
		t.Errorf("dedupe kept %v", got[1].Sources)
	}
	// Tie keeps the earlier entry, key comparison trims whitespace.
	if got[0].Sources[0] != "https://www.kyoto-u.ac.jp/" {
		t.Errorf("tie broke wrong way: %v", got[0].Sources)
	}
}
