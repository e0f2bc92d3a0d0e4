// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/uninavi/uninavi/internal/llm"
	"github.com/uninavi/uninavi/pkg/types"
)

// judgeByName replies per university name; unknown names get an error.
type judgeByName struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	calls   int
}

func (j *judgeByName) Complete(_ context.Context, messages []llm.Message, _ llm.Options) (string, error) {
	j.mu.Lock()
	j.calls++
	j.mu.Unlock()

	user := messages[len(messages)-1].Content
	for name, reply := range j.replies {
		if strings.Contains(user, name) {
			return reply, nil
		}
	}
	for name, err := range j.errs {
		if strings.Contains(user, name) {
			return "", err
		}
	}
	return "", errors.New("unexpected university")
}

func record(name string) types.UniversityRecord {
	return types.UniversityRecord{Name: name, Faculty: "工学部"}
}

func names(records []types.UniversityRecord) map[string]bool {
	out := make(map[string]bool, len(records))
	for _, r := range records {
		out[r.Name] = true
	}
	return out
}

func TestRunKeepsMatchesDropsRejections(t *testing.T) {
	client := &judgeByName{replies: map[string]string{
		"東京大学": `{"matches": true, "reason": "条件に合致"}`,
		"京都大学": `{"matches": false, "reason": "地域が異なる"}`,
	}}
	f := &Filter{Client: client, Model: "m", Configured: true, Logw: io.Discard}

	kept := f.Run(context.Background(), []types.UniversityRecord{record("東京大学"), record("京都大学")}, types.SearchFilters{Region: "関東"}, nil, nil)
	got := names(kept)
	if !got["東京大学"] || got["京都大学"] {
		t.Errorf("kept = %v", got)
	}
}

func TestRunFailsOpenOnUpstreamError(t *testing.T) {
	client := &judgeByName{errs: map[string]error{
		"東京大学": &llm.UpstreamError{Status: 503},
	}}
	f := &Filter{Client: client, Model: "m", Configured: true, Logw: io.Discard}

	kept := f.Run(context.Background(), []types.UniversityRecord{record("東京大学")}, types.SearchFilters{}, nil, nil)
	if len(kept) != 1 {
		t.Fatalf("upstream failure dropped record, kept = %d", len(kept))
	}
}

func TestRunDropsOnShapeErrorAndMissingJSON(t *testing.T) {
	client := &judgeByName{
		replies: map[string]string{
			"京都大学": "判定できませんでした",
			"大阪大学": `{"matches": true`,
		},
		errs: map[string]error{"東京大学": &llm.ResponseShapeError{Detail: "no choices"}},
	}
	f := &Filter{Client: client, Model: "m", Configured: true, Logw: io.Discard}

	kept := f.Run(context.Background(), []types.UniversityRecord{record("東京大学"), record("京都大学"), record("大阪大学")}, types.SearchFilters{}, nil, nil)
	if len(kept) != 0 {
		t.Errorf("kept = %v", names(kept))
	}
}

func TestRunKeepsOnMalformedJudgmentJSON(t *testing.T) {
	client := &judgeByName{replies: map[string]string{
		"東京大学": `{"matches": "maybe"}`,
	}}
	f := &Filter{Client: client, Model: "m", Configured: true, Logw: io.Discard}

	kept := f.Run(context.Background(), []types.UniversityRecord{record("東京大学")}, types.SearchFilters{}, nil, nil)
	if len(kept) != 1 {
		t.Fatalf("malformed judgment dropped record, kept = %d", len(kept))
	}
}

func TestRunSkipsWhenUnconfigured(t *testing.T) {
	client := &judgeByName{}
	f := &Filter{Client: client, Model: "m", Configured: false, Logw: io.Discard}

	records := []types.UniversityRecord{record("東京大学")}
	kept := f.Run(context.Background(), records, types.SearchFilters{}, nil, nil)
	if len(kept) != 1 || client.calls != 0 {
		t.Errorf("kept = %d calls = %d", len(kept), client.calls)
	}
}

func TestRunProgressAndSink(t *testing.T) {
	client := &judgeByName{replies: map[string]string{
		"東京大学": `{"matches": true, "reason": "ok"}`,
		"京都大学": `{"matches": true, "reason": "ok"}`,
		"大阪大学": `{"matches": false, "reason": "ng"}`,
	}}
	f := &Filter{Client: client, Model: "m", Configured: true, Concurrency: 2, Logw: io.Discard}

	var mu sync.Mutex
	var events []types.ProgressEvent
	var sunk []string
	kept := f.Run(context.Background(),
		[]types.UniversityRecord{record("東京大学"), record("京都大学"), record("大阪大学")},
		types.SearchFilters{},
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

	if len(kept) != 2 || len(sunk) != 2 {
		t.Fatalf("kept = %d sunk = %d", len(kept), len(sunk))
	}
	// Initial total event plus one per retained record.
	if len(events) != 3 {
		t.Fatalf("events = %d", len(events))
	}
	if events[0].Detail["total"] != 3 {
		t.Errorf("initial event detail = %v", events[0].Detail)
	}
	last := events[len(events)-1]
	if last.Stage != types.StageFiltering || last.Detail["filtered_count"] != 2 {
		t.Errorf("final event = %+v", last)
	}
}

func TestBuildJudgePromptFields(t *testing.T) {
	rec := types.UniversityRecord{
		Name:             "東京大学",
		Faculty:          "工学部",
		Department:       "機械工学科",
		DeviationScore:   "65",
		ExamType:         "一般選抜",
		RequiredSubjects: []string{"数学", "英語"},
	}
	prompt := buildJudgePrompt(rec, types.SearchFilters{Region: "関東", Faculty: "工学部"})

	for _, want := range []string{
		"大学名: 東京大学",
		"必要科目: 数学, 英語",
		"地域: \n都道府県: \n",
		"検索条件:\n地域: 関東",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
