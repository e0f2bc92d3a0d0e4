// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify filters extracted university records against the
// caller's search conditions with a model judgment per record. The
// filter fails open: when a judgment cannot be obtained the record is
// kept rather than silently dropped.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/uninavi/uninavi/internal/llm"
	"github.com/uninavi/uninavi/pkg/types"
)

const defaultConcurrency = 5

// Completer abstracts the model gateway.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error)
}

// Filter runs condition checks for a batch of records.
type Filter struct {
	Client      Completer
	Model       string
	Configured  bool
	Concurrency int
	Logw        io.Writer
}

const judgeSystemPrompt = `あなたは日本の大学受験アドバイザーです。
与えられた大学情報と検索条件を比較し、この大学が条件に合っているかを判定してください。
回答は必ずJSON形式で、{"matches": true/false, "reason": "理由の説明"} の形式にしてください。`

// judgment is the contract the model is asked to honor.
type judgment struct {
	Matches bool   `json:"matches"`
	Reason  string `json:"reason"`
}

// Run filters records in completion order. progress and sink may be nil.
// Unconfigured gateways and empty batches pass records through untouched.
func (f *Filter) Run(ctx context.Context, records []types.UniversityRecord, filters types.SearchFilters, progress func(types.ProgressEvent), sink func(types.UniversityRecord)) []types.UniversityRecord {
	logw := f.Logw
	if logw == nil {
		logw = io.Discard
	}
	if !f.Configured {
		fmt.Fprintln(logw, "warning: no model credential configured, skipping verification")
		return records
	}
	if len(records) == 0 {
		return records
	}

	emit := func(detail map[string]any) {
		if progress != nil {
			progress(types.ProgressEvent{Stage: types.StageFiltering, Detail: detail})
		}
	}
	emit(map[string]any{"total": len(records)})

	concurrency := f.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	sem := make(chan struct{}, concurrency)

	type outcome struct {
		record types.UniversityRecord
		keep   bool
	}
	results := make(chan outcome, len(records))

	var wg sync.WaitGroup
	for _, rec := range records {
		wg.Add(1)
		go func(rec types.UniversityRecord) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results <- outcome{record: rec, keep: f.judge(ctx, rec, filters, logw)}
		}(rec)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var kept []types.UniversityRecord
	completed := 0
	for out := range results {
		completed++
		if !out.keep {
			continue
		}
		kept = append(kept, out.record)
		emit(map[string]any{
			"current":        completed,
			"total":          len(records),
			"filtered_count": len(kept),
		})
		if sink != nil {
			sink(out.record)
		}
	}
	return kept
}

// judge asks the model whether one record satisfies the conditions.
// Upstream failures keep the record; a well-formed negative judgment or a
// reply with no recognizable JSON drops it.
func (f *Filter) judge(ctx context.Context, rec types.UniversityRecord, filters types.SearchFilters, logw io.Writer) bool {
	messages := []llm.Message{
		{Role: "system", Content: judgeSystemPrompt},
		{Role: "user", Content: buildJudgePrompt(rec, filters)},
	}

	reply, err := f.Client.Complete(ctx, messages, llm.Options{
		Model:       f.Model,
		Temperature: 0.2,
		MaxTokens:   2000,
		TopP:        0.9,
		MaxRetries:  2,
	})
	if err != nil {
		var shapeErr *llm.ResponseShapeError
		if errors.As(err, &shapeErr) {
			fmt.Fprintf(logw, "warning: invalid judgment reply for %s: %v\n", rec.Name, err)
			return false
		}
		fmt.Fprintf(logw, "warning: judgment call failed for %s, keeping record: %v\n", rec.Name, err)
		return true
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		fmt.Fprintf(logw, "warning: no JSON found in judgment reply for %s\n", rec.Name)
		return false
	}

	var j judgment
	if err := json.Unmarshal([]byte(reply[start:end+1]), &j); err != nil {
		fmt.Fprintf(logw, "warning: could not decode judgment for %s, keeping record: %v\n", rec.Name, err)
		return true
	}
	return j.Matches
}

func buildJudgePrompt(rec types.UniversityRecord, filters types.SearchFilters) string {
	// Region and prefecture are not extracted fields; the lines stay empty.
	universityInfo := fmt.Sprintf(`
大学名: %s
学部: %s
学科: %s
偏差値: %s
共テ得点率: %s
入試形態: %s
必要科目: %s
地域: 
都道府県: 
`,
		rec.Name, rec.Faculty, rec.Department, rec.DeviationScore,
		rec.CommonTestScore, rec.ExamType, strings.Join(rec.RequiredSubjects, ", "))

	searchConditions := fmt.Sprintf(`
検索条件:
地域: %s
学部: %s
入試形態: %s
共通テスト利用: %s
偏差値: %s
機関種別: %s
都道府県: %s
大学名キーワード: %s
共テ得点率: %s
英語外部試験: %s
必要科目: %s
学費上限: %s
奨学金: %s
資格取得: %s
入試日程: %s
`,
		filters.Region, filters.Faculty, filters.ExamType, filters.UseCommonTest,
		filters.DeviationScore, filters.InstitutionType, filters.Prefecture,
		filters.NameKeyword, filters.CommonTestScore, filters.ExternalEnglish,
		filters.RequiredSubjects, filters.TuitionMax, filters.Scholarship,
		filters.Qualification, filters.ExamSchedule)

	return fmt.Sprintf(`以下の大学情報と検索条件を比較し、この大学が検索条件に合っているかを判定してください。

%s

%s

条件に合っている場合は true、合っていない場合は false を返してください。
判定理由も簡潔に説明してください。`, universityInfo, searchConditions)
}
