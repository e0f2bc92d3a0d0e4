// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the UniNavi pipeline.
package types

// UniversityRecord is one structured university/faculty/admission entry.
// Records are produced by the extractor, coerced to this shape by the
// normalizer, and never mutated after the pipeline returns. Slice fields
// are always non-nil so JSON output carries [] instead of null.
type UniversityRecord struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	OfficialURL         string   `json:"officialUrl"`
	Faculty             string   `json:"faculty"`
	Department          string   `json:"department"`
	DeviationScore      string   `json:"deviationScore"`
	CommonTestScore     string   `json:"commonTestScore"`
	ExamType            string   `json:"examType"`
	RequiredSubjects    []string `json:"requiredSubjects"`
	ExamDate            string   `json:"examDate"`
	ExamSchedules       []string `json:"examSchedules"`
	AdmissionMethods    []string `json:"admissionMethods"`
	SubjectHighlights   []string `json:"subjectHighlights"`
	CommonTestRatio     string   `json:"commonTestRatio"`
	SelectionNotes      string   `json:"selectionNotes"`
	ApplicationDeadline string   `json:"applicationDeadline"`
	InstitutionType     string   `json:"institutionType"`
	AISummary           string   `json:"aiSummary"`
	Sources             []string `json:"sources"`
}

// SearchResultItem is a provider-agnostic web search hit. It is consumed
// only by the extraction prompt builder and never exposed to callers.
type SearchResultItem struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchFilters holds the caller's search criteria. Read-only throughout
// the pipeline.
type SearchFilters struct {
	Region           string `json:"region"`
	Faculty          string `json:"faculty"`
	ExamType         string `json:"examType"`
	UseCommonTest    string `json:"useCommonTest"`
	DeviationScore   string `json:"deviationScore"`
	InstitutionType  string `json:"institutionType"`
	Prefecture       string `json:"prefecture"`
	NameKeyword      string `json:"nameKeyword"`
	CommonTestScore  string `json:"commonTestScore"`
	ExternalEnglish  string `json:"externalEnglish"`
	RequiredSubjects string `json:"requiredSubjects"`
	TuitionMax       string `json:"tuitionMax"`
	Scholarship      string `json:"scholarship"`
	Qualification    string `json:"qualification"`
	ExamSchedule     string `json:"examSchedule"`
}

// Progress stages emitted by the pipeline, in rough chronological order.
const (
	StageModelSelected     = "model_selected"
	StageQueryBuilt        = "query_built"
	StageSearching         = "searching"
	StageSearchComplete    = "search_complete"
	StageSummarizing       = "summarizing"
	StageSummarizeComplete = "summarize_complete"
	StageFiltering         = "filtering"
	StageCompleted         = "completed"
)

// ProgressEvent is a transient pipeline notification. Detail keys vary by
// stage (query text, counts, selected model).
type ProgressEvent struct {
	Stage  string         `json:"stage"`
	Detail map[string]any `json:"detail,omitempty"`
}

// ChatTurn is one role/content message exchanged with the counseling
// assistant.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
