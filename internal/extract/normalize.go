// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/uninavi/uninavi/internal/trust"
	"github.com/uninavi/uninavi/pkg/types"
)

// listSeparators are tried in order when a list field arrives as a single
// delimited string.
var listSeparators = []string{"\n", ",", "・", "，", "、"}

// toString renders any scalar the model may emit as a trimmed string.
// nil becomes empty.
func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// toStringList coerces a value into a list of non-empty strings. A plain
// string is split on the first separator it contains.
func toStringList(value any) []string {
	if items, ok := value.([]any); ok {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := toString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	s := toString(value)
	if s == "" {
		return []string{}
	}
	for _, sep := range listSeparators {
		if strings.Contains(s, sep) {
			parts := strings.Split(s, sep)
			out := make([]string, 0, len(parts))
			for _, part := range parts {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			return out
		}
	}
	return []string{s}
}

// officialURLWeight orders official URL candidates. Lower sorts first.
func officialURLWeight(url string) int {
	switch {
	case strings.Contains(url, ".ac.jp"):
		return -100
	case strings.Contains(url, "admissions"):
		return -50
	case strings.HasPrefix(url, "https://www."):
		return -10
	default:
		return 0
	}
}

// SelectOfficialURL picks the best official site URL from the declared
// candidate and the source list, preferring academic domains, then
// admissions pages, then www-prefixed sites. Ties keep input order.
func SelectOfficialURL(candidate any, sources any) string {
	var candidates []string
	if s := toString(candidate); s != "" {
		candidates = append(candidates, s)
	}
	candidates = append(candidates, toStringList(sources)...)

	seen := make(map[string]struct{})
	var prioritized []string
	for _, value := range candidates {
		formatted := trust.FormatURL(value)
		if formatted == "" {
			continue
		}
		if _, dup := seen[formatted]; dup {
			continue
		}
		seen[formatted] = struct{}{}
		prioritized = append(prioritized, formatted)
	}
	if len(prioritized) == 0 {
		return ""
	}

	sort.SliceStable(prioritized, func(i, j int) bool {
		return officialURLWeight(prioritized[i]) < officialURLWeight(prioritized[j])
	})
	return prioritized[0]
}

// Normalize converts a raw record into a UniversityRecord. The conversion
// is total: missing or oddly typed fields degrade to empty values rather
// than failing.
func Normalize(raw RawRecord) types.UniversityRecord {
	rec := types.UniversityRecord{
		ID:                  toString(raw["id"]),
		Name:                toString(raw["name"]),
		Faculty:             toString(raw["faculty"]),
		Department:          toString(raw["department"]),
		DeviationScore:      toString(raw["deviationScore"]),
		CommonTestScore:     toString(raw["commonTestScore"]),
		ExamType:            toString(raw["examType"]),
		RequiredSubjects:    toStringList(raw["requiredSubjects"]),
		ExamDate:            toString(raw["examDate"]),
		ExamSchedules:       toStringList(raw["examSchedules"]),
		AdmissionMethods:    toStringList(raw["admissionMethods"]),
		SubjectHighlights:   toStringList(raw["subjectHighlights"]),
		CommonTestRatio:     toString(raw["commonTestRatio"]),
		SelectionNotes:      toString(raw["selectionNotes"]),
		ApplicationDeadline: toString(raw["applicationDeadline"]),
		InstitutionType:     toString(raw["institutionType"]),
		AISummary:           toString(raw["aiSummary"]),
		Sources:             toStringList(raw["sources"]),
	}
	rec.OfficialURL = SelectOfficialURL(raw["officialUrl"], raw["sources"])
	return rec
}

// SpliceOfficialURL prepends the official URL to the record's sources when
// it is not already listed.
func SpliceOfficialURL(rec *types.UniversityRecord) {
	if rec.OfficialURL == "" {
		return
	}
	for _, src := range rec.Sources {
		if src == rec.OfficialURL {
			return
		}
	}
	rec.Sources = append([]string{rec.OfficialURL}, rec.Sources...)
}
