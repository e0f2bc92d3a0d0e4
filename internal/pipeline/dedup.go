// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"sort"
	"strings"

	"github.com/uninavi/uninavi/internal/trust"
	"github.com/uninavi/uninavi/pkg/types"
)

type dedupeKey struct {
	name, faculty, examType string
}

// dedupe collapses records sharing (name, faculty, examType), keeping the
// entry whose sources score highest; ties keep the earlier entry. Output
// is sorted ascending by the same triple.
func dedupe(records []types.UniversityRecord) []types.UniversityRecord {
	byKey := make(map[dedupeKey]int)
	var kept []types.UniversityRecord
	for _, rec := range records {
		key := dedupeKey{
			name:     strings.TrimSpace(rec.Name),
			faculty:  strings.TrimSpace(rec.Faculty),
			examType: strings.TrimSpace(rec.ExamType),
		}
		idx, exists := byKey[key]
		if !exists {
			byKey[key] = len(kept)
			kept = append(kept, rec)
			continue
		}
		if trust.SourceScore(rec.Sources) > trust.SourceScore(kept[idx].Sources) {
			kept[idx] = rec
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Faculty != b.Faculty {
			return a.Faculty < b.Faculty
		}
		return a.ExamType < b.ExamType
	})
	return kept
}
