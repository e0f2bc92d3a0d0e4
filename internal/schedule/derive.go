// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/uninavi/uninavi/pkg/types"
)

var japaneseDatePattern = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)

// ParseJapaneseDate reads dates like 2025年2月25日. The boolean is false
// when no such date appears in s.
func ParseJapaneseDate(s string) (time.Time, bool) {
	m := japaneseDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// labelType maps a schedule label like 願書受付 to an event type and the
// title suffix shown to the student.
func labelType(label string) (string, string) {
	switch {
	case strings.Contains(label, "願書") || strings.Contains(label, "締切"):
		return TypeApplicationDeadline, " 願書締切"
	case strings.Contains(label, "試験") || strings.Contains(label, "入試"):
		return TypeExam, " 入試試験"
	case strings.Contains(label, "発表") || strings.Contains(label, "合格"):
		return TypeAnnouncement, " 合格発表"
	case strings.Contains(label, "説明会"):
		return TypeOrientation, " 入学説明会"
	case strings.Contains(label, "面接"):
		return TypeInterview, " 面接・小論文"
	default:
		return TypeOther, ""
	}
}

// parseScheduleText converts one labeled line such as
// "願書受付: 2024年12月1日" into form data. nil when the line carries no
// recognizable label or date.
func parseScheduleText(text string, ref *UniversityRef) *FormData {
	idx := strings.Index(text, ":")
	if idx < 0 {
		idx = strings.Index(text, "：")
	}
	if idx < 0 {
		return nil
	}
	label := strings.TrimSpace(text[:idx])
	date, ok := ParseJapaneseDate(text[idx:])
	if !ok {
		return nil
	}

	eventType, suffix := labelType(label)
	return &FormData{
		Title:       ref.Name + " " + ref.Faculty + suffix,
		Date:        date,
		Type:        eventType,
		University:  ref,
		Description: text,
	}
}

// FromUniversity derives schedule entries from one search result record:
// each parsable examSchedules line, the application deadline, and the
// exam date.
func FromUniversity(rec types.UniversityRecord) []FormData {
	ref := &UniversityRef{
		ID:         rec.ID,
		Name:       rec.Name,
		Faculty:    rec.Faculty,
		Department: rec.Department,
		ExamType:   rec.ExamType,
	}

	var forms []FormData
	for _, line := range rec.ExamSchedules {
		if form := parseScheduleText(line, ref); form != nil {
			forms = append(forms, *form)
		}
	}

	if date, ok := ParseJapaneseDate(rec.ApplicationDeadline); ok {
		forms = append(forms, FormData{
			Title:       rec.Name + " " + rec.Faculty + " 願書締切",
			Date:        date,
			Type:        TypeApplicationDeadline,
			University:  ref,
			Description: "願書締切日: " + rec.ApplicationDeadline,
		})
	}

	if date, ok := ParseJapaneseDate(rec.ExamDate); ok {
		forms = append(forms, FormData{
			Title:       rec.Name + " " + rec.Faculty + " 入試試験",
			Date:        date,
			Type:        TypeExam,
			University:  ref,
			Description: "入試試験日: " + rec.ExamDate,
		})
	}
	return forms
}

// ImportUniversity persists every derivable event for rec. Individual
// insert failures are logged and skipped so one bad line does not lose
// the rest.
func (s *Store) ImportUniversity(ctx context.Context, rec types.UniversityRecord, userID string, logw io.Writer) ([]Event, error) {
	if logw == nil {
		logw = io.Discard
	}
	var created []Event
	for _, form := range FromUniversity(rec) {
		ev, err := s.Create(ctx, form, userID)
		if err != nil {
			fmt.Fprintf(logw, "warning: could not save schedule %q: %v\n", form.Title, err)
			continue
		}
		created = append(created, *ev)
	}
	if len(created) == 0 && ctx.Err() != nil {
		return created, ctx.Err()
	}
	return created, nil
}
