// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner expands one set of search filters into an ordered list
// of search-engine query strings. Plan is a pure function of its input so
// the fan-out stays deterministic and testable.
package planner

import (
	"fmt"
	"strings"

	"github.com/uninavi/uninavi/pkg/types"
)

// MaxQueries caps the fan-out. Earlier entries take priority, so the base
// and trusted-site queries always survive truncation.
const MaxQueries = 50

// universitiesPerRegion bounds how many named universities a regional
// expansion contributes.
const universitiesPerRegion = 15

// trustedSiteDomains are the reference sites each given a site-restricted
// variant of the base query.
var trustedSiteDomains = []string{
	"passnavi.evidus.com",  // 旺文社パスナビ
	"keinet.ne.jp",         // 河合塾 Kei-Net
	"manabi.benesse.ne.jp", // ベネッセ マナビジョン
	"www.toshin.com",       // 東進
	"yozemi.ac.jp",         // 代々木ゼミナール
	"www.dnc.ac.jp",        // 大学入試センター
}

// officialKeywords denote admissions/entrance-exam pages on official
// university domains.
var officialKeywords = []string{
	"入試情報",
	"admissions",
	"入試 要項",
	"入試案内",
	"entrance",
	"nyushi",
	"入学試験",
}

// Plan returns the ordered fan-out for the given filters, at most
// MaxQueries entries with the base query always first.
func Plan(filters types.SearchFilters) []string {
	base := baseQuery(filters)

	queries := []string{base}
	for _, domain := range trustedSiteDomains {
		queries = append(queries, fmt.Sprintf("%s site:%s", base, domain))
	}
	for _, kw := range officialKeywords {
		queries = append(queries, fmt.Sprintf("%s site:*.ac.jp %s", base, kw))
	}

	queries = append(queries, regionalQueries(filters)...)

	if filters.NameKeyword != "" {
		for _, kw := range officialKeywords {
			queries = append(queries, fmt.Sprintf("%s site:*.ac.jp %s", filters.NameKeyword, kw))
		}
		queries = append(queries, fmt.Sprintf("%s 公式 入試情報", filters.NameKeyword))
	}

	if len(queries) > MaxQueries {
		queries = queries[:MaxQueries]
	}
	return queries
}

// baseQuery concatenates one clause per non-empty filter onto the fixed
// template. Absence of a faculty filter inserts a generic admission-info
// clause instead.
func baseQuery(f types.SearchFilters) string {
	parts := []string{"大学"}

	if f.Region != "" {
		parts = append(parts, f.Region+"地方 大学")
	}
	if f.Prefecture != "" {
		parts = append(parts, f.Prefecture+" 大学")
	}
	if f.Faculty != "" {
		parts = append(parts, f.Faculty+" 学部")
	} else {
		parts = append(parts, "学部 入試情報")
	}
	if f.InstitutionType != "" {
		parts = append(parts, f.InstitutionType+" 大学")
	}
	if f.ExamType != "" {
		parts = append(parts, "入試方式 "+f.ExamType)
	}
	switch f.UseCommonTest {
	case "あり":
		parts = append(parts, "共通テスト利用")
	case "なし":
		parts = append(parts, "共通テスト非利用")
	}
	if f.DeviationScore != "" {
		parts = append(parts, "偏差値 "+f.DeviationScore)
	}
	if f.CommonTestScore != "" {
		parts = append(parts, "共通テスト得点率 "+f.CommonTestScore)
	}
	switch f.ExternalEnglish {
	case "あり":
		parts = append(parts, "英語外部試験 利用")
	case "不要":
		parts = append(parts, "英語外部試験 不要")
	}
	if f.RequiredSubjects != "" {
		parts = append(parts, "必要科目 "+f.RequiredSubjects)
	}
	if f.TuitionMax != "" {
		parts = append(parts, "学費上限 "+f.TuitionMax)
	}
	if f.Scholarship == "あり" {
		parts = append(parts, "奨学金制度 あり")
	}
	if f.Qualification != "" {
		parts = append(parts, f.Qualification+" 取得可能")
	}
	if f.NameKeyword != "" {
		parts = append(parts, f.NameKeyword+" 公式")
	}
	if f.ExamSchedule != "" {
		parts = append(parts, "入試日程 "+f.ExamSchedule)
	}

	return strings.Join(parts, " ") + " 入試情報"
}

// regionalQueries appends named-university queries when the region filter
// matches a known region.
func regionalQueries(f types.SearchFilters) []string {
	if f.Region == "" {
		return nil
	}
	names, ok := regionalUniversities[f.Region]
	if !ok {
		return nil
	}
	if len(names) > universitiesPerRegion {
		names = names[:universitiesPerRegion]
	}

	facultyClause := f.Faculty
	if facultyClause == "" {
		facultyClause = "学部"
	}

	var queries []string
	for _, name := range names {
		queries = append(queries, fmt.Sprintf("%s %s 入試情報", name, facultyClause))
		if f.Faculty != "" {
			queries = append(queries, fmt.Sprintf("%s %s 入試情報 偏差値", name, f.Faculty))
		}
		queries = append(queries, fmt.Sprintf("%s 入試方式 site:*.ac.jp", name))
	}
	return queries
}
