// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trust assigns numeric trust tiers to URLs by domain and
// normalizes URL strings to absolute form. The tiers drive both result
// ranking and dedup conflict resolution.
package trust

import "strings"

// Trusted reference domains, most trusted first.
const (
	passNaviDomain   = "passnavi.obunsha.co.jp"
	keiNetDomain     = "keinet.ne.jp"
	examCenterDomain = "www.dnc.ac.jp"
	yozemiDomain     = "yozemi.ac.jp"
)

// FormatURL normalizes a raw URL string to absolute https form. Empty
// input stays empty; absolute http/https URLs pass through unchanged;
// protocol-relative and bare-host forms gain an https prefix. The
// function is idempotent.
func FormatURL(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(cleaned, "http://"), strings.HasPrefix(cleaned, "https://"):
		return cleaned
	case strings.HasPrefix(cleaned, "//"):
		return "https:" + cleaned
	case strings.HasPrefix(cleaned, "www."):
		return "https://" + cleaned
	default:
		return "https://" + cleaned
	}
}

// isOfficialDomain reports whether the URL belongs to a *.ac.jp domain.
func isOfficialDomain(u string) bool {
	return strings.HasSuffix(u, ".ac.jp") || strings.Contains(u, ".ac.jp/")
}

// RankTier returns the tier used to order merged search results. Higher
// is more trusted. The exam-center check precedes the generic .ac.jp
// check because www.dnc.ac.jp would otherwise fall into the lower tier.
func RankTier(u string) int {
	switch {
	case u == "":
		return 0
	case strings.Contains(u, passNaviDomain):
		return 200
	case strings.Contains(u, keiNetDomain):
		return 180
	case strings.Contains(u, examCenterDomain):
		return 150
	case isOfficialDomain(u):
		return 120
	case strings.Contains(u, yozemiDomain):
		return 100
	default:
		return 10
	}
}

// ScoreTier returns the per-URL contribution to a record's source score,
// the rescaled counterpart of RankTier used by dedup.
func ScoreTier(u string) int {
	switch {
	case strings.Contains(u, passNaviDomain):
		return 100
	case strings.Contains(u, keiNetDomain):
		return 90
	case strings.Contains(u, examCenterDomain):
		return 85
	case isOfficialDomain(u):
		return 80
	case strings.Contains(u, yozemiDomain):
		return 75
	default:
		return 10
	}
}

// SourceScore sums the score tiers over a record's source URLs.
func SourceScore(urls []string) int {
	score := 0
	for _, u := range urls {
		if u == "" {
			continue
		}
		score += ScoreTier(u)
	}
	return score
}
