// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns ranked web search results into structured
// university records via the model gateway. Model output is untrusted
// free text, so parsing goes through a staged recovery pipeline and any
// unrecoverable failure substitutes the offline fallback dataset instead
// of surfacing an error.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/uninavi/uninavi/internal/llm"
	"github.com/uninavi/uninavi/pkg/types"
)

// Completer abstracts the model gateway so tests can supply a mock.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error)
}

// RawRecord is one un-normalized record as decoded from model output.
// Field types are whatever the model produced; the normalizer coerces
// them into a UniversityRecord.
type RawRecord map[string]any

// Extract sends the extraction prompt for the ranked results and parses
// the reply into raw records. On upstream or parse failure it returns the
// fallback dataset; the error is reported to logw, never to the caller.
func Extract(ctx context.Context, c Completer, model string, results []types.SearchResultItem, queryLabel string, logw io.Writer) []RawRecord {
	if logw == nil {
		logw = io.Discard
	}

	userPrompt, err := buildUserPrompt(results, queryLabel)
	if err != nil {
		fmt.Fprintf(logw, "warning: extraction prompt failed: %v\n", err)
		return Fallback()
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	reply, err := c.Complete(ctx, messages, llm.Options{
		Model:       model,
		Temperature: 0.2,
		MaxTokens:   2000,
		TopP:        0.9,
	})
	if err != nil {
		fmt.Fprintf(logw, "warning: extraction call failed, using fallback dataset: %v\n", err)
		return Fallback()
	}

	records, err := ParseRecords(reply)
	if err != nil {
		fmt.Fprintf(logw, "warning: could not parse extraction reply, using fallback dataset: %v\n", err)
		return Fallback()
	}
	return records
}

// jsonArrayPattern greedily matches the outermost bracketed span, the
// last-resort recovery strategy.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ParseRecords recovers a record list from free-form model text. Strategies
// in order: the first-[ to last-] span, the same scan after stripping a
// surrounding code fence, then a greedy regex scan. A single JSON object
// is coerced to a one-element list.
func ParseRecords(content string) ([]RawRecord, error) {
	if span, ok := bracketSpan(content); ok {
		return decodeRecords(span)
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") && strings.HasSuffix(trimmed, "```") {
		inner := trimmed
		if idx := strings.Index(inner, "\n"); idx >= 0 {
			inner = inner[idx+1:]
		}
		inner = strings.TrimSuffix(inner, "```")
		if span, ok := bracketSpan(inner); ok {
			return decodeRecords(span)
		}
	}

	if match := jsonArrayPattern.FindString(content); match != "" {
		return decodeRecords(match)
	}

	// As a final concession, accept a bare JSON object.
	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			return decodeRecords(content[start : end+1])
		}
	}

	return nil, fmt.Errorf("no JSON array found in model reply")
}

// bracketSpan returns the substring from the first [ to the last ].
func bracketSpan(content string) (string, bool) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// decodeRecords unmarshals a JSON span into records, coercing a single
// object to a one-element list.
func decodeRecords(span string) ([]RawRecord, error) {
	var list []RawRecord
	if err := json.Unmarshal([]byte(span), &list); err == nil {
		return list, nil
	}

	var single RawRecord
	if err := json.Unmarshal([]byte(span), &single); err != nil {
		return nil, fmt.Errorf("parsing model reply JSON: %w", err)
	}
	return []RawRecord{single}, nil
}
