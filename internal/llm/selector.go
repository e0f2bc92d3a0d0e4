// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// PreferredModels is the ranked candidate list probed at startup, free and
// low-cost models first.
var PreferredModels = []string{
	"MiniMaxAI/MiniMax-M2:novita",
	"Qwen/Qwen2.5-7B-Instruct:together",
	"microsoft/WizardLM-2-8x22B",
}

// probeTimeout bounds each candidate probe.
const probeTimeout = 10 * time.Second

// Selector picks a working model id once per process. The first successful
// probe is cached for the process lifetime; concurrent first callers share
// a single probe run. Selection never fails: when every candidate is
// unreachable the first candidate is returned as a degraded fallback.
type Selector struct {
	client     *Client
	explicit   string
	candidates []string
	logw       io.Writer

	once     sync.Once
	selected string
}

// NewSelector builds a selector. explicit, when non-empty, pins the model
// id and disables probing. Probe outcomes are reported to logw.
func NewSelector(client *Client, explicit string, logw io.Writer) *Selector {
	if logw == nil {
		logw = io.Discard
	}
	return &Selector{
		client:     client,
		explicit:   explicit,
		candidates: PreferredModels,
		logw:       logw,
	}
}

// Select returns the model id to use for this process.
func (s *Selector) Select(ctx context.Context) string {
	if s.explicit != "" {
		return s.explicit
	}
	s.once.Do(func() {
		s.selected = s.probe(ctx)
	})
	return s.selected
}

func (s *Selector) probe(ctx context.Context) string {
	if !s.client.Configured() {
		fmt.Fprintln(s.logw, "no inference API key configured, using default model")
		return s.candidates[0]
	}

	for _, candidate := range s.candidates {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		_, err := s.client.Complete(probeCtx, []Message{{Role: "user", Content: "Hello"}}, Options{
			Model:       candidate,
			Temperature: 0.1,
			MaxTokens:   10,
			MaxRetries:  1,
		})
		cancel()
		if err == nil {
			fmt.Fprintf(s.logw, "selected model %s\n", candidate)
			return candidate
		}
		fmt.Fprintf(s.logw, "model %s probe failed: %v\n", candidate, err)
	}

	fmt.Fprintln(s.logw, "all model probes failed, using fallback")
	return s.candidates[0]
}
