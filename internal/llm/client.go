// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the gateway to the hosted chat-completion endpoint. It
// supports a non-streaming mode with retry/backoff and a token-streaming
// mode that decodes server-sent delta events.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/uninavi/uninavi/internal/httputil"
	"github.com/uninavi/uninavi/pkg/types"
)

// defaultBaseURL is the Hugging Face inference router.
const defaultBaseURL = "https://router.huggingface.co/v1"

const defaultTimeout = 120 * time.Second

// Message is a single role/content turn in a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tunes a single completion call.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	TopP        float64
	MaxRetries  int
}

// Client calls the chat-completions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	maxRetries int
	httpClient *http.Client
}

// NewClient builds a gateway client from configuration. A zero timeout
// defaults to 120 s, matching the long tail of large-model completions.
func NewClient(cfg types.LLMConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether a credential is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type completionRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
	Stream      bool      `json:"stream,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation and returns the assistant's text. HTTP
// 429 and 5xx responses are retried with exponential backoff honoring
// Retry-After; other client errors propagate immediately.
func (c *Client) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	req, err := c.newRequest(ctx, messages, opts, false)
	if err != nil {
		return "", err
	}

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = c.maxRetries
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, maxRetries)
	if err != nil {
		return "", &UpstreamError{Body: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ResponseShapeError{Detail: err.Error()}
	}
	if len(parsed.Choices) == 0 {
		return "", &ResponseShapeError{Detail: "response has no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}

// streamTerminator ends the server-sent delta sequence.
const streamTerminator = "[DONE]"

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream issues one streaming request and invokes fn for every decoded
// text fragment until the end sentinel. Malformed lines are skipped.
// Streaming never retries: a mid-stream failure propagates as
// *UpstreamError, and an error returned by fn aborts the stream.
func (c *Client) Stream(ctx context.Context, messages []Message, opts Options, fn func(delta string) error) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}

	req, err := c.newRequest(ctx, messages, opts, true)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Body: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		if data == streamTerminator {
			return nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			if err := fn(delta); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return &UpstreamError{Body: err.Error()}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, messages []Message, opts Options, stream bool) (*http.Request, error) {
	body, err := json.Marshal(completionRequest{
		Messages:    messages,
		Model:       opts.Model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		TopP:        opts.TopP,
		Stream:      stream,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
