// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "uninavi/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LLMConfig holds settings for the hosted chat-completion endpoint.
type LLMConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the inference router.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model pins an explicit model id. When empty the selector probes the
	// preferred candidate list at startup.
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the chat-completions endpoint, mainly for tests.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries caps attempts for non-streaming calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// WebSearchConfig holds settings for the web search providers.
type WebSearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// TavilyAPIKey enables the Tavily provider when non-empty.
	TavilyAPIKey string `json:"tavily_api_key,omitempty" yaml:"tavily_api_key,omitempty"`

	// SerperAPIKey enables the Serper provider when non-empty.
	SerperAPIKey string `json:"serper_api_key,omitempty" yaml:"serper_api_key,omitempty"`

	// MaxResultsPerQuery caps results requested from each provider (default 20).
	MaxResultsPerQuery int `json:"max_results_per_query" yaml:"max_results_per_query"`
}

// PipelineConfig groups the settings for one search pipeline run.
type PipelineConfig struct {
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
	WebSearch WebSearchConfig `json:"web_search" yaml:"web_search"`

	// SearchConcurrency bounds simultaneous outstanding search queries
	// (default 10). Exists to respect provider rate limits.
	SearchConcurrency int `json:"search_concurrency" yaml:"search_concurrency"`

	// VerifyConcurrency bounds simultaneous verification model calls
	// (default 5).
	VerifyConcurrency int `json:"verify_concurrency" yaml:"verify_concurrency"`
}

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins are the CORS origins permitted to call the API.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// ScheduleConfig holds settings for the schedule store.
type ScheduleConfig struct {
	// DataDir is the directory holding the schedule database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config is the full application configuration.
type Config struct {
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule"`
}
