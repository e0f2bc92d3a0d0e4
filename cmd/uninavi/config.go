// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/uninavi/uninavi/internal/secrets"
	"github.com/uninavi/uninavi/pkg/types"
)

// buildConfig assembles the runtime configuration. Credentials resolve
// environment first, then the .secrets/ directory; everything else comes
// from the viper config file with defaults.
func buildConfig() types.Config {
	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("schedule.data_dir", "data")
	viper.SetDefault("llm.timeout", "120s")

	timeout, err := time.ParseDuration(viper.GetString("llm.timeout"))
	if err != nil {
		timeout = 0
	}

	model := secrets.Resolve(loadedSecrets, "HF_MODEL_ID", "hf-model-id")
	if model == "" {
		model = viper.GetString("llm.model")
	}

	return types.Config{
		Pipeline: types.PipelineConfig{
			LLM: types.LLMConfig{
				HTTPConfig: types.HTTPConfig{Timeout: timeout},
				APIKey:     secrets.Resolve(loadedSecrets, "HF_API_KEY", "hf-api-key"),
				Model:      model,
				BaseURL:    viper.GetString("llm.base_url"),
				MaxRetries: viper.GetInt("llm.max_retries"),
			},
			WebSearch: types.WebSearchConfig{
				TavilyAPIKey:       secrets.Resolve(loadedSecrets, "TAVILY_API_KEY", "tavily-api-key"),
				SerperAPIKey:       secrets.Resolve(loadedSecrets, "SERPER_API_KEY", "serper-api-key"),
				MaxResultsPerQuery: viper.GetInt("web_search.max_results_per_query"),
			},
			SearchConcurrency: viper.GetInt("pipeline.search_concurrency"),
			VerifyConcurrency: viper.GetInt("pipeline.verify_concurrency"),
		},
		Server: types.ServerConfig{
			Addr:           viper.GetString("server.addr"),
			AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		},
		Schedule: types.ScheduleConfig{
			DataDir: viper.GetString("schedule.data_dir"),
		},
	}
}
