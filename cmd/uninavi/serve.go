// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uninavi/uninavi/internal/api"
	"github.com/uninavi/uninavi/internal/chat"
	"github.com/uninavi/uninavi/internal/llm"
	"github.com/uninavi/uninavi/internal/pipeline"
	"github.com/uninavi/uninavi/internal/schedule"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the UniNavi HTTP API",
	Long: `Serve starts the HTTP API used by the frontend: university search
(plain and streaming), counseling chat (plain and streaming), and schedule
management. The process runs until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	engine := pipeline.New(cfg.Pipeline, os.Stderr)
	client := llm.NewClient(cfg.Pipeline.LLM)
	chatModel := cfg.Pipeline.LLM.Model
	if chatModel == "" {
		chatModel = llm.PreferredModels[0]
	}
	advisor := &chat.Advisor{
		Client:     client,
		Model:      chatModel,
		Configured: client.Configured(),
		Logw:       os.Stderr,
	}

	store, err := schedule.NewStore(cfg.Schedule)
	if err != nil {
		return err
	}
	defer store.Close()

	server := api.NewServer(engine, advisor, store, cfg.Server, os.Stderr)
	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return server.Router().Run(cfg.Server.Addr)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8000)")

	rootCmd.AddCommand(serveCmd)
}
