// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uninavi/uninavi/internal/chat"
	"github.com/uninavi/uninavi/internal/llm"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the career counseling assistant one question",
	Long: `Chat sends one question to the counseling assistant and prints the
answer. With --stream the answer is printed token by token as it arrives.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	client := llm.NewClient(cfg.Pipeline.LLM)

	model := cfg.Pipeline.LLM.Model
	if model == "" {
		model = llm.PreferredModels[0]
	}
	advisor := &chat.Advisor{
		Client:     client,
		Model:      model,
		Configured: client.Configured(),
		Logw:       os.Stderr,
	}

	message := strings.Join(args, " ")
	stream, _ := cmd.Flags().GetBool("stream")
	if stream {
		err := advisor.ReplyStream(cmd.Context(), message, nil, func(delta string) error {
			fmt.Print(delta)
			return nil
		})
		fmt.Println()
		return err
	}

	fmt.Println(advisor.Reply(cmd.Context(), message, nil))
	return nil
}

func init() {
	chatCmd.Flags().Bool("stream", false, "stream the answer as it is generated")

	rootCmd.AddCommand(chatCmd)
}
