// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the uninavi CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uninavi/uninavi/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the uninavi CLI.
var rootCmd = &cobra.Command{
	Use:   "uninavi",
	Short: "University entrance exam search and counseling",
	Long: `uninavi searches the web for Japanese university admission information,
extracts structured records with a hosted language model, and filters them
against the student's conditions. It also offers an AI counseling chat and
entrance exam schedule management.

Run a one-shot search with the search subcommand, start the HTTP API with
serve, or talk to the counseling assistant with chat.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./uninavi.yaml or ~/.config/uninavi/config.yaml)")
}

func initConfig() {
	// .env is optional; environment variables win over file values.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("uninavi")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "uninavi"))
		}
	}

	viper.SetEnvPrefix("UNINAVI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
