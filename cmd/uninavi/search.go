// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/uninavi/uninavi/internal/pipeline"
	"github.com/uninavi/uninavi/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search universities matching the given conditions",
	Long: `Search runs the full pipeline once: it plans web queries from the
conditions, aggregates results from the configured search providers,
extracts structured university records with the model, and verifies each
record against the conditions. Progress is reported on stderr.`,
	RunE: runSearch,
}

func searchFilters(cmd *cobra.Command) types.SearchFilters {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return types.SearchFilters{
		Region:           get("region"),
		Faculty:          get("faculty"),
		ExamType:         get("exam-type"),
		UseCommonTest:    get("use-common-test"),
		DeviationScore:   get("deviation-score"),
		InstitutionType:  get("institution-type"),
		Prefecture:       get("prefecture"),
		NameKeyword:      get("name-keyword"),
		CommonTestScore:  get("common-test-score"),
		ExternalEnglish:  get("external-english"),
		RequiredSubjects: get("required-subjects"),
		TuitionMax:       get("tuition-max"),
		Scholarship:      get("scholarship"),
		Qualification:    get("qualification"),
		ExamSchedule:     get("exam-schedule"),
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	engine := pipeline.New(cfg.Pipeline, os.Stderr)

	records := engine.Run(context.Background(), searchFilters(cmd), func(ev types.ProgressEvent) {
		fmt.Fprintf(os.Stderr, "[%s] %v\n", ev.Stage, ev.Detail)
	}, nil)

	output, _ := cmd.Flags().GetString("output")
	return formatSearchOutput(records, output)
}

func formatSearchOutput(records []types.UniversityRecord, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(records)
	case "table", "":
		// Fall through to the table below.
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or yaml)", format)
	}

	if len(records) == 0 {
		fmt.Println("No universities found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-14s  %-12s  %-8s  %s\n",
		"Name", "Faculty", "ExamType", "DevScore", "OfficialURL")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%-20s  %-14s  %-12s  %-8s  %s\n",
			r.Name, r.Faculty, r.ExamType, r.DeviationScore, r.OfficialURL)
	}
	fmt.Fprintf(os.Stdout, "\n%d universities\n", len(records))
	return nil
}

func init() {
	searchCmd.Flags().String("region", "", "region name (e.g. 関東)")
	searchCmd.Flags().String("faculty", "", "faculty keyword (e.g. 工学部)")
	searchCmd.Flags().String("exam-type", "", "exam type (e.g. 一般選抜)")
	searchCmd.Flags().String("use-common-test", "", "common test usage (あり/なし)")
	searchCmd.Flags().String("deviation-score", "", "deviation score range")
	searchCmd.Flags().String("institution-type", "", "institution type (国立/公立/私立)")
	searchCmd.Flags().String("prefecture", "", "prefecture name")
	searchCmd.Flags().String("name-keyword", "", "university name keyword")
	searchCmd.Flags().String("common-test-score", "", "common test score rate")
	searchCmd.Flags().String("external-english", "", "external English exam (あり/不要)")
	searchCmd.Flags().String("required-subjects", "", "required subjects")
	searchCmd.Flags().String("tuition-max", "", "tuition ceiling")
	searchCmd.Flags().String("scholarship", "", "scholarship availability (あり)")
	searchCmd.Flags().String("qualification", "", "obtainable qualification")
	searchCmd.Flags().String("exam-schedule", "", "exam schedule keyword")
	searchCmd.Flags().String("output", "table", "output format (table, json, yaml)")

	rootCmd.AddCommand(searchCmd)
}
