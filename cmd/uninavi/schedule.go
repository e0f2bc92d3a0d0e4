// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/uninavi/uninavi/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage entrance exam schedule events",
	Long: `Schedule manages a local database of entrance exam events: exam dates,
application deadlines, result announcements, and related appointments.`,
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedule events ordered by date",
	RunE:  runScheduleList,
}

func openScheduleStore() (*schedule.Store, error) {
	return schedule.NewStore(buildConfig().Schedule)
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	store, err := openScheduleStore()
	if err != nil {
		return err
	}
	defer store.Close()

	filters := schedule.Filters{}
	if t, _ := cmd.Flags().GetString("type"); t != "" {
		if !schedule.ValidType(t) {
			return fmt.Errorf("invalid event type %q (want one of %s)", t, strings.Join(schedule.EventTypes, ", "))
		}
		filters.Type = t
	}

	events, err := store.List(context.Background(), filters)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		fmt.Println("No schedule events.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-36s  %-12s  %-20s  %s\n", "ID", "Date", "Type", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, ev := range events {
		fmt.Fprintf(os.Stdout, "%-36s  %-12s  %-20s  %s\n",
			ev.ID, ev.Date.Format("2006-01-02"), ev.Type, ev.Title)
	}
	fmt.Fprintf(os.Stdout, "\n%d events\n", len(events))
	return nil
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a schedule event",
	RunE:  runScheduleAdd,
}

func runScheduleAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	dateStr, _ := cmd.Flags().GetString("date")
	eventType, _ := cmd.Flags().GetString("type")

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		// Exam pages usually carry Japanese dates; accept those too.
		var ok bool
		if date, ok = schedule.ParseJapaneseDate(dateStr); !ok {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD or 2025年2月25日)", dateStr)
		}
	}

	store, err := openScheduleStore()
	if err != nil {
		return err
	}
	defer store.Close()

	description, _ := cmd.Flags().GetString("description")
	location, _ := cmd.Flags().GetString("location")
	url, _ := cmd.Flags().GetString("url")
	ev, err := store.Create(context.Background(), schedule.FormData{
		Title:       title,
		Date:        date,
		Type:        eventType,
		Description: description,
		Location:    location,
		URL:         url,
	}, "")
	if err != nil {
		return err
	}
	fmt.Printf("Created %s (%s)\n", ev.ID, ev.Title)
	return nil
}

var scheduleDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a schedule event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openScheduleStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Delete(context.Background(), args[0], "")
	},
}

var scheduleStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show schedule statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openScheduleStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stats(context.Background(), "")
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	scheduleListCmd.Flags().String("type", "", "filter by event type")
	scheduleListCmd.Flags().Bool("json", false, "output events as JSON")

	scheduleAddCmd.Flags().String("title", "", "event title")
	scheduleAddCmd.Flags().String("date", "", "event date (YYYY-MM-DD)")
	scheduleAddCmd.Flags().String("type", "other", "event type")
	scheduleAddCmd.Flags().String("description", "", "event description")
	scheduleAddCmd.Flags().String("location", "", "event location")
	scheduleAddCmd.Flags().String("url", "", "related URL")
	scheduleAddCmd.MarkFlagRequired("title")
	scheduleAddCmd.MarkFlagRequired("date")

	scheduleCmd.AddCommand(scheduleListCmd, scheduleAddCmd, scheduleDeleteCmd, scheduleStatsCmd)
	rootCmd.AddCommand(scheduleCmd)
}
