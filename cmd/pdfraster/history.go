// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfraster/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs",
	Long: `History lists past conversion runs from the SQLite log configured
under history.path. Recording is off until that path is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cfg.History.Path == "" {
			return fmt.Errorf("history is not configured: set history.path in pdfraster.yaml")
		}

		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")
		ctx := context.Background()

		switch format {
		case "yaml":
			return store.ExportYAML(ctx, cmd.OutOrStdout(), limit)
		case "json":
			return store.ExportJSON(ctx, cmd.OutOrStdout(), limit)
		case "table":
			runs, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-7s  %3d pages  %s -> %s\n",
					r.StartedAt.Format(time.RFC3339), r.Status, r.Pages,
					r.SourcePath, r.OutputDir)
			}
			return nil
		default:
			return fmt.Errorf("unknown format %q: want table, yaml, or json", format)
		}
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(historyCmd)
}
