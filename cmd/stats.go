package cmd

import (
	"context"
	"fmt"

	"shopseed/internal/config"
	"shopseed/internal/db"
	"shopseed/internal/report"
	"shopseed/internal/store"

	"github.com/spf13/cobra"
)

var (
	statsStartingAt string
	statsEndingAt   string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate counts for a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		start, end, err := resolveWindow(statsStartingAt, statsEndingAt)
		if err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx := context.Background()
		pool, err := db.Connect(ctx, dbURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		sum, err := store.New(pool).Counts(ctx, start, end)
		if err != nil {
			return err
		}

		report.PrintSummary(sum, start, end, cfg.Generate.MaxItemsPerOrder)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsStartingAt, "starting-at", "", "Window start (YYYY-MM-DD or RFC3339, default today)")
	statsCmd.Flags().StringVar(&statsEndingAt, "ending-at", "", "Window end, exclusive (default tomorrow)")
}
