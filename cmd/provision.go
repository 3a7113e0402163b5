package cmd

import (
	"context"
	"fmt"

	"shopseed/internal/config"
	"shopseed/internal/db"
	"shopseed/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Apply the fixture schema to the target database",
	Long: `Create the customers, products, product_variants, orders and
order_items tables (plus indexes) if they do not exist yet. Safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
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

		if err := store.New(pool).Provision(ctx); err != nil {
			return err
		}

		color.Green("✅ Schema provisioned")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}
