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

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report variants whose size violates their category domain",
	Long: `Count, per product category, the variants carrying a size from the
wrong domain (letter sizes on shoes, numeric sizes on apparel). These are
the rows chaos mode plants for downstream validation suites.`,
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

		violations, err := store.New(pool).SizeViolations(ctx)
		if err != nil {
			return err
		}

		report.PrintViolations(violations)

		if validateStrict {
			var total int64
			for _, v := range violations {
				total += v.Invalid
			}
			if total > 0 {
				return fmt.Errorf("%d variants have invalid sizes", total)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit non-zero when any invalid size exists")
}
