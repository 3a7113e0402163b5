package cmd

import (
	"context"
	"fmt"

	"shopseed/internal/config"
	"shopseed/internal/db"
	"shopseed/internal/engine"
	"shopseed/internal/model"
	"shopseed/internal/report"
	"shopseed/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	genCustomers   int
	genProducts    int
	genOrders      int
	genMaxItems    int
	genMinVariants int
	genMaxVariants int
	genChaos       float64
	genScale       int
	genSeed        int64
	genStartingAt  string
	genEndingAt    string
	genAppend      bool
	genMergePolicy string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate demo data (idempotent window load)",
	Long: `Run the full generation pipeline: top customers, products and variants
up to their targets without duplicating natural keys, then fill the
generation window with orders and items and reconcile order totals.

By default the window's previous orders are deleted and regenerated, so
repeated runs over the same window are idempotent. Pass --append to
accumulate orders instead. All mutating phases run inside one transaction;
any failure rolls the whole run back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		opts, err := buildRunOptions(cmd, cfg)
		if err != nil {
			return err
		}
		// Reject bad configuration before any connection is made.
		if err := opts.Validate(); err != nil {
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

		report.PrintRunBanner(opts)

		// One transaction spans every mutating phase: a failed run leaves
		// the store exactly as it was.
		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		eng := engine.New(store.New(tx), opts)
		res, err := eng.Run(ctx)
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				return fmt.Errorf("run failed and rollback failed: %v (original: %w)", rbErr, err)
			}
			color.Yellow("🔄 Transaction rolled back")
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		report.PrintRunResult(res)

		st := store.New(pool)
		sum, err := st.Counts(ctx, opts.WindowStart, opts.WindowEnd)
		if err != nil {
			return err
		}
		report.PrintSummary(sum, opts.WindowStart, opts.WindowEnd, opts.MaxItemsPerOrder)

		violations, err := st.SizeViolations(ctx)
		if err != nil {
			return err
		}
		report.PrintViolations(violations)
		return nil
	},
}

// buildRunOptions merges config-file defaults with any flags the user set
// explicitly on this invocation.
func buildRunOptions(cmd *cobra.Command, cfg *config.Config) (config.RunOptions, error) {
	gen := cfg.Generate

	opts := config.RunOptions{
		Customers:          gen.Customers,
		Products:           gen.Products,
		Orders:             gen.Orders,
		MaxItemsPerOrder:   gen.MaxItemsPerOrder,
		MinVariantsPerProd: gen.MinVariantsPerProd,
		MaxVariantsPerProd: gen.MaxVariantsPerProd,
		ChaosPercent:       gen.ChaosPercent,
		Scale:              gen.Scale,
		Seed:               gen.Seed,
		Append:             genAppend,
		MergePolicy:        model.MergePolicy(gen.MergePolicy),
	}

	flags := cmd.Flags()
	if flags.Changed("customers") {
		opts.Customers = genCustomers
	}
	if flags.Changed("products") {
		opts.Products = genProducts
	}
	if flags.Changed("orders") {
		opts.Orders = genOrders
	}
	if flags.Changed("max-items-per-order") {
		opts.MaxItemsPerOrder = genMaxItems
	}
	if flags.Changed("min-variants-per-product") {
		opts.MinVariantsPerProd = genMinVariants
	}
	if flags.Changed("max-variants-per-product") {
		opts.MaxVariantsPerProd = genMaxVariants
	}
	if flags.Changed("chaos-percent") {
		opts.ChaosPercent = genChaos
	}
	if flags.Changed("scale") {
		opts.Scale = genScale
	}
	if flags.Changed("seed") {
		opts.Seed = genSeed
	}
	if flags.Changed("merge-policy") {
		opts.MergePolicy = model.MergePolicy(genMergePolicy)
	}

	start, end, err := resolveWindow(genStartingAt, genEndingAt)
	if err != nil {
		return config.RunOptions{}, err
	}
	opts.WindowStart = start
	opts.WindowEnd = end

	return opts, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	defaults := config.DefaultConfig().Generate
	generateCmd.Flags().IntVar(&genCustomers, "customers", defaults.Customers, "Target customer count")
	generateCmd.Flags().IntVar(&genProducts, "products", defaults.Products, "Target product count")
	generateCmd.Flags().IntVar(&genOrders, "orders", defaults.Orders, "Orders to generate in the window")
	generateCmd.Flags().IntVar(&genMaxItems, "max-items-per-order", defaults.MaxItemsPerOrder, "Maximum items per order")
	generateCmd.Flags().IntVar(&genMinVariants, "min-variants-per-product", defaults.MinVariantsPerProd, "Minimum variants per product")
	generateCmd.Flags().IntVar(&genMaxVariants, "max-variants-per-product", defaults.MaxVariantsPerProd, "Maximum variants per product")
	generateCmd.Flags().Float64Var(&genChaos, "chaos-percent", defaults.ChaosPercent, "Percent of variants given an invalid size")
	generateCmd.Flags().IntVar(&genScale, "scale", defaults.Scale, "Multiply base volumes")
	generateCmd.Flags().Int64Var(&genSeed, "seed", defaults.Seed, "Deterministic RNG seed")
	generateCmd.Flags().StringVar(&genStartingAt, "starting-at", "", "Window start (YYYY-MM-DD or RFC3339, default today)")
	generateCmd.Flags().StringVar(&genEndingAt, "ending-at", "", "Window end, exclusive (default tomorrow)")
	generateCmd.Flags().BoolVar(&genAppend, "append", false, "Keep existing window orders instead of replacing them")
	generateCmd.Flags().StringVar(&genMergePolicy, "merge-policy", defaults.MergePolicy, "Upsert conflict policy: none, refresh or newest")
}
