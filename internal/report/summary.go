// Package report renders run banners and post-run summaries on the console.
package report

import (
	"fmt"
	"time"

	"shopseed/internal/config"
	"shopseed/internal/engine"
	"shopseed/internal/store"

	"github.com/fatih/color"
)

func PrintRunBanner(opts config.RunOptions) {
	color.Cyan("\n=== Generating e-commerce demo data ===")
	fmt.Printf("Window: %s → %s\n",
		opts.WindowStart.Format(time.RFC3339), opts.WindowEnd.Format(time.RFC3339))
	policy := "replace"
	if opts.Append {
		policy = "append"
	}
	fmt.Printf("Scale x%d | Seed %d | Chaos %.1f%% | Window policy: %s\n\n",
		opts.Scale, opts.Seed, opts.ChaosPercent, policy)
}

func PrintRunResult(res *engine.RunResult) {
	color.Green("\n✅ Data generation complete (idempotent window load)")
	fmt.Printf("New rows — Customers: %d | Products: %d | Variants: %d\n",
		res.NewCustomers, res.NewProducts, res.NewVariants)
	fmt.Printf("Window — Orders removed: %d | Orders: %d | Items: %d | Totals reconciled: %d\n",
		res.OrdersDeleted, res.Orders, res.Items, res.TotalsUpdated)
}

func PrintSummary(sum store.Summary, start, end time.Time, maxItems int) {
	color.Cyan("\n📊 Store summary")
	fmt.Printf("Window: %s → %s\n", start.Format(time.RFC3339), end.Format(time.RFC3339))
	fmt.Printf("Counts — Customers: %d | Products: %d | Variants: %d\n",
		sum.Customers, sum.Products, sum.Variants)
	fmt.Printf("Window facts — Orders: %d | Items: %d | MaxItems/Order: %d\n",
		sum.Orders, sum.Items, maxItems)
}

func PrintViolations(violations []store.CategoryViolation) {
	color.Cyan("\n🔍 Chaos check (invalid sizes per category)")
	if len(violations) == 0 {
		color.Green("  no variants found")
		return
	}
	for _, v := range violations {
		if v.Invalid > 0 {
			color.Red("  • %s: %d invalid", v.Category, v.Invalid)
		} else {
			color.Green("  • %s: 0 invalid", v.Category)
		}
	}
}
