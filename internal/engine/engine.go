// Package engine is the idempotent, window-scoped generation core. It tops
// entity tables up to their target counts without ever duplicating a natural
// key, regenerates or appends orders inside the configured window, and
// reconciles order totals from persisted items. Every phase runs against the
// Store interface; the caller decides whether that is a transaction.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopseed/internal/config"
	"shopseed/internal/faker"
	"shopseed/internal/model"

	"github.com/fatih/color"
)

// ErrEmptyVariantPool aborts order generation when no active variants exist:
// an order without items is an invalid fixture, so we fail fast instead of
// silently writing empty orders.
var ErrEmptyVariantPool = errors.New("variant pool is empty: generate variants before orders")

// ErrNoCustomers aborts order generation when the customer table is empty.
var ErrNoCustomers = errors.New("no customers to attach orders to")

// Quantity range for generated order items.
const (
	itemQtyMin = 1
	itemQtyMax = 3
)

// Price distribution for generated variants. Selling price is always a
// markup over manufacturing price, so selling > manufacturing holds for
// every non-chaos field.
const (
	manufPriceMin = 10.0
	manufPriceMax = 80.0
	markupMin     = 1.2
	markupMax     = 2.0
	stockMax      = 200
	ageMin        = 18
	ageMax        = 70
)

// Store is what the engine needs from persistence. *store.Store satisfies
// it; tests plug in an in-memory fake.
type Store interface {
	CustomerEmails(ctx context.Context) (map[string]int64, error)
	ProductSKUs(ctx context.Context) (map[string]int64, error)
	VariantSKUs(ctx context.Context) (map[string]int64, error)
	Products(ctx context.Context) ([]model.ProductRef, error)
	VariantCounts(ctx context.Context) (map[int64]int, error)
	CustomerIDs(ctx context.Context) ([]int64, error)
	VariantPool(ctx context.Context) ([]model.VariantRef, error)

	UpsertCustomers(ctx context.Context, batch []model.Customer, policy model.MergePolicy) error
	UpsertProducts(ctx context.Context, batch []model.Product, policy model.MergePolicy) error
	UpsertVariants(ctx context.Context, batch []model.Variant, policy model.MergePolicy) error

	DeleteOrdersBetween(ctx context.Context, start, end time.Time) (int64, error)
	InsertOrders(ctx context.Context, batch []model.Order) ([]int64, error)
	InsertOrderItems(ctx context.Context, batch []model.OrderItem) error
	ReconcileTotals(ctx context.Context, start, end time.Time) (int64, error)
}

// RunResult reports what one run actually did.
type RunResult struct {
	NewCustomers  int
	NewProducts   int
	NewVariants   int
	OrdersDeleted int64
	Orders        int
	Items         int
	TotalsUpdated int64
}

type Engine struct {
	store Store
	opts  config.RunOptions
	rng   *faker.Source
	chaos *chaosInjector
	now   func() time.Time

	// cross-phase state, filled as phases execute
	orderIDs []int64
	pool     []model.VariantRef
	result   RunResult
}

func New(st Store, opts config.RunOptions) *Engine {
	rng := faker.New(opts.Seed)
	return &Engine{
		store: st,
		opts:  opts,
		rng:   rng,
		chaos: newChaosInjector(rng, opts.ChaosPercent),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Run executes all generation phases in dependency order. Options are
// validated up front so a misconfigured run never touches the store. Any
// phase error aborts the remaining phases; the caller is expected to roll
// back its transaction.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	if err := e.opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run options: %w", err)
	}

	phases := []phase{
		{name: "customers", run: e.runCustomers},
		{name: "products", run: e.runProducts},
		{name: "variants", after: []string{"products"}, run: e.runVariants},
		{name: "orders", after: []string{"customers", "variants"}, run: e.runOrders},
		{name: "order_items", after: []string{"orders", "variants"}, run: e.runOrderItems},
		{name: "totals", after: []string{"order_items"}, run: e.runTotals},
	}

	ordered, err := phaseOrder(phases)
	if err != nil {
		return nil, err
	}

	for _, p := range ordered {
		if err := p.run(ctx); err != nil {
			return nil, fmt.Errorf("phase %s: %w", p.name, err)
		}
	}

	result := e.result
	return &result, nil
}

func (e *Engine) runCustomers(ctx context.Context) error {
	existing, err := e.store.CustomerEmails(ctx)
	if err != nil {
		return err
	}
	e.reserveKeys(existing)

	batch, err := e.newCustomers(existing, e.opts.ScaledCustomers())
	if err != nil {
		return err
	}
	if err := e.store.UpsertCustomers(ctx, batch, e.opts.MergePolicy); err != nil {
		return err
	}

	e.result.NewCustomers = len(batch)
	color.Cyan("  👤 customers: %d existing, %d new", len(existing), len(batch))
	return nil
}

func (e *Engine) runProducts(ctx context.Context) error {
	existing, err := e.store.ProductSKUs(ctx)
	if err != nil {
		return err
	}
	e.reserveKeys(existing)

	batch, err := e.newProducts(existing, e.opts.ScaledProducts())
	if err != nil {
		return err
	}
	if err := e.store.UpsertProducts(ctx, batch, e.opts.MergePolicy); err != nil {
		return err
	}

	e.result.NewProducts = len(batch)
	color.Cyan("  📦 products: %d existing, %d new", len(existing), len(batch))
	return nil
}

func (e *Engine) runVariants(ctx context.Context) error {
	existing, err := e.store.VariantSKUs(ctx)
	if err != nil {
		return err
	}
	e.reserveKeys(existing)

	products, err := e.store.Products(ctx)
	if err != nil {
		return err
	}
	counts, err := e.store.VariantCounts(ctx)
	if err != nil {
		return err
	}

	batch, err := e.newVariants(products, counts)
	if err != nil {
		return err
	}
	if err := e.store.UpsertVariants(ctx, batch, e.opts.MergePolicy); err != nil {
		return err
	}

	e.result.NewVariants = len(batch)
	color.Cyan("  🎨 variants: %d existing, %d new", len(existing), len(batch))
	return nil
}

func (e *Engine) runOrders(ctx context.Context) error {
	if !e.opts.Append {
		deleted, err := e.store.DeleteOrdersBetween(ctx, e.opts.WindowStart, e.opts.WindowEnd)
		if err != nil {
			return err
		}
		e.result.OrdersDeleted = deleted
		if deleted > 0 {
			color.Yellow("  🗑️  replaced window: %d orders removed", deleted)
		}
	}

	target := e.opts.ScaledOrders()
	if target == 0 {
		return nil
	}

	customerIDs, err := e.store.CustomerIDs(ctx)
	if err != nil {
		return err
	}
	if len(customerIDs) == 0 {
		return ErrNoCustomers
	}

	pool, err := e.store.VariantPool(ctx)
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		return ErrEmptyVariantPool
	}
	e.pool = pool

	batch := e.newOrders(customerIDs, target)
	ids, err := e.store.InsertOrders(ctx, batch)
	if err != nil {
		return err
	}
	e.orderIDs = ids

	e.result.Orders = len(ids)
	color.Cyan("  🧾 orders: %d generated in window", len(ids))
	return nil
}

func (e *Engine) runOrderItems(ctx context.Context) error {
	if len(e.orderIDs) == 0 {
		return nil
	}

	batch := e.newOrderItems(e.orderIDs, e.pool)
	if err := e.store.InsertOrderItems(ctx, batch); err != nil {
		return err
	}

	e.result.Items = len(batch)
	color.Cyan("  🛒 order items: %d generated", len(batch))
	return nil
}

func (e *Engine) runTotals(ctx context.Context) error {
	updated, err := e.store.ReconcileTotals(ctx, e.opts.WindowStart, e.opts.WindowEnd)
	if err != nil {
		return err
	}

	e.result.TotalsUpdated = updated
	color.Cyan("  💰 totals: %d orders reconciled", updated)
	return nil
}

// reserveKeys feeds existing natural keys into the unique samplers so newly
// minted keys can never collide with persisted ones.
func (e *Engine) reserveKeys(existing map[string]int64) {
	for key := range existing {
		e.rng.Reserve(key)
	}
}
