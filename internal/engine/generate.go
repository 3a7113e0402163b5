package engine

import (
	"hash/fnv"
	"io"

	"shopseed/internal/faker"
	"shopseed/internal/model"
)

// newCustomers produces exactly the records needed to bring the customer
// table up to target. Targets at or below the existing count yield nothing;
// the engine grows data, it never prunes it.
func (e *Engine) newCustomers(existing map[string]int64, target int) ([]model.Customer, error) {
	need := target - len(existing)
	if need <= 0 {
		return nil, nil
	}

	now := e.now()
	batch := make([]model.Customer, 0, need)
	for i := 0; i < need; i++ {
		name := e.rng.Name()
		email, err := e.rng.Email()
		if err != nil {
			return nil, err
		}

		c := model.Customer{
			FullName:  name,
			Email:     email,
			Country:   e.rng.Country(),
			Age:       e.rng.IntBetween(ageMin, ageMax),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if e.rng.Chance(0.8) {
			c.City = e.rng.City()
		}
		batch = append(batch, c)
	}
	return batch, nil
}

func (e *Engine) newProducts(existing map[string]int64, target int) ([]model.Product, error) {
	need := target - len(existing)
	if need <= 0 {
		return nil, nil
	}

	now := e.now()
	batch := make([]model.Product, 0, need)
	for i := 0; i < need; i++ {
		category := e.rng.Pick(model.ProductCategories)
		sku, err := e.rng.SKU("SKU")
		if err != nil {
			return nil, err
		}

		batch = append(batch, model.Product{
			Name:      e.rng.Word() + " " + category,
			Category:  category,
			SKU:       sku,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return batch, nil
}

// newVariants tops each product up to a per-product variant count drawn from
// the configured range. Size comes from the category's domain and may be
// swapped into the wrong domain by the chaos injector; nothing else a chaos
// run touches differs from a normal one.
func (e *Engine) newVariants(products []model.ProductRef, counts map[int64]int) ([]model.Variant, error) {
	now := e.now()
	var batch []model.Variant

	for _, p := range products {
		need := e.variantTarget(p.SKU) - counts[p.ID]

		for i := 0; i < need; i++ {
			sku, err := e.rng.SKU("VAR")
			if err != nil {
				return nil, err
			}

			size := e.rng.Pick(model.SizeDomain(p.Category))
			size = e.chaos.corruptSize(p.Category, size)

			manuf := faker.Money(e.rng.Float64Between(manufPriceMin, manufPriceMax))
			sell := faker.Money(manuf * e.rng.Float64Between(markupMin, markupMax))

			batch = append(batch, model.Variant{
				ProductID:          p.ID,
				SKU:                sku,
				Color:              e.rng.Pick(model.Colors),
				Size:               size,
				ManufacturingPrice: manuf,
				SellingPrice:       sell,
				StockQuantity:      e.rng.IntBetween(0, stockMax),
				IsActive:           true,
				CreatedAt:          now,
				UpdatedAt:          now,
			})
		}
	}
	return batch, nil
}

// variantTarget is the per-product variant count, derived from the run seed
// and the product SKU rather than the shared random stream. A re-run with
// the same seed therefore sees the same target for every product and tops
// none of them up, no matter how many draws earlier phases consumed.
func (e *Engine) variantTarget(sku string) int {
	h := fnv.New64a()
	io.WriteString(h, sku)
	span := uint64(e.opts.MaxVariantsPerProd - e.opts.MinVariantsPerProd + 1)
	return e.opts.MinVariantsPerProd + int((h.Sum64()^uint64(e.opts.Seed))%span)
}

// newOrders samples dates uniformly inside the window and statuses from the
// weighted distribution. Totals are zero here; the reconciliation phase is
// the only authority on total_amount.
func (e *Engine) newOrders(customerIDs []int64, target int) []model.Order {
	now := e.now()
	batch := make([]model.Order, 0, target)
	for i := 0; i < target; i++ {
		batch = append(batch, model.Order{
			CustomerID:  customerIDs[e.rng.IntBetween(0, len(customerIDs)-1)],
			OrderDate:   e.rng.TimeBetween(e.opts.WindowStart, e.opts.WindowEnd),
			Status:      e.rng.Weighted(model.OrderStatuses, model.OrderStatusWeights),
			TotalAmount: 0,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return batch
}

// newOrderItems gives each order 1..max items over distinct variants, with
// the unit price snapshotted from the variant's current selling price.
func (e *Engine) newOrderItems(orderIDs []int64, pool []model.VariantRef) []model.OrderItem {
	now := e.now()
	var batch []model.OrderItem

	maxItems := e.opts.MaxItemsPerOrder
	if maxItems > len(pool) {
		maxItems = len(pool)
	}

	for _, orderID := range orderIDs {
		count := e.rng.IntBetween(1, maxItems)
		for _, idx := range e.rng.SampleIndexes(len(pool), count) {
			batch = append(batch, model.OrderItem{
				OrderID:   orderID,
				VariantID: pool[idx].ID,
				Quantity:  e.rng.IntBetween(itemQtyMin, itemQtyMax),
				UnitPrice: pool[idx].SellingPrice,
				CreatedAt: now,
			})
		}
	}
	return batch
}
