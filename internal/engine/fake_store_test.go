package engine

import (
	"context"
	"math"
	"sort"
	"time"

	"shopseed/internal/model"
)

// fakeStore is an in-memory Store with the same conflict and window
// semantics as the Postgres implementation.
type fakeStore struct {
	nextID int64

	customerIDs []int64
	customers   map[int64]model.Customer
	custByEmail map[string]int64

	productIDs []int64
	products   map[int64]model.Product
	prodBySKU  map[string]int64

	variantIDs []int64
	variants   map[int64]model.Variant
	varBySKU   map[string]int64

	orderIDs []int64
	orders   map[int64]model.Order
	items    []model.OrderItem

	mutations int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers:   make(map[int64]model.Customer),
		custByEmail: make(map[string]int64),
		products:    make(map[int64]model.Product),
		prodBySKU:   make(map[string]int64),
		variants:    make(map[int64]model.Variant),
		varBySKU:    make(map[string]int64),
		orders:      make(map[int64]model.Order),
	}
}

func (f *fakeStore) newID() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CustomerEmails(context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(f.custByEmail))
	for k, v := range f.custByEmail {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) ProductSKUs(context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(f.prodBySKU))
	for k, v := range f.prodBySKU {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) VariantSKUs(context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(f.varBySKU))
	for k, v := range f.varBySKU {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) Products(context.Context) ([]model.ProductRef, error) {
	refs := make([]model.ProductRef, 0, len(f.productIDs))
	for _, id := range f.productIDs {
		p := f.products[id]
		refs = append(refs, model.ProductRef{ID: id, SKU: p.SKU, Category: p.Category})
	}
	return refs, nil
}

func (f *fakeStore) VariantCounts(context.Context) (map[int64]int, error) {
	counts := make(map[int64]int)
	for _, id := range f.variantIDs {
		counts[f.variants[id].ProductID]++
	}
	return counts, nil
}

func (f *fakeStore) CustomerIDs(context.Context) ([]int64, error) {
	out := make([]int64, len(f.customerIDs))
	copy(out, f.customerIDs)
	return out, nil
}

func (f *fakeStore) VariantPool(context.Context) ([]model.VariantRef, error) {
	var pool []model.VariantRef
	for _, id := range f.variantIDs {
		v := f.variants[id]
		if v.IsActive {
			pool = append(pool, model.VariantRef{ID: id, SellingPrice: v.SellingPrice})
		}
	}
	return pool, nil
}

func (f *fakeStore) UpsertCustomers(_ context.Context, batch []model.Customer, policy model.MergePolicy) error {
	f.mutations++
	for _, c := range batch {
		if id, exists := f.custByEmail[c.Email]; exists {
			if policy == model.MergeNone {
				continue
			}
			cur := f.customers[id]
			if policy == model.MergeNewest && !cur.UpdatedAt.Before(c.UpdatedAt) {
				continue
			}
			cur.FullName, cur.Country, cur.City, cur.Age, cur.UpdatedAt =
				c.FullName, c.Country, c.City, c.Age, c.UpdatedAt
			f.customers[id] = cur
			continue
		}
		id := f.newID()
		f.customers[id] = c
		f.custByEmail[c.Email] = id
		f.customerIDs = append(f.customerIDs, id)
	}
	return nil
}

func (f *fakeStore) UpsertProducts(_ context.Context, batch []model.Product, policy model.MergePolicy) error {
	f.mutations++
	for _, p := range batch {
		if id, exists := f.prodBySKU[p.SKU]; exists {
			if policy == model.MergeNone {
				continue
			}
			cur := f.products[id]
			if policy == model.MergeNewest && !cur.UpdatedAt.Before(p.UpdatedAt) {
				continue
			}
			cur.Name, cur.Category, cur.UpdatedAt = p.Name, p.Category, p.UpdatedAt
			f.products[id] = cur
			continue
		}
		id := f.newID()
		f.products[id] = p
		f.prodBySKU[p.SKU] = id
		f.productIDs = append(f.productIDs, id)
	}
	return nil
}

func (f *fakeStore) UpsertVariants(_ context.Context, batch []model.Variant, policy model.MergePolicy) error {
	f.mutations++
	for _, v := range batch {
		if id, exists := f.varBySKU[v.SKU]; exists {
			if policy == model.MergeNone {
				continue
			}
			cur := f.variants[id]
			if policy == model.MergeNewest && !cur.UpdatedAt.Before(v.UpdatedAt) {
				continue
			}
			cur.Color, cur.Size, cur.ManufacturingPrice, cur.SellingPrice, cur.StockQuantity, cur.UpdatedAt =
				v.Color, v.Size, v.ManufacturingPrice, v.SellingPrice, v.StockQuantity, v.UpdatedAt
			f.variants[id] = cur
			continue
		}
		id := f.newID()
		f.variants[id] = v
		f.varBySKU[v.SKU] = id
		f.variantIDs = append(f.variantIDs, id)
	}
	return nil
}

func (f *fakeStore) DeleteOrdersBetween(_ context.Context, start, end time.Time) (int64, error) {
	f.mutations++
	doomed := make(map[int64]bool)
	var kept []int64
	for _, id := range f.orderIDs {
		o := f.orders[id]
		if !o.OrderDate.Before(start) && o.OrderDate.Before(end) {
			doomed[id] = true
			delete(f.orders, id)
			continue
		}
		kept = append(kept, id)
	}
	f.orderIDs = kept

	var remaining []model.OrderItem
	for _, it := range f.items {
		if !doomed[it.OrderID] {
			remaining = append(remaining, it)
		}
	}
	f.items = remaining
	return int64(len(doomed)), nil
}

func (f *fakeStore) InsertOrders(_ context.Context, batch []model.Order) ([]int64, error) {
	f.mutations++
	ids := make([]int64, 0, len(batch))
	for _, o := range batch {
		id := f.newID()
		f.orders[id] = o
		f.orderIDs = append(f.orderIDs, id)
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) InsertOrderItems(_ context.Context, batch []model.OrderItem) error {
	f.mutations++
	f.items = append(f.items, batch...)
	return nil
}

func (f *fakeStore) ReconcileTotals(_ context.Context, start, end time.Time) (int64, error) {
	f.mutations++
	sums := make(map[int64]float64)
	for _, it := range f.items {
		sums[it.OrderID] += float64(it.Quantity) * it.UnitPrice
	}

	var updated int64
	for _, id := range f.orderIDs {
		o := f.orders[id]
		if o.OrderDate.Before(start) || !o.OrderDate.Before(end) {
			continue
		}
		o.TotalAmount = math.Round(sums[id]*100) / 100
		f.orders[id] = o
		updated++
	}
	return updated, nil
}

// ordersBetween returns the window's orders keyed by id, for assertions.
func (f *fakeStore) ordersBetween(start, end time.Time) map[int64]model.Order {
	out := make(map[int64]model.Order)
	for _, id := range f.orderIDs {
		o := f.orders[id]
		if !o.OrderDate.Before(start) && o.OrderDate.Before(end) {
			out[id] = o
		}
	}
	return out
}

func (f *fakeStore) itemsByOrder() map[int64][]model.OrderItem {
	out := make(map[int64][]model.OrderItem)
	for _, it := range f.items {
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out
}

// sortedVariants returns variants in id order, for sequence comparisons.
func (f *fakeStore) sortedVariants() []model.Variant {
	ids := make([]int64, len(f.variantIDs))
	copy(ids, f.variantIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.Variant, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.variants[id])
	}
	return out
}
