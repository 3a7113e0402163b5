package store

import (
	"context"
	"fmt"
	"strings"

	"shopseed/internal/model"
)

// conflictClause builds the ON CONFLICT suffix for a natural-key upsert.
// MergeNewest only overwrites rows older than the candidate, so concurrent
// refreshes from other tools are never clobbered with stale data.
func conflictClause(table, key string, updates []string, policy model.MergePolicy) string {
	switch policy {
	case model.MergeNone:
		return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", key)
	case model.MergeNewest:
		return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s WHERE %s.updated_at < EXCLUDED.updated_at",
			key, excludedAssignments(updates), table)
	default:
		return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", key, excludedAssignments(updates))
	}
}

func excludedAssignments(columns []string) string {
	assignments := make([]string, len(columns))
	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
	}
	return strings.Join(assignments, ", ")
}

// UpsertCustomers merges a customer batch on the email natural key. The key
// itself is never rewritten; the policy decides what happens to the rest of
// the row. An empty batch is a no-op.
func (s *Store) UpsertCustomers(ctx context.Context, batch []model.Customer, policy model.MergePolicy) error {
	if len(batch) == 0 {
		return nil
	}

	builder := s.qb.Insert("customers").
		Columns("full_name", "email", "country", "city", "age", "created_at", "updated_at")
	for _, c := range batch {
		var city any
		if c.City != "" {
			city = c.City
		}
		builder = builder.Values(c.FullName, c.Email, c.Country, city, c.Age, c.CreatedAt, c.UpdatedAt)
	}
	builder = builder.Suffix(conflictClause("customers", "email",
		[]string{"full_name", "country", "city", "age", "updated_at"}, policy))

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build customer upsert: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert customers: %w", err)
	}
	return nil
}

func (s *Store) UpsertProducts(ctx context.Context, batch []model.Product, policy model.MergePolicy) error {
	if len(batch) == 0 {
		return nil
	}

	builder := s.qb.Insert("products").
		Columns("name", "category", "sku", "created_at", "updated_at")
	for _, p := range batch {
		builder = builder.Values(p.Name, p.Category, p.SKU, p.CreatedAt, p.UpdatedAt)
	}
	builder = builder.Suffix(conflictClause("products", "sku",
		[]string{"name", "category", "updated_at"}, policy))

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build product upsert: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert products: %w", err)
	}
	return nil
}

func (s *Store) UpsertVariants(ctx context.Context, batch []model.Variant, policy model.MergePolicy) error {
	if len(batch) == 0 {
		return nil
	}

	builder := s.qb.Insert("product_variants").
		Columns("product_id", "variant_sku", "color", "size", "manufacturing_price",
			"selling_price", "stock_quantity", "is_active", "created_at", "updated_at")
	for _, v := range batch {
		builder = builder.Values(v.ProductID, v.SKU, v.Color, v.Size, v.ManufacturingPrice,
			v.SellingPrice, v.StockQuantity, v.IsActive, v.CreatedAt, v.UpdatedAt)
	}
	builder = builder.Suffix(conflictClause("product_variants", "variant_sku",
		[]string{"color", "size", "manufacturing_price", "selling_price", "stock_quantity", "updated_at"}, policy))

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build variant upsert: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert variants: %w", err)
	}
	return nil
}
