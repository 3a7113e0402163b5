package store

import (
	"context"
	"fmt"

	"shopseed/internal/model"
)

// keyIndex loads a natural-key → id mapping for one table. An empty table
// yields an empty (non-nil) map, so a first run needs no special-casing.
func (s *Store) keyIndex(ctx context.Context, table, keyColumn string) (map[string]int64, error) {
	query, args, err := s.qb.Select("id", keyColumn).From(table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build key query for %s: %w", table, err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s keys: %w", table, err)
	}
	defer rows.Close()

	index := make(map[string]int64)
	for rows.Next() {
		var id int64
		var key string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, fmt.Errorf("failed to scan %s key: %w", table, err)
		}
		index[key] = id
	}
	return index, rows.Err()
}

func (s *Store) CustomerEmails(ctx context.Context) (map[string]int64, error) {
	return s.keyIndex(ctx, "customers", "email")
}

func (s *Store) ProductSKUs(ctx context.Context) (map[string]int64, error) {
	return s.keyIndex(ctx, "products", "sku")
}

func (s *Store) VariantSKUs(ctx context.Context) (map[string]int64, error) {
	return s.keyIndex(ctx, "product_variants", "variant_sku")
}

// Products returns id, sku and category for every product, ordered by id so
// dependent generation walks them deterministically.
func (s *Store) Products(ctx context.Context) ([]model.ProductRef, error) {
	rows, err := s.db.Query(ctx, "SELECT id, sku, category FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.ProductRef
	for rows.Next() {
		var p model.ProductRef
		if err := rows.Scan(&p.ID, &p.SKU, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// VariantCounts returns how many variants each product already owns.
func (s *Store) VariantCounts(ctx context.Context) (map[int64]int, error) {
	rows, err := s.db.Query(ctx, "SELECT product_id, COUNT(*) FROM product_variants GROUP BY product_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query variant counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var productID int64
		var count int
		if err := rows.Scan(&productID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan variant count: %w", err)
		}
		counts[productID] = count
	}
	return counts, rows.Err()
}

func (s *Store) CustomerIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.Query(ctx, "SELECT id FROM customers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query customer ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan customer id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// VariantPool returns the active variants orders may reference, with their
// current selling price for unit-price snapshotting.
func (s *Store) VariantPool(ctx context.Context) ([]model.VariantRef, error) {
	rows, err := s.db.Query(ctx, "SELECT id, selling_price FROM product_variants WHERE is_active ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query variant pool: %w", err)
	}
	defer rows.Close()

	var pool []model.VariantRef
	for rows.Next() {
		var v model.VariantRef
		if err := rows.Scan(&v.ID, &v.SellingPrice); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		pool = append(pool, v)
	}
	return pool, rows.Err()
}
