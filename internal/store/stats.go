package store

import (
	"context"
	"fmt"
	"time"
)

// Summary is the aggregate view the reporter prints after a run: global
// entity counts plus window-scoped order facts.
type Summary struct {
	Customers int64
	Products  int64
	Variants  int64
	Orders    int64
	Items     int64
}

// CategoryViolation counts variants whose size falls outside the category's
// domain, the signal chaos mode plants for downstream validation suites.
type CategoryViolation struct {
	Category string
	Invalid  int64
}

func (s *Store) Counts(ctx context.Context, start, end time.Time) (Summary, error) {
	var sum Summary

	scalars := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&sum.Customers, "SELECT COUNT(*) FROM customers", nil},
		{&sum.Products, "SELECT COUNT(*) FROM products", nil},
		{&sum.Variants, "SELECT COUNT(*) FROM product_variants", nil},
		{&sum.Orders, "SELECT COUNT(*) FROM orders WHERE order_date >= $1 AND order_date < $2", []any{start, end}},
		{&sum.Items, `
			SELECT COUNT(*)
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.order_date >= $1 AND o.order_date < $2`, []any{start, end}},
	}

	for _, q := range scalars {
		if err := s.db.QueryRow(ctx, q.query, q.args...).Scan(q.dest); err != nil {
			return Summary{}, fmt.Errorf("failed to query counts: %w", err)
		}
	}
	return sum, nil
}

// SizeViolations reports, per category, how many variants carry a size from
// the wrong domain (letters on shoes, numbers on apparel).
func (s *Store) SizeViolations(ctx context.Context) ([]CategoryViolation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.category,
		       SUM(CASE
		               WHEN (p.category = 'shoes' AND v.size !~ '^[0-9]+$')
		                 OR (p.category <> 'shoes' AND v.size NOT IN ('S', 'M', 'L', 'XL'))
		               THEN 1
		               ELSE 0
		           END) AS invalid
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		GROUP BY 1
		ORDER BY 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query size violations: %w", err)
	}
	defer rows.Close()

	var violations []CategoryViolation
	for rows.Next() {
		var v CategoryViolation
		if err := rows.Scan(&v.Category, &v.Invalid); err != nil {
			return nil, fmt.Errorf("failed to scan violation row: %w", err)
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}
