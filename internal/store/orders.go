package store

import (
	"context"
	"fmt"
	"time"

	"shopseed/internal/model"
)

// DeleteOrdersBetween removes all orders dated in [start, end); their items
// go with them through the cascade. Returns the number of orders removed.
func (s *Store) DeleteOrdersBetween(ctx context.Context, start, end time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx,
		"DELETE FROM orders WHERE order_date >= $1 AND order_date < $2", start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orders in window: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertOrders writes a batch and returns the generated ids in insertion
// order, so items can be matched back to their orders.
func (s *Store) InsertOrders(ctx context.Context, batch []model.Order) ([]int64, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	builder := s.qb.Insert("orders").
		Columns("customer_id", "order_date", "status", "total_amount", "created_at", "updated_at")
	for _, o := range batch {
		builder = builder.Values(o.CustomerID, o.OrderDate, o.Status, o.TotalAmount, o.CreatedAt, o.UpdatedAt)
	}
	builder = builder.Suffix("RETURNING id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order insert: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert orders: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, len(batch))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order ids: %w", err)
	}
	if len(ids) != len(batch) {
		return nil, fmt.Errorf("inserted %d orders but got %d ids back", len(batch), len(ids))
	}
	return ids, nil
}

func (s *Store) InsertOrderItems(ctx context.Context, batch []model.OrderItem) error {
	if len(batch) == 0 {
		return nil
	}

	builder := s.qb.Insert("order_items").
		Columns("order_id", "variant_id", "quantity", "unit_price", "created_at")
	for _, it := range batch {
		builder = builder.Values(it.OrderID, it.VariantID, it.Quantity, it.UnitPrice, it.CreatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order item insert: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}
	return nil
}

// ReconcileTotals overwrites total_amount for every order dated in
// [start, end) with the sum of quantity * unit_price over its items. Orders
// without items get zero. Orders outside the window are never touched.
func (s *Store) ReconcileTotals(ctx context.Context, start, end time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders o
		SET total_amount = COALESCE(t.sum_total, 0)
		FROM (SELECT id FROM orders WHERE order_date >= $1 AND order_date < $2) w
		LEFT JOIN (
			SELECT order_id, SUM(quantity * unit_price) AS sum_total
			FROM order_items
			GROUP BY order_id
		) t ON t.order_id = w.id
		WHERE o.id = w.id
	`, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile order totals: %w", err)
	}
	return tag.RowsAffected(), nil
}
