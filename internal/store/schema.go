package store

import (
	"context"
	"fmt"
	"strings"
)

// DDL for the fixture schema. order_items cascades on order deletion so a
// window-replace is a single DELETE on orders.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS customers (
    id          BIGSERIAL PRIMARY KEY,
    full_name   VARCHAR(120) NOT NULL,
    email       VARCHAR(255) NOT NULL UNIQUE,
    country     VARCHAR(80)  NOT NULL,
    city        VARCHAR(80),
    age         INTEGER NOT NULL CHECK (age BETWEEN 18 AND 70),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
    id          BIGSERIAL PRIMARY KEY,
    name        VARCHAR(160) NOT NULL,
    category    VARCHAR(40)  NOT NULL,
    sku         VARCHAR(40)  NOT NULL UNIQUE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS product_variants (
    id                  BIGSERIAL PRIMARY KEY,
    product_id          BIGINT NOT NULL REFERENCES products(id),
    variant_sku         VARCHAR(40) NOT NULL UNIQUE,
    color               VARCHAR(20) NOT NULL,
    size                VARCHAR(8)  NOT NULL,
    manufacturing_price NUMERIC(10,2) NOT NULL,
    selling_price       NUMERIC(10,2) NOT NULL,
    stock_quantity      INTEGER NOT NULL CHECK (stock_quantity >= 0),
    is_active           BOOLEAN NOT NULL DEFAULT TRUE,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS orders (
    id           BIGSERIAL PRIMARY KEY,
    customer_id  BIGINT NOT NULL REFERENCES customers(id),
    order_date   TIMESTAMPTZ NOT NULL,
    status       VARCHAR(20) NOT NULL,
    total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_items (
    id          BIGSERIAL PRIMARY KEY,
    order_id    BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    variant_id  BIGINT NOT NULL REFERENCES product_variants(id),
    quantity    INTEGER NOT NULL CHECK (quantity >= 1),
    unit_price  NUMERIC(10,2) NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders (order_date);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id);
CREATE INDEX IF NOT EXISTS idx_product_variants_product_id ON product_variants (product_id);
`

// Provision applies the fixture DDL. Statements run one at a time because
// the extended protocol rejects multi-statement strings. Idempotent.
func (s *Store) Provision(ctx context.Context) error {
	for _, stmt := range strings.Split(createSchemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to provision schema: %w", err)
		}
	}
	return nil
}
