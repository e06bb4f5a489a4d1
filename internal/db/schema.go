package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          UUID PRIMARY KEY,
		user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		sku         TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		price       NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
		cost        NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (cost >= 0),
		quantity    INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		threshold   INTEGER NOT NULL DEFAULT 0 CHECK (threshold >= 0),
		supplier_id TEXT NOT NULL DEFAULT '',
		location    TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS products_user_sku_idx ON products (user_id, sku) WHERE sku <> ''`,
	`CREATE TABLE IF NOT EXISTS orders (
		id             UUID PRIMARY KEY,
		user_id        INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		order_number   TEXT NOT NULL,
		type           TEXT NOT NULL CHECK (type IN ('sales', 'purchase')),
		status         TEXT NOT NULL,
		customer_name  TEXT NOT NULL DEFAULT '',
		customer_email TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		supplier_id    TEXT NOT NULL DEFAULT '',
		total          NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (total >= 0),
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, order_number)
	)`,
	`CREATE INDEX IF NOT EXISTS orders_user_created_idx ON orders (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id           SERIAL PRIMARY KEY,
		order_id     UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id   TEXT NOT NULL,
		product_name TEXT NOT NULL DEFAULT '',
		sku          TEXT NOT NULL DEFAULT '',
		quantity     INTEGER NOT NULL CHECK (quantity > 0),
		unit_price   NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id             UUID PRIMARY KEY,
		user_id        INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		email          TEXT NOT NULL DEFAULT '',
		phone          TEXT NOT NULL DEFAULT '',
		address        TEXT NOT NULL DEFAULT '',
		city           TEXT NOT NULL DEFAULT '',
		country        TEXT NOT NULL DEFAULT '',
		payment_terms  TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'active',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables the repositories need when they are missing.
func Migrate(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
