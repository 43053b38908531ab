package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent,
// so re-running against an existing database is safe.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The snapshot schema mirrors the planning-system extracts one for
// one. Quantities and dates are stored as the TEXT the extract
// carried; coercion to typed values happens in the demand builder, not
// in SQL.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS demand (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		order_no    TEXT NOT NULL,
		part_no     TEXT NOT NULL DEFAULT '',
		planner     TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL DEFAULT '',
		qty_due     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_demand_order ON demand(order_no)`,

	`CREATE TABLE IF NOT EXISTS planned_demand (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		order_no          TEXT NOT NULL,
		component_part_no TEXT NOT NULL,
		qty_required      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_planned_order ON planned_demand(order_no)`,
	`CREATE INDEX IF NOT EXISTS idx_planned_part ON planned_demand(component_part_no)`,

	`CREATE TABLE IF NOT EXISTS component_demand (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		component_part_no TEXT NOT NULL,
		qty_required      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_component_part ON component_demand(component_part_no)`,

	`CREATE TABLE IF NOT EXISTS stock (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		part_no       TEXT NOT NULL,
		available_qty TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_part ON stock(part_no)`,

	`CREATE TABLE IF NOT EXISTS hours (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		part_no        TEXT NOT NULL,
		hours_per_unit TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_hours_part ON hours(part_no)`,

	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		po_no         TEXT NOT NULL,
		part_no       TEXT NOT NULL,
		qty_due       TEXT NOT NULL DEFAULT '',
		promised_date TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_po_part ON purchase_orders(part_no)`,

	`CREATE TABLE IF NOT EXISTS snapshot_meta (
		table_name  TEXT PRIMARY KEY,
		row_count   INTEGER NOT NULL DEFAULT 0,
		imported_at TEXT NOT NULL
	)`,
}
