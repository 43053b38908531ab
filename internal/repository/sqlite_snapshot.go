package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Caddickbrown/Plannr/internal/demand"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(db *sql.DB) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: db}
}

// replaceTable clears a table and bulk-inserts rows inside one
// transaction, then records the import in snapshot_meta. An import
// that fails partway leaves the previous contents untouched.
func (r *SQLiteSnapshotRepo) replaceTable(ctx context.Context, table, insertQuery string, count int, bind func(i int) []any) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting %s import: %w", table, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < count; i++ {
		if _, err := stmt.ExecContext(ctx, bind(i)...); err != nil {
			return fmt.Errorf("inserting %s row %d: %w", table, i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (table_name, row_count, imported_at) VALUES (?, ?, ?)
		ON CONFLICT(table_name) DO UPDATE SET row_count = excluded.row_count, imported_at = excluded.imported_at`,
		table, count, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("recording %s import: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s import: %w", table, err)
	}
	committed = true
	return nil
}

func (r *SQLiteSnapshotRepo) ReplaceDemand(ctx context.Context, rows []demand.DemandRow) error {
	return r.replaceTable(ctx, "demand",
		`INSERT INTO demand (order_no, part_no, planner, start_date, qty_due) VALUES (?, ?, ?, ?, ?)`,
		len(rows), func(i int) []any {
			return []any{rows[i].OrderNo, rows[i].PartNo, rows[i].PlannerCode, rows[i].StartDate, rows[i].QtyDue}
		})
}

func (r *SQLiteSnapshotRepo) ReplacePlanned(ctx context.Context, rows []demand.PlannedDemandRow) error {
	return r.replaceTable(ctx, "planned_demand",
		`INSERT INTO planned_demand (order_no, component_part_no, qty_required) VALUES (?, ?, ?)`,
		len(rows), func(i int) []any {
			return []any{rows[i].OrderNo, rows[i].ComponentPartNo, rows[i].QtyRequired}
		})
}

func (r *SQLiteSnapshotRepo) ReplaceCommitted(ctx context.Context, rows []demand.ComponentDemandRow) error {
	return r.replaceTable(ctx, "component_demand",
		`INSERT INTO component_demand (component_part_no, qty_required) VALUES (?, ?)`,
		len(rows), func(i int) []any {
			return []any{rows[i].ComponentPartNo, rows[i].QtyRequired}
		})
}

func (r *SQLiteSnapshotRepo) ReplaceStock(ctx context.Context, rows []demand.StockRow) error {
	return r.replaceTable(ctx, "stock",
		`INSERT INTO stock (part_no, available_qty) VALUES (?, ?)`,
		len(rows), func(i int) []any {
			return []any{rows[i].PartNo, rows[i].AvailableQty}
		})
}

func (r *SQLiteSnapshotRepo) ReplaceHours(ctx context.Context, rows []demand.HoursRow) error {
	return r.replaceTable(ctx, "hours",
		`INSERT INTO hours (part_no, hours_per_unit) VALUES (?, ?)`,
		len(rows), func(i int) []any {
			return []any{rows[i].PartNo, rows[i].HoursPerUnit}
		})
}

func (r *SQLiteSnapshotRepo) ReplacePurchaseOrders(ctx context.Context, rows []demand.PurchaseOrderRow) error {
	return r.replaceTable(ctx, "purchase_orders",
		`INSERT INTO purchase_orders (po_no, part_no, qty_due, promised_date) VALUES (?, ?, ?, ?)`,
		len(rows), func(i int) []any {
			return []any{rows[i].PONumber, rows[i].PartNo, rows[i].QtyDue, rows[i].PromisedDate}
		})
}

func (r *SQLiteSnapshotRepo) Tables(ctx context.Context) (*demand.Tables, error) {
	tables := &demand.Tables{}

	if err := r.queryRows(ctx,
		`SELECT order_no, part_no, planner, start_date, qty_due FROM demand ORDER BY id`,
		func(rows *sql.Rows) error {
			var row demand.DemandRow
			if err := rows.Scan(&row.OrderNo, &row.PartNo, &row.PlannerCode, &row.StartDate, &row.QtyDue); err != nil {
				return err
			}
			tables.Demand = append(tables.Demand, row)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("loading demand: %w", err)
	}

	if err := r.queryRows(ctx,
		`SELECT order_no, component_part_no, qty_required FROM planned_demand ORDER BY id`,
		func(rows *sql.Rows) error {
			var row demand.PlannedDemandRow
			if err := rows.Scan(&row.OrderNo, &row.ComponentPartNo, &row.QtyRequired); err != nil {
				return err
			}
			tables.Planned = append(tables.Planned, row)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("loading planned demand: %w", err)
	}

	if err := r.queryRows(ctx,
		`SELECT component_part_no, qty_required FROM component_demand ORDER BY id`,
		func(rows *sql.Rows) error {
			var row demand.ComponentDemandRow
			if err := rows.Scan(&row.ComponentPartNo, &row.QtyRequired); err != nil {
				return err
			}
			tables.Committed = append(tables.Committed, row)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("loading component demand: %w", err)
	}

	if err := r.queryRows(ctx,
		`SELECT part_no, available_qty FROM stock ORDER BY id`,
		func(rows *sql.Rows) error {
			var row demand.StockRow
			if err := rows.Scan(&row.PartNo, &row.AvailableQty); err != nil {
				return err
			}
			tables.Stock = append(tables.Stock, row)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("loading stock: %w", err)
	}

	if err := r.queryRows(ctx,
		`SELECT part_no, hours_per_unit FROM hours ORDER BY id`,
		func(rows *sql.Rows) error {
			var row demand.HoursRow
			if err := rows.Scan(&row.PartNo, &row.HoursPerUnit); err != nil {
				return err
			}
			tables.Hours = append(tables.Hours, row)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("loading hours: %w", err)
	}

	if err := r.queryRows(ctx,
		`SELECT po_no, part_no, qty_due, promised_date FROM purchase_orders ORDER BY id`,
		func(rows *sql.Rows) error {
			var row demand.PurchaseOrderRow
			if err := rows.Scan(&row.PONumber, &row.PartNo, &row.QtyDue, &row.PromisedDate); err != nil {
				return err
			}
			tables.PurchaseOrders = append(tables.PurchaseOrders, row)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("loading purchase orders: %w", err)
	}

	return tables, nil
}

func (r *SQLiteSnapshotRepo) Info(ctx context.Context) ([]TableInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT table_name, row_count, imported_at FROM snapshot_meta ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot meta: %w", err)
	}
	defer rows.Close()

	var infos []TableInfo
	for rows.Next() {
		var info TableInfo
		var importedAt string
		if err := rows.Scan(&info.Name, &info.RowCount, &importedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot meta: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, importedAt); err == nil {
			info.ImportedAt = t
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (r *SQLiteSnapshotRepo) queryRows(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
