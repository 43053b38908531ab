package repository

import (
	"context"
	"time"

	"github.com/Caddickbrown/Plannr/internal/demand"
)

// TableInfo describes one imported snapshot table.
type TableInfo struct {
	Name       string
	RowCount   int
	ImportedAt time.Time
}

// SnapshotRepo stores one plan snapshot: verbatim copies of the
// planning-system extracts the allocation run consumes. Each table is
// replaced wholesale on import; there is no row-level editing.
type SnapshotRepo interface {
	ReplaceDemand(ctx context.Context, rows []demand.DemandRow) error
	ReplacePlanned(ctx context.Context, rows []demand.PlannedDemandRow) error
	ReplaceCommitted(ctx context.Context, rows []demand.ComponentDemandRow) error
	ReplaceStock(ctx context.Context, rows []demand.StockRow) error
	ReplaceHours(ctx context.Context, rows []demand.HoursRow) error
	ReplacePurchaseOrders(ctx context.Context, rows []demand.PurchaseOrderRow) error

	// Tables loads the full snapshot for a run.
	Tables(ctx context.Context) (*demand.Tables, error)

	// Info reports row counts and import times per table.
	Info(ctx context.Context) ([]TableInfo, error)
}
