package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Caddickbrown/Plannr/internal/demand"
	"github.com/Caddickbrown/Plannr/internal/repository"
	"github.com/Caddickbrown/Plannr/internal/testutil"
)

// newSnapshotRepo returns a repo backed by a fresh in-memory database.
func newSnapshotRepo(t *testing.T) *repository.SQLiteSnapshotRepo {
	t.Helper()
	return repository.NewSQLiteSnapshotRepo(testutil.NewTestDB(t))
}

// seedSnapshot loads one full snapshot into the repo. Nil slices leave
// their table empty, which the demand builder treats as no data.
func seedSnapshot(t *testing.T, repo *repository.SQLiteSnapshotRepo, tables demand.Tables) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.ReplaceDemand(ctx, tables.Demand))
	require.NoError(t, repo.ReplacePlanned(ctx, tables.Planned))
	require.NoError(t, repo.ReplaceCommitted(ctx, tables.Committed))
	require.NoError(t, repo.ReplaceStock(ctx, tables.Stock))
	require.NoError(t, repo.ReplaceHours(ctx, tables.Hours))
	require.NoError(t, repo.ReplacePurchaseOrders(ctx, tables.PurchaseOrders))
}

// kitOrder is a one-line demand row in the kit planner family.
func kitOrder(orderNo, partNo, qty, startDate string) demand.DemandRow {
	return demand.DemandRow{
		OrderNo:     orderNo,
		PartNo:      partNo,
		PlannerCode: "3001",
		StartDate:   startDate,
		QtyDue:      qty,
	}
}

func stock(partNo, qty string) demand.StockRow {
	return demand.StockRow{PartNo: partNo, AvailableQty: qty}
}

func hours(partNo, perUnit string) demand.HoursRow {
	return demand.HoursRow{PartNo: partNo, HoursPerUnit: perUnit}
}
