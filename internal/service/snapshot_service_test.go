package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caddickbrown/Plannr/internal/contract"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSnapshotService_ImportAndRun(t *testing.T) {
	repo := newSnapshotRepo(t)
	dir := t.TempDir()

	req := contract.ImportRequest{
		DemandPath: writeCSV(t, dir, "demand.csv",
			"SO No,Part No,Planner,Start Date,Rev Qty Due\n"+
				"9001,PART-A,3001,2026-03-02,4\n"+
				"9002,PART-A,3001,2026-03-09,4\n"),
		StockPath: writeCSV(t, dir, "stock.csv",
			"PART_NO,Available Qty\nPART-A,6\n"),
		HoursPath: writeCSV(t, dir, "hours.csv",
			"PART_NO,Hours per Unit\nPART-A,0.5\n"),
	}

	svc := NewSnapshotService(repo)
	summary, err := svc.Import(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, summary.Tables, 3)
	assert.Equal(t, "demand", summary.Tables[0].Table)
	assert.Equal(t, 2, summary.Tables[0].Rows)

	// The imported snapshot feeds an allocation run end to end.
	plans := NewPlanService(repo)
	resp, err := plans.Run(context.Background(), contract.NewRunRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Comparison.Results[0].Totals.Released)
	assert.Equal(t, 1, resp.Comparison.Results[0].Totals.Held)
}

func TestSnapshotService_ImportReplacesWholesale(t *testing.T) {
	repo := newSnapshotRepo(t)
	dir := t.TempDir()
	svc := NewSnapshotService(repo)
	ctx := context.Background()

	first := writeCSV(t, dir, "stock1.csv", "PART_NO,Available Qty\nPART-A,6\nPART-B,2\n")
	_, err := svc.Import(ctx, contract.ImportRequest{StockPath: first})
	require.NoError(t, err)

	second := writeCSV(t, dir, "stock2.csv", "PART_NO,Available Qty\nPART-C,9\n")
	summary, err := svc.Import(ctx, contract.ImportRequest{StockPath: second})
	require.NoError(t, err)
	require.Len(t, summary.Tables, 1)
	assert.Equal(t, 1, summary.Tables[0].Rows)

	tables, err := repo.Tables(ctx)
	require.NoError(t, err)
	require.Len(t, tables.Stock, 1)
	assert.Equal(t, "PART-C", tables.Stock[0].PartNo)
}

func TestSnapshotService_ImportErrors(t *testing.T) {
	repo := newSnapshotRepo(t)
	dir := t.TempDir()
	svc := NewSnapshotService(repo)
	ctx := context.Background()

	var cfgErr *contract.ConfigError
	_, err := svc.Import(ctx, contract.ImportRequest{})
	require.ErrorAs(t, err, &cfgErr)

	_, err = svc.Import(ctx, contract.ImportRequest{DemandPath: filepath.Join(dir, "missing.csv")})
	require.Error(t, err)

	bad := writeCSV(t, dir, "bad.csv", "SO No,Part No\n9001,PART-A\n")
	_, err = svc.Import(ctx, contract.ImportRequest{DemandPath: bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestSnapshotService_Info(t *testing.T) {
	repo := newSnapshotRepo(t)
	dir := t.TempDir()
	svc := NewSnapshotService(repo)
	ctx := context.Background()

	path := writeCSV(t, dir, "stock.csv", "PART_NO,Available Qty\nPART-A,6\n")
	_, err := svc.Import(ctx, contract.ImportRequest{StockPath: path})
	require.NoError(t, err)

	infos, err := svc.Info(ctx)
	require.NoError(t, err)

	byTable := make(map[string]contract.SnapshotInfo)
	for _, info := range infos {
		byTable[info.Table] = info
	}
	require.Contains(t, byTable, "stock")
	assert.Equal(t, 1, byTable["stock"].Rows)
	assert.False(t, byTable["stock"].ImportedAt.IsZero())
}
