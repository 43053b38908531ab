package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caddickbrown/Plannr/internal/demand"
	"github.com/Caddickbrown/Plannr/internal/repository"
	"github.com/Caddickbrown/Plannr/internal/service"
	"github.com/Caddickbrown/Plannr/internal/testutil"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) (*App, *repository.SQLiteSnapshotRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSnapshotRepo(db)

	app := &App{
		Plans:              service.NewPlanService(repo),
		Snapshots:          service.NewSnapshotService(repo),
		DefaultPOTrustDays: 49,
		ProgressEvery:      100,
		IsInteractive:      func() bool { return false },
	}
	return app, repo
}

// seedContendedSnapshot loads two orders fighting over eight units of
// a shared component. The early order carries the labor, the late one
// the volume, so date and quantity orderings disagree.
func seedContendedSnapshot(t *testing.T, repo *repository.SQLiteSnapshotRepo) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.ReplaceDemand(ctx, []demand.DemandRow{
		{OrderNo: "9001", PartNo: "TOP-1", PlannerCode: "3001", StartDate: "2026-03-02", QtyDue: "2"},
		{OrderNo: "9002", PartNo: "TOP-2", PlannerCode: "3001", StartDate: "2026-03-09", QtyDue: "30"},
	}))
	require.NoError(t, repo.ReplacePlanned(ctx, []demand.PlannedDemandRow{
		{OrderNo: "9001", ComponentPartNo: "COMP-1", QtyRequired: "8"},
		{OrderNo: "9002", ComponentPartNo: "COMP-1", QtyRequired: "8"},
	}))
	require.NoError(t, repo.ReplaceStock(ctx, []demand.StockRow{
		{PartNo: "TOP-1", AvailableQty: "50"},
		{PartNo: "TOP-2", AvailableQty: "50"},
		{PartNo: "COMP-1", AvailableQty: "8"},
	}))
	require.NoError(t, repo.ReplaceHours(ctx, []demand.HoursRow{
		{PartNo: "TOP-1", HoursPerUnit: "5"},
		{PartNo: "TOP-2", HoursPerUnit: "0.1"},
	}))
}

// execute runs the command tree and captures stdout.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	root.SilenceUsage = true
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

func TestRunCmd(t *testing.T) {
	app, repo := testApp(t)
	seedContendedSnapshot(t, repo)

	out, err := execute(t, app, "run")
	require.NoError(t, err)

	assert.Contains(t, out, "MATERIAL AVAILABILITY RUN")
	assert.Contains(t, out, "Candidate orders: 2")
	assert.Contains(t, out, "Released 1 of 2 orders")
	assert.Contains(t, out, "9002")
}

func TestRunCmd_ExplicitStrategy(t *testing.T) {
	app, repo := testApp(t)
	seedContendedSnapshot(t, repo)

	out, err := execute(t, app, "run", "--strategy", "quantity_priority")
	require.NoError(t, err)
	assert.Contains(t, out, "Demand (Large First)")

	_, err = execute(t, app, "run", "--strategy", "psychic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestRunCmd_UnknownCategory(t *testing.T) {
	app, repo := testApp(t)
	seedContendedSnapshot(t, repo)

	_, err := execute(t, app, "run", "--categories", "gadgets")
	require.Error(t, err)
}

func TestRunCmd_CSVExport(t *testing.T) {
	app, repo := testApp(t)
	seedContendedSnapshot(t, repo)
	out := filepath.Join(t.TempDir(), "decisions.csv")

	_, err := execute(t, app, "run", "--out", out)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "strategy", records[0][0])
	assert.Equal(t, "RELEASE", records[1][8])
	assert.Equal(t, "HOLD", records[2][8])
	assert.Equal(t, "COMP-1:8", records[2][10])
}

func TestOptimizeCmd(t *testing.T) {
	app, repo := testApp(t)
	seedContendedSnapshot(t, repo)

	out, err := execute(t, app, "optimize")
	require.NoError(t, err)

	assert.Contains(t, out, "Start Date (Early First)")
	assert.Contains(t, out, "Hours (Long First)")
	assert.Contains(t, out, "Demand (Large First)")
	assert.Contains(t, out, "Quantity Released: Demand (Large First)")
}

func TestOptimizeCmd_AllStrategies(t *testing.T) {
	app, repo := testApp(t)
	seedContendedSnapshot(t, repo)

	out, err := execute(t, app, "optimize", "--all-strategies")
	require.NoError(t, err)

	assert.Contains(t, out, "Demand (Small First)")
	assert.Contains(t, out, "Planner (A-Z)")
}

func TestSnapshotImportAndInfoCmds(t *testing.T) {
	app, _ := testApp(t)
	dir := t.TempDir()
	stockPath := filepath.Join(dir, "stock.csv")
	require.NoError(t, os.WriteFile(stockPath,
		[]byte("PART_NO,Available Qty\nPART-A,6\n"), 0o644))

	out, err := execute(t, app, "snapshot", "import", "--stock", stockPath)
	require.NoError(t, err)
	assert.Contains(t, out, "stock")
	assert.Contains(t, out, "1")

	out, err = execute(t, app, "snapshot", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "stock")
	assert.NotContains(t, out, "never")

	_, err = execute(t, app, "snapshot", "import")
	require.Error(t, err)
}
