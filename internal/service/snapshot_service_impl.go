package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Caddickbrown/Plannr/internal/contract"
	"github.com/Caddickbrown/Plannr/internal/importer"
	"github.com/Caddickbrown/Plannr/internal/repository"
)

type snapshotService struct {
	snapshots repository.SnapshotRepo
	observer  RunObserver
}

func NewSnapshotService(snapshots repository.SnapshotRepo, observers ...RunObserver) SnapshotService {
	return &snapshotService{
		snapshots: snapshots,
		observer:  runObserverOrNoop(observers),
	}
}

// tableImport binds one CSV file to its parse-and-replace step. The
// closure captures nothing until run, so building the list is cheap
// even for requests that skip most tables.
type tableImport struct {
	table   string
	path    string
	replace func(ctx context.Context, path string) (int, error)
}

func (s *snapshotService) Import(ctx context.Context, req contract.ImportRequest) (summary *contract.ImportSummary, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveRun(ctx, RunEvent{
			Name:      "snapshot-import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if req.Empty() {
		return nil, &contract.ConfigError{Message: "no import files given"}
	}

	imports := []tableImport{
		{"demand", req.DemandPath, func(ctx context.Context, path string) (int, error) {
			return importFile(ctx, path, importer.ParseDemand, s.snapshots.ReplaceDemand)
		}},
		{"planned_demand", req.PlannedPath, func(ctx context.Context, path string) (int, error) {
			return importFile(ctx, path, importer.ParsePlanned, s.snapshots.ReplacePlanned)
		}},
		{"component_demand", req.CommittedPath, func(ctx context.Context, path string) (int, error) {
			return importFile(ctx, path, importer.ParseCommitted, s.snapshots.ReplaceCommitted)
		}},
		{"stock", req.StockPath, func(ctx context.Context, path string) (int, error) {
			return importFile(ctx, path, importer.ParseStock, s.snapshots.ReplaceStock)
		}},
		{"hours", req.HoursPath, func(ctx context.Context, path string) (int, error) {
			return importFile(ctx, path, importer.ParseHours, s.snapshots.ReplaceHours)
		}},
		{"purchase_orders", req.POPath, func(ctx context.Context, path string) (int, error) {
			return importFile(ctx, path, importer.ParsePurchaseOrders, s.snapshots.ReplacePurchaseOrders)
		}},
	}

	summary = &contract.ImportSummary{ImportedAt: startedAt}
	for _, imp := range imports {
		if imp.path == "" {
			continue
		}
		rows, err := imp.replace(ctx, imp.path)
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", imp.table, err)
		}
		fields[imp.table] = rows
		summary.Tables = append(summary.Tables, contract.TableImport{
			Table: imp.table,
			Path:  imp.path,
			Rows:  rows,
		})
	}
	return summary, nil
}

func (s *snapshotService) Info(ctx context.Context) ([]contract.SnapshotInfo, error) {
	infos, err := s.snapshots.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot info: %w", err)
	}
	out := make([]contract.SnapshotInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, contract.SnapshotInfo{
			Table:      info.Name,
			Rows:       info.RowCount,
			ImportedAt: info.ImportedAt,
		})
	}
	return out, nil
}

// importFile opens, parses, and wholesale-replaces one table.
func importFile[R any](
	ctx context.Context,
	path string,
	parse func(r io.Reader) ([]R, error),
	replace func(ctx context.Context, rows []R) error,
) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := parse(f)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := replace(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
