package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Caddickbrown/Plannr/internal/allocation"
	"github.com/Caddickbrown/Plannr/internal/contract"
	"github.com/Caddickbrown/Plannr/internal/demand"
	"github.com/Caddickbrown/Plannr/internal/domain"
	"github.com/Caddickbrown/Plannr/internal/repository"
)

type planService struct {
	snapshots repository.SnapshotRepo
	observer  RunObserver
}

func NewPlanService(snapshots repository.SnapshotRepo, observers ...RunObserver) PlanService {
	return &planService{
		snapshots: snapshots,
		observer:  runObserverOrNoop(observers),
	}
}

// Run executes one allocation run: load the snapshot, build the demand
// model, prepare the base ledger, then run and compare every requested
// strategy against its own clone of that ledger.
func (s *planService) Run(ctx context.Context, req contract.RunRequest) (resp *contract.RunResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"strategies":       len(req.Strategies()),
		"shared_inventory": req.SharedInventory,
	}
	defer func() {
		s.observer.ObserveRun(ctx, RunEvent{
			Name:      "plan-run",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = validateRunRequest(req); err != nil {
		return nil, err
	}

	tables, err := s.snapshots.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	snap := demand.Build(*tables)
	fields["orders"] = len(snap.Orders)
	fields["diagnostics"] = snap.Diagnostics.Total()

	now := req.Now
	if now.IsZero() {
		now = startedAt
	}

	// Trusted incoming supply is credited before committed draw is
	// charged, so a committed deficit beyond on-hand stock consumes the
	// credit instead of vanishing in the clamp at zero.
	base := allocation.NewLedger(snap.Parts)
	if req.IncludePurchaseOrders {
		base.CreditIncoming(snap.Incoming, now, req.POTrustDays)
	}
	if req.IncludeCommitted {
		for partID, qty := range snap.Committed {
			base.Charge(partID, qty)
		}
	}

	orders := domain.FilterOrders(snap.Orders, req.Categories)
	fields["candidates"] = len(orders)

	opts := allocation.Options{
		Progress:      req.Progress,
		ProgressEvery: req.ProgressEvery,
		MaxOrders:     req.MaxOrders,
		Incoming:      snap.Incoming,
		Now:           now,
	}
	if req.IncludePurchaseOrders {
		opts.TrustDays = req.POTrustDays
	}

	var comparison *allocation.Comparison
	if req.SharedInventory {
		comparison, err = allocation.Optimize(ctx, req.Strategies(), orders, base, opts)
	} else {
		comparison, err = s.runIsolated(ctx, req.Strategies(), orders, base, opts)
	}
	if err != nil {
		return nil, err
	}

	return &contract.RunResponse{
		RunID:       uuid.NewString(),
		GeneratedAt: startedAt,
		Candidates:  len(orders),
		Comparison:  comparison,
		Diagnostics: snap.Diagnostics,
	}, nil
}

// runIsolated gives each category its own copy of the base ledger, so
// categories never compete for the same stock. Per-category partial
// results merge back into one result per strategy. The evaluation
// budget spans the whole strategy run, not each pool: every pool draws
// down the same allowance, and pools left unrun flag the merged result
// as partial.
func (s *planService) runIsolated(ctx context.Context, strategies []allocation.Strategy, orders []*domain.Order, base *allocation.Ledger, opts allocation.Options) (*allocation.Comparison, error) {
	byCategory := make(map[domain.Category][]*domain.Order)
	var categories []domain.Category
	for _, o := range orders {
		if _, seen := byCategory[o.Category]; !seen {
			categories = append(categories, o.Category)
		}
		byCategory[o.Category] = append(byCategory[o.Category], o)
	}

	results := make([]*allocation.Result, 0, len(strategies))
	for _, strategy := range strategies {
		parts := make([]*allocation.Result, 0, len(categories))
		remaining := opts.MaxOrders
		skipped := false
		for _, cat := range categories {
			poolOpts := opts
			if opts.MaxOrders > 0 {
				if remaining <= 0 {
					skipped = true
					break
				}
				poolOpts.MaxOrders = remaining
			}
			r, err := allocation.Run(ctx, strategy, byCategory[cat], base.Clone(), poolOpts)
			if err != nil {
				return nil, err
			}
			remaining -= r.Evaluated
			parts = append(parts, r)
		}
		merged := allocation.MergeResults(strategy, parts)
		if skipped {
			merged.Partial = true
		}
		results = append(results, merged)
	}
	return allocation.Compare(results), nil
}

func validateRunRequest(req contract.RunRequest) error {
	if req.MaxOrders < 0 {
		return &contract.ConfigError{Message: "max orders must not be negative"}
	}
	if req.POTrustDays < 0 {
		return &contract.ConfigError{Message: "purchase order trust window must not be negative"}
	}
	if req.IncludePurchaseOrders && req.POTrustDays == 0 {
		return &contract.ConfigError{Message: "purchase order trust window required when incoming supply is included"}
	}
	return nil
}
