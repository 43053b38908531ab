// Package contract defines the request/response shapes exchanged
// between the CLI and the planning services.
package contract

import (
	"time"

	"github.com/Caddickbrown/Plannr/internal/allocation"
	"github.com/Caddickbrown/Plannr/internal/demand"
	"github.com/Caddickbrown/Plannr/internal/domain"
)

// RunRequest configures one allocation run.
type RunRequest struct {
	// TripleOptimization runs all three core strategies and compares
	// them; off, only order-priority runs.
	TripleOptimization bool
	// AllStrategies extends the comparison to the full strategy
	// library. Implies TripleOptimization.
	AllStrategies bool

	// Strategy picks the ordering for a plain single-strategy run.
	// Ignored when a comparison mode is on; empty means order priority.
	Strategy allocation.Strategy

	// Categories restricts candidate orders. Nil means all orders;
	// empty means none (a legal, if pointless, request).
	Categories []domain.Category

	// SharedInventory makes categories compete for one plant-wide
	// ledger (the default). When false each category is allocated
	// against its own independent copy of availability.
	SharedInventory bool

	// IncludeCommitted charges order-less committed component demand
	// against the ledger before any strategy runs.
	IncludeCommitted bool

	// IncludePurchaseOrders credits confirmed incoming supply promised
	// within POTrustDays to the ledger. Opt-in.
	IncludePurchaseOrders bool
	POTrustDays           int

	// MaxOrders caps evaluation per strategy run; zero is unlimited.
	MaxOrders int

	// Progress receives coarse updates during strategy runs.
	Progress      allocation.ProgressFunc
	ProgressEvery int

	// Now anchors date comparisons; zero means time.Now().
	Now time.Time
}

// NewRunRequest returns a request with the engine defaults: single
// strategy, shared inventory, committed demand charged, on-hand
// availability only.
func NewRunRequest() RunRequest {
	return RunRequest{
		SharedInventory:  true,
		IncludeCommitted: true,
		POTrustDays:      49,
	}
}

// Strategies resolves the strategy set implied by the request flags.
func (r RunRequest) Strategies() []allocation.Strategy {
	switch {
	case r.AllStrategies:
		return allocation.AllStrategies()
	case r.TripleOptimization:
		return allocation.CoreStrategies()
	case r.Strategy != "":
		return []allocation.Strategy{r.Strategy}
	default:
		return []allocation.Strategy{allocation.StrategyOrderPriority}
	}
}

// RunResponse is the outcome of one allocation run across all
// requested strategies.
type RunResponse struct {
	RunID       string
	GeneratedAt time.Time

	// Candidates is the number of orders that survived category
	// filtering and entered each strategy run.
	Candidates int

	Comparison  *allocation.Comparison
	Diagnostics demand.Diagnostics
}

// ConfigError is a configuration problem detected before any strategy
// runs. Distinct from data-quality problems, which never fail a run.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Message
}
