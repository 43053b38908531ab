package allocation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Caddickbrown/Plannr/internal/domain"
)

// Shortfall is one part whose availability could not cover an order's
// requirement at decision time.
type Shortfall struct {
	PartID    string
	Required  decimal.Decimal
	Available decimal.Decimal
	Short     decimal.Decimal
	// CoveringPO points at the first future purchase order whose
	// quantity covers the shortage, when one exists. A hint for the
	// planner, never an input to the release decision.
	CoveringPO *domain.IncomingSupply
}

// OrderResult is the release decision for one order under one
// strategy.
type OrderResult struct {
	Order      *domain.Order
	Released   bool
	Shortfalls []Shortfall
}

// Totals aggregates released orders.
type Totals struct {
	Orders        int
	Released      int
	Held          int
	TotalHours    decimal.Decimal
	ReleasedHours decimal.Decimal
	HeldHours     decimal.Decimal
	TotalQty      decimal.Decimal
	ReleasedQty   decimal.Decimal
	HeldQty       decimal.Decimal
}

func (t *Totals) add(r OrderResult) {
	t.Orders++
	t.TotalHours = t.TotalHours.Add(r.Order.TotalHours)
	t.TotalQty = t.TotalQty.Add(r.Order.TotalQuantity)
	if r.Released {
		t.Released++
		t.ReleasedHours = t.ReleasedHours.Add(r.Order.TotalHours)
		t.ReleasedQty = t.ReleasedQty.Add(r.Order.TotalQuantity)
	} else {
		t.Held++
		t.HeldHours = t.HeldHours.Add(r.Order.TotalHours)
		t.HeldQty = t.HeldQty.Add(r.Order.TotalQuantity)
	}
}

// merge folds another totals block into this one.
func (t *Totals) merge(other Totals) {
	t.Orders += other.Orders
	t.Released += other.Released
	t.Held += other.Held
	t.TotalHours = t.TotalHours.Add(other.TotalHours)
	t.ReleasedHours = t.ReleasedHours.Add(other.ReleasedHours)
	t.HeldHours = t.HeldHours.Add(other.HeldHours)
	t.TotalQty = t.TotalQty.Add(other.TotalQty)
	t.ReleasedQty = t.ReleasedQty.Add(other.ReleasedQty)
	t.HeldQty = t.HeldQty.Add(other.HeldQty)
}

// Result is the outcome of one strategy run: per-order decisions, the
// remaining ledger, and aggregate totals overall and per category.
type Result struct {
	Strategy   Strategy
	Orders     []OrderResult
	Totals     Totals
	ByCategory map[domain.Category]Totals
	Remaining  map[string]decimal.Decimal
	// Partial is set when the run stopped at the evaluation budget
	// before seeing every candidate.
	Partial   bool
	Evaluated int
	Elapsed   time.Duration
}

// Released returns the released order results in evaluation order.
func (r *Result) Released() []OrderResult {
	out := make([]OrderResult, 0, r.Totals.Released)
	for _, or := range r.Orders {
		if or.Released {
			out = append(out, or)
		}
	}
	return out
}

// MergeResults combines per-category runs of the same strategy into a
// single result, used when categories hold isolated inventory pools.
// Remaining is not meaningful across isolated pools and stays nil.
func MergeResults(strategy Strategy, parts []*Result) *Result {
	merged := &Result{
		Strategy:   strategy,
		ByCategory: make(map[domain.Category]Totals),
	}
	for _, p := range parts {
		merged.Orders = append(merged.Orders, p.Orders...)
		merged.Totals.merge(p.Totals)
		for cat, t := range p.ByCategory {
			ct := merged.ByCategory[cat]
			ct.merge(t)
			merged.ByCategory[cat] = ct
		}
		merged.Partial = merged.Partial || p.Partial
		merged.Evaluated += p.Evaluated
		merged.Elapsed += p.Elapsed
	}
	return merged
}
