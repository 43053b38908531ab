package allocation

import (
	"context"
	"fmt"
	"sync"

	"github.com/Caddickbrown/Plannr/internal/domain"
)

// Objective is a dimension on which strategy outcomes are compared.
type Objective string

const (
	ObjectiveOrders   Objective = "orders"
	ObjectiveHours    Objective = "hours"
	ObjectiveQuantity Objective = "quantity"
)

// Objectives returns the comparison dimensions in report order.
func Objectives() []Objective {
	return []Objective{ObjectiveOrders, ObjectiveHours, ObjectiveQuantity}
}

// Display returns the human-readable objective name.
func (o Objective) Display() string {
	switch o {
	case ObjectiveOrders:
		return "Orders Released"
	case ObjectiveHours:
		return "Hours Released"
	case ObjectiveQuantity:
		return "Quantity Released"
	default:
		return string(o)
	}
}

// Comparison holds one result per strategy plus the winning strategy
// for each objective. Winners are independent: the same run can be
// best for hours under one strategy and best for order count under
// another.
type Comparison struct {
	Results []*Result
	Best    map[Objective]Strategy
}

// BestResult returns the winning result for an objective.
func (c *Comparison) BestResult(obj Objective) *Result {
	for _, r := range c.Results {
		if r.Strategy == c.Best[obj] {
			return r
		}
	}
	return nil
}

// Optimize runs the engine once per strategy, each against an
// independent clone of the base ledger, and ranks the outcomes.
//
// A single strategy's pass is ordering-sensitive and stays sequential,
// but the strategy runs share no mutable state, so they execute
// concurrently. Results come back in the strategies' given order.
func Optimize(ctx context.Context, strategies []Strategy, orders []*domain.Order, base *Ledger, opts Options) (*Comparison, error) {
	if len(strategies) == 0 {
		return nil, fmt.Errorf("no strategies given")
	}

	results := make([]*Result, len(strategies))
	errs := make([]error, len(strategies))

	var wg sync.WaitGroup
	for i, strategy := range strategies {
		wg.Add(1)
		go func(i int, strategy Strategy) {
			defer wg.Done()
			results[i], errs[i] = Run(ctx, strategy, orders, base.Clone(), opts)
		}(i, strategy)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return Compare(results), nil
}

// Compare ranks already-computed results per objective. Ties keep the
// earlier result, so the strategy order given to Optimize is also the
// tie preference.
func Compare(results []*Result) *Comparison {
	comparison := &Comparison{
		Results: results,
		Best:    make(map[Objective]Strategy, 3),
	}
	for _, obj := range Objectives() {
		best := results[0]
		for _, r := range results[1:] {
			if beats(r, best, obj) {
				best = r
			}
		}
		comparison.Best[obj] = best.Strategy
	}
	return comparison
}

func beats(a, b *Result, obj Objective) bool {
	switch obj {
	case ObjectiveOrders:
		return a.Totals.Released > b.Totals.Released
	case ObjectiveHours:
		return a.Totals.ReleasedHours.GreaterThan(b.Totals.ReleasedHours)
	case ObjectiveQuantity:
		return a.Totals.ReleasedQty.GreaterThan(b.Totals.ReleasedQty)
	}
	return false
}
