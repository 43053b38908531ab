package allocation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Caddickbrown/Plannr/internal/domain"
)

// ProgressFunc receives coarse progress updates during a run. It is a
// side channel: correctness never depends on it being set or on what
// it does.
type ProgressFunc func(strategy Strategy, evaluated, total int)

// Options tunes one engine run.
type Options struct {
	// Progress, when set, is invoked after every ProgressEvery orders
	// (default 100) and once at the end of the pass.
	Progress      ProgressFunc
	ProgressEvery int
	// MaxOrders caps how many orders a run may evaluate. Zero means
	// unlimited. A capped run returns a partial result, flagged, with
	// totals for the orders it did evaluate.
	MaxOrders int
	// Incoming supply per part, used to annotate shortfalls with a
	// covering purchase order. Decision-neutral.
	Incoming map[string][]domain.IncomingSupply
	// Now anchors the covering-PO lookup; zero means time.Now().
	Now time.Time
	// TrustDays, when positive, marks incoming lines inside the window
	// as already credited into the ledger. Covering hints skip those
	// lines so the same purchase order is never counted twice.
	TrustDays int
}

func (o Options) progressEvery() int {
	if o.ProgressEvery <= 0 {
		return 100
	}
	return o.ProgressEvery
}

// Run evaluates the orders in the given sequence against the ledger,
// one pass, no backtracking. An order releases only when every
// requirement line is fully covered; its lines are then reserved
// all-or-nothing. A failed order reserves nothing and later orders
// still see the unconsumed ledger.
//
// ctx is checked between order evaluations. Cancellation aborts the
// run without corrupting the ledger: reservations are atomic per
// order, so the ledger is consistent at any stopping point.
func Run(ctx context.Context, strategy Strategy, orders []*domain.Order, ledger *Ledger, opts Options) (*Result, error) {
	started := time.Now()
	now := opts.Now
	if now.IsZero() {
		now = started
	}

	sequence := strategy.Sort(orders)
	result := &Result{
		Strategy:   strategy,
		Orders:     make([]OrderResult, 0, len(sequence)),
		ByCategory: make(map[domain.Category]Totals),
	}

	every := opts.progressEvery()
	for i, order := range sequence {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.MaxOrders > 0 && i >= opts.MaxOrders {
			result.Partial = true
			break
		}

		or := evaluate(order, ledger, opts.Incoming, now, opts.TrustDays)
		result.Orders = append(result.Orders, or)
		result.Totals.add(or)
		ct := result.ByCategory[order.Category]
		ct.add(or)
		result.ByCategory[order.Category] = ct
		result.Evaluated++

		if opts.Progress != nil && (result.Evaluated%every == 0 || result.Evaluated == len(sequence)) {
			opts.Progress(strategy, result.Evaluated, len(sequence))
		}
	}

	result.Remaining = ledger.Snapshot()
	result.Elapsed = time.Since(started)
	return result, nil
}

// evaluate decides a single order. Availability is checked for every
// line first; reservation happens only when all lines are covered, so
// a failed order leaves the ledger untouched.
func evaluate(order *domain.Order, ledger *Ledger, incoming map[string][]domain.IncomingSupply, now time.Time, trustDays int) OrderResult {
	or := OrderResult{Order: order}

	for _, line := range order.Requirements {
		available := ledger.Availability(line.PartID)
		if available.GreaterThanOrEqual(line.Quantity) {
			continue
		}
		short := line.Quantity.Sub(available)
		or.Shortfalls = append(or.Shortfalls, Shortfall{
			PartID:     line.PartID,
			Required:   line.Quantity,
			Available:  available,
			Short:      short,
			CoveringPO: coveringPO(incoming[line.PartID], short, now, trustDays),
		})
	}
	if len(or.Shortfalls) > 0 {
		return or
	}

	for _, line := range order.Requirements {
		// Covered by the availability check above; a failure here
		// would mean duplicate part lines, which the builder merges.
		ledger.Reserve(line.PartID, line.Quantity)
	}
	or.Released = true
	return or
}

// coveringPO finds the earliest future supply line that covers the
// shortage on its own. Lines inside the trust window are skipped when
// one is set: their quantity already sits in the ledger.
func coveringPO(supplies []domain.IncomingSupply, short decimal.Decimal, now time.Time, trustDays int) *domain.IncomingSupply {
	for i := range supplies {
		s := supplies[i]
		if s.PromisedDate == nil || s.PromisedDate.Before(now) {
			continue
		}
		if trustDays > 0 && s.DueWithin(now, trustDays) {
			continue
		}
		if s.QtyDue.GreaterThanOrEqual(short) {
			return &supplies[i]
		}
	}
	return nil
}
