// Package allocation decides which shop orders can be released against
// finite inventory. The engine is a single-pass greedy allocator; the
// optimizer runs it under several candidate orderings and compares the
// outcomes per objective.
package allocation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Caddickbrown/Plannr/internal/domain"
)

// Ledger tracks remaining available quantity per part within one
// strategy run. Availability never goes negative: reservations are
// accepted only when fully covered. A Ledger is owned by exactly one
// sequential run; strategy isolation comes from Clone, never from
// sharing.
type Ledger struct {
	available map[string]decimal.Decimal
}

// NewLedger builds a ledger from the part master.
func NewLedger(parts map[string]*domain.Part) *Ledger {
	l := &Ledger{available: make(map[string]decimal.Decimal, len(parts))}
	for id, p := range parts {
		if p.Available.IsPositive() {
			l.available[id] = p.Available
		}
	}
	return l
}

// Availability returns the remaining quantity for a part. Unknown
// parts have zero availability.
func (l *Ledger) Availability(partID string) decimal.Decimal {
	return l.available[partID]
}

// Reserve decrements a single part's availability. It either fully
// decrements or performs no mutation, reporting success.
func (l *Ledger) Reserve(partID string, qty decimal.Decimal) bool {
	if qty.IsNegative() {
		return false
	}
	remaining := l.available[partID]
	if remaining.LessThan(qty) {
		return false
	}
	l.available[partID] = remaining.Sub(qty)
	return true
}

// Charge subtracts committed draw that exists outside any candidate
// order, clamping at zero. Unlike Reserve it accepts partial coverage:
// committed demand beyond on-hand stock simply exhausts the part.
func (l *Ledger) Charge(partID string, qty decimal.Decimal) {
	if !qty.IsPositive() {
		return
	}
	remaining := l.available[partID].Sub(qty)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	l.available[partID] = remaining
}

// Credit adds incoming supply to a part's availability.
func (l *Ledger) Credit(partID string, qty decimal.Decimal) {
	if !qty.IsPositive() {
		return
	}
	l.available[partID] = l.available[partID].Add(qty)
}

// Clone returns an independent copy. Each strategy run must receive
// its own clone of the initial ledger.
func (l *Ledger) Clone() *Ledger {
	copied := make(map[string]decimal.Decimal, len(l.available))
	for id, qty := range l.available {
		copied[id] = qty
	}
	return &Ledger{available: copied}
}

// Snapshot returns the remaining quantities for parts that still have
// stock, for inclusion in run results.
func (l *Ledger) Snapshot() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(l.available))
	for id, qty := range l.available {
		if qty.IsPositive() {
			out[id] = qty
		}
	}
	return out
}

// Restore replaces the ledger contents with a previously taken
// snapshot.
func (l *Ledger) Restore(snapshot map[string]decimal.Decimal) {
	l.available = make(map[string]decimal.Decimal, len(snapshot))
	for id, qty := range snapshot {
		l.available[id] = qty
	}
}

// PartIDs returns the parts known to the ledger in sorted order.
func (l *Ledger) PartIDs() []string {
	ids := make([]string, 0, len(l.available))
	for id := range l.available {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CreditIncoming adds trusted incoming supply to the ledger: confirmed
// purchase order lines promised inside the trust window. The caller
// opts into this explicitly; base availability is on-hand only.
func (l *Ledger) CreditIncoming(incoming map[string][]domain.IncomingSupply, now time.Time, trustDays int) {
	for partID, supplies := range incoming {
		for _, s := range supplies {
			if s.DueWithin(now, trustDays) {
				l.Credit(partID, s.QtyDue)
			}
		}
	}
}
