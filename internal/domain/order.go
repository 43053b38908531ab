package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequirementLine is one atomic demand fact: an order needs a quantity
// of a part. Lines are produced by demand explosion and never mutated
// afterwards.
type RequirementLine struct {
	OrderID  string
	PartID   string
	Quantity decimal.Decimal
}

// Order is a shop order candidate for release. Orders are immutable
// once built; whether an order was released is derived output of an
// allocation run, not state on the order.
type Order struct {
	ID          string
	PartID      string
	PlannerCode string
	Category    Category
	DueDate     *time.Time
	// Piggyback marks orders whose NS<part>99 companion appears in
	// planned demand. Reporting only; never affects release.
	Piggyback bool

	Requirements []RequirementLine

	// Derived at build time from the part master.
	TotalHours    decimal.Decimal
	TotalQuantity decimal.Decimal
}

// RequiredQuantity returns the summed requirement for a single part
// across the order's lines.
func (o *Order) RequiredQuantity(partID string) decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Requirements {
		if line.PartID == partID {
			total = total.Add(line.Quantity)
		}
	}
	return total
}
