package testutil

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Caddickbrown/Plannr/internal/domain"
)

// Qty parses a decimal literal, panicking on bad input. Test-only.
func Qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Date returns a UTC midnight timestamp for test due dates.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// Part builds a part master entry.
func Part(id, available, hoursPerUnit string) *domain.Part {
	return &domain.Part{
		ID:           id,
		Available:    Qty(available),
		HoursPerUnit: Qty(hoursPerUnit),
	}
}

// Parts indexes part fixtures by id.
func Parts(parts ...*domain.Part) map[string]*domain.Part {
	out := make(map[string]*domain.Part, len(parts))
	for _, p := range parts {
		out[p.ID] = p
	}
	return out
}

// OrderSpec describes an order fixture compactly: requirement lines as
// part→quantity literals.
type OrderSpec struct {
	ID      string
	Part    string
	Planner string
	Due     *time.Time
	Lines   map[string]string
	Hours   string
	Qty     string
}

// Order builds an order fixture with derived totals. When Hours/Qty
// are left blank, TotalQuantity is derived from the lines and
// TotalHours stays zero.
func Order(spec OrderSpec) *domain.Order {
	o := &domain.Order{
		ID:          spec.ID,
		PartID:      spec.Part,
		PlannerCode: spec.Planner,
		Category:    domain.CategoryForPlanner(spec.Planner),
		DueDate:     spec.Due,
	}
	parts := make([]string, 0, len(spec.Lines))
	for part := range spec.Lines {
		parts = append(parts, part)
	}
	sort.Strings(parts)
	for _, part := range parts {
		o.Requirements = append(o.Requirements, domain.RequirementLine{
			OrderID:  spec.ID,
			PartID:   part,
			Quantity: Qty(spec.Lines[part]),
		})
		o.TotalQuantity = o.TotalQuantity.Add(Qty(spec.Lines[part]))
	}
	if spec.Qty != "" {
		o.TotalQuantity = Qty(spec.Qty)
	}
	if spec.Hours != "" {
		o.TotalHours = Qty(spec.Hours)
	}
	return o
}
