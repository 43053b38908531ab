package demand

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Caddickbrown/Plannr/internal/domain"
)

// Snapshot is the fully exploded demand picture for one run: candidate
// orders with their requirement lines, the part master, order-less
// committed draw, and incoming supply. It is built once per run and
// discarded afterwards.
type Snapshot struct {
	Orders    []*domain.Order
	Parts     map[string]*domain.Part
	Committed map[string]decimal.Decimal
	Incoming  map[string][]domain.IncomingSupply

	Diagnostics Diagnostics
}

// Build explodes the raw tables into a Snapshot.
//
// Every direct demand row creates or updates the order keyed by its
// order number and contributes one requirement line for its own part.
// Planned demand rows join on the order number and append component
// lines. Duplicate (order, part) lines are summed. Committed component
// rows carry no order linkage and are aggregated separately; they never
// become per-order requirements.
func Build(tables Tables) *Snapshot {
	snap := &Snapshot{
		Parts:     make(map[string]*domain.Part),
		Committed: make(map[string]decimal.Decimal),
		Incoming:  make(map[string][]domain.IncomingSupply),
	}
	diag := &snap.Diagnostics

	buildParts(snap, tables, diag)
	buildCommitted(snap, tables, diag)
	buildIncoming(snap, tables, diag)

	// Planned component lines grouped by normalized order number, and
	// the set of component part numbers for piggyback detection.
	plannedByOrder := make(map[string]map[string]decimal.Decimal)
	plannedParts := make(map[string]bool)
	for _, row := range tables.Planned {
		orderNo := normalizeOrderNo(row.OrderNo)
		partNo := normalizePartNo(row.ComponentPartNo)
		if orderNo == "" || partNo == "" {
			continue
		}
		plannedParts[partNo] = true
		qty := coerceQuantity(row.QtyRequired, diag)
		if plannedByOrder[orderNo] == nil {
			plannedByOrder[orderNo] = make(map[string]decimal.Decimal)
		}
		plannedByOrder[orderNo][partNo] = plannedByOrder[orderNo][partNo].Add(qty)
	}

	// Direct demand rows create the orders.
	orderIndex := make(map[string]*domain.Order)
	directLines := make(map[string]map[string]decimal.Decimal)
	for _, row := range tables.Demand {
		orderNo := normalizeOrderNo(row.OrderNo)
		if orderNo == "" {
			diag.SkippedOrders++
			continue
		}
		order, ok := orderIndex[orderNo]
		if !ok {
			order = &domain.Order{
				ID:          orderNo,
				PlannerCode: row.PlannerCode,
				Category:    domain.CategoryForPlanner(row.PlannerCode),
				DueDate:     coerceDate(row.StartDate, diag),
			}
			orderIndex[orderNo] = order
			directLines[orderNo] = make(map[string]decimal.Decimal)
			snap.Orders = append(snap.Orders, order)
		}

		partNo := normalizePartNo(row.PartNo)
		qty := coerceQuantity(row.QtyDue, diag)
		if partNo == "" {
			diag.MissingParts++
			continue
		}
		if order.PartID == "" {
			order.PartID = partNo
		}
		directLines[orderNo][partNo] = directLines[orderNo][partNo].Add(qty)
	}

	// Assemble requirement lines: direct part demand plus planned
	// component demand, summed per (order, part).
	for _, order := range snap.Orders {
		merged := make(map[string]decimal.Decimal, len(directLines[order.ID])+len(plannedByOrder[order.ID]))
		for part, qty := range directLines[order.ID] {
			merged[part] = merged[part].Add(qty)
		}
		for part, qty := range plannedByOrder[order.ID] {
			merged[part] = merged[part].Add(qty)
		}

		parts := make([]string, 0, len(merged))
		for part := range merged {
			parts = append(parts, part)
		}
		sort.Strings(parts)

		for _, part := range parts {
			order.Requirements = append(order.Requirements, domain.RequirementLine{
				OrderID:  order.ID,
				PartID:   part,
				Quantity: merged[part],
			})
			order.TotalQuantity = order.TotalQuantity.Add(merged[part])
			order.TotalHours = order.TotalHours.Add(merged[part].Mul(snap.part(part, diag).HoursPerUnit))
		}

		if order.PartID != "" && plannedParts["NS"+order.PartID+"99"] {
			order.Piggyback = true
		}
	}

	return snap
}

// part resolves a part id against the master, registering a
// zero-available, zero-hours entry for unknown parts so they block
// release instead of raising.
func (s *Snapshot) part(id string, diag *Diagnostics) *domain.Part {
	if p, ok := s.Parts[id]; ok {
		return p
	}
	diag.UnknownParts++
	p := &domain.Part{ID: id}
	s.Parts[id] = p
	return p
}

func buildParts(snap *Snapshot, tables Tables, diag *Diagnostics) {
	for _, row := range tables.Stock {
		partNo := normalizePartNo(row.PartNo)
		if partNo == "" {
			continue
		}
		p := ensurePart(snap.Parts, partNo)
		p.Available = p.Available.Add(coerceQuantity(row.AvailableQty, diag))
	}
	for _, row := range tables.Hours {
		partNo := normalizePartNo(row.PartNo)
		if partNo == "" {
			continue
		}
		p := ensurePart(snap.Parts, partNo)
		p.HoursPerUnit = p.HoursPerUnit.Add(coerceQuantity(row.HoursPerUnit, diag))
	}
}

func buildCommitted(snap *Snapshot, tables Tables, diag *Diagnostics) {
	for _, row := range tables.Committed {
		partNo := normalizePartNo(row.ComponentPartNo)
		if partNo == "" {
			continue
		}
		snap.Committed[partNo] = snap.Committed[partNo].Add(coerceQuantity(row.QtyRequired, diag))
	}
}

func buildIncoming(snap *Snapshot, tables Tables, diag *Diagnostics) {
	for _, row := range tables.PurchaseOrders {
		partNo := normalizePartNo(row.PartNo)
		if partNo == "" {
			continue
		}
		supply := domain.IncomingSupply{
			PONumber:     normalizeOrderNo(row.PONumber),
			PartID:       partNo,
			QtyDue:       coerceQuantity(row.QtyDue, diag),
			PromisedDate: coerceDate(row.PromisedDate, diag),
		}
		snap.Incoming[partNo] = append(snap.Incoming[partNo], supply)
	}
	// Earliest promised date first; undated lines last.
	for _, supplies := range snap.Incoming {
		sort.SliceStable(supplies, func(i, j int) bool {
			a, b := supplies[i].PromisedDate, supplies[j].PromisedDate
			if (a == nil) != (b == nil) {
				return a != nil
			}
			if a != nil && b != nil && !a.Equal(*b) {
				return a.Before(*b)
			}
			return supplies[i].PONumber < supplies[j].PONumber
		})
	}
}

func ensurePart(parts map[string]*domain.Part, id string) *domain.Part {
	if p, ok := parts[id]; ok {
		return p
	}
	p := &domain.Part{ID: id}
	parts[id] = p
	return p
}
