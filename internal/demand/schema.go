// Package demand turns raw planning-table extracts into the typed
// order and part model the allocation engine consumes. All coercion of
// loosely typed spreadsheet/database values happens here; downstream
// code never inspects raw row shapes.
package demand

// Raw rows carry quantities and dates as text, exactly as they arrive
// from table extracts. Coercion to typed values is tolerant: malformed
// fields become zero demand or zero supply and are counted in the
// run's Diagnostics instead of failing the build.

// DemandRow is one direct shop-order demand row.
type DemandRow struct {
	OrderNo     string
	PartNo      string
	PlannerCode string
	StartDate   string
	QtyDue      string
}

// PlannedDemandRow is one component requirement tied to a shop order.
type PlannedDemandRow struct {
	OrderNo         string
	ComponentPartNo string
	QtyRequired     string
}

// ComponentDemandRow is generic committed component draw with no order
// linkage. It is never attached to individual orders; it only charges
// the ledger up front and informs aggregate reporting.
type ComponentDemandRow struct {
	ComponentPartNo string
	QtyRequired     string
}

// StockRow is one available-quantity row from the stock extract.
// Multiple rows per part (locations, lots) are summed.
type StockRow struct {
	PartNo       string
	AvailableQty string
}

// HoursRow is one labor-standard row. Multiple rows per part
// (operations) are summed into hours per unit.
type HoursRow struct {
	PartNo       string
	HoursPerUnit string
}

// PurchaseOrderRow is one confirmed incoming supply line.
type PurchaseOrderRow struct {
	PONumber     string
	PartNo       string
	QtyDue       string
	PromisedDate string
}

// Tables bundles one snapshot of all raw inputs for a run.
type Tables struct {
	Demand         []DemandRow
	Planned        []PlannedDemandRow
	Committed      []ComponentDemandRow
	Stock          []StockRow
	Hours          []HoursRow
	PurchaseOrders []PurchaseOrderRow
}
