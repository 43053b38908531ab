package importer

import (
	"io"

	"github.com/Caddickbrown/Plannr/internal/demand"
)

// Column names match the planning-system exports verbatim. Matching is
// case-insensitive, so hand-edited files with lowered headers still
// load.
const (
	colSONo          = "SO No"
	colSONumber      = "SO Number"
	colPartNo        = "Part No"
	colPartNumber    = "Part Number"
	colPartNoUpper   = "PART_NO"
	colPlanner       = "Planner"
	colStartDate     = "Start Date"
	colRevQtyDue     = "Rev Qty Due"
	colComponentPart = "Component Part Number"
	colComponentQty  = "Component Qty Required"
	colAvailableQty  = "Available Qty"
	colHoursPerUnit  = "Hours per Unit"
	colQtyDue        = "Qty Due"
	colPromisedDate  = "Promised Due Date"
	colPONumber      = "PO Number"
)

// ParseDemand reads the shop-order demand extract.
func ParseDemand(r io.Reader) ([]demand.DemandRow, error) {
	var rows []demand.DemandRow
	required := []string{colSONo, colPartNo, colPlanner, colStartDate, colRevQtyDue}
	err := parseRows(r, required, func(cols columns, record []string) {
		rows = append(rows, demand.DemandRow{
			OrderNo:     cols.get(record, colSONo),
			PartNo:      cols.get(record, colPartNo),
			PlannerCode: cols.get(record, colPlanner),
			StartDate:   cols.get(record, colStartDate),
			QtyDue:      cols.get(record, colRevQtyDue),
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ParsePlanned reads per-order planned component requirements.
func ParsePlanned(r io.Reader) ([]demand.PlannedDemandRow, error) {
	var rows []demand.PlannedDemandRow
	required := []string{colSONumber, colComponentPart, colComponentQty}
	err := parseRows(r, required, func(cols columns, record []string) {
		rows = append(rows, demand.PlannedDemandRow{
			OrderNo:         cols.get(record, colSONumber),
			ComponentPartNo: cols.get(record, colComponentPart),
			QtyRequired:     cols.get(record, colComponentQty),
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ParseCommitted reads order-less committed component demand.
func ParseCommitted(r io.Reader) ([]demand.ComponentDemandRow, error) {
	var rows []demand.ComponentDemandRow
	required := []string{colComponentPart, colComponentQty}
	err := parseRows(r, required, func(cols columns, record []string) {
		rows = append(rows, demand.ComponentDemandRow{
			ComponentPartNo: cols.get(record, colComponentPart),
			QtyRequired:     cols.get(record, colComponentQty),
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ParseStock reads available stock quantities.
func ParseStock(r io.Reader) ([]demand.StockRow, error) {
	var rows []demand.StockRow
	required := []string{colPartNoUpper, colAvailableQty}
	err := parseRows(r, required, func(cols columns, record []string) {
		rows = append(rows, demand.StockRow{
			PartNo:       cols.get(record, colPartNoUpper),
			AvailableQty: cols.get(record, colAvailableQty),
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ParseHours reads labor standards.
func ParseHours(r io.Reader) ([]demand.HoursRow, error) {
	var rows []demand.HoursRow
	required := []string{colPartNoUpper, colHoursPerUnit}
	err := parseRows(r, required, func(cols columns, record []string) {
		rows = append(rows, demand.HoursRow{
			PartNo:       cols.get(record, colPartNoUpper),
			HoursPerUnit: cols.get(record, colHoursPerUnit),
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ParsePurchaseOrders reads confirmed incoming supply. The PO Number
// column is optional; some extracts omit it.
func ParsePurchaseOrders(r io.Reader) ([]demand.PurchaseOrderRow, error) {
	var rows []demand.PurchaseOrderRow
	required := []string{colPartNumber, colQtyDue, colPromisedDate}
	err := parseRows(r, required, func(cols columns, record []string) {
		rows = append(rows, demand.PurchaseOrderRow{
			PONumber:     cols.get(record, colPONumber),
			PartNo:       cols.get(record, colPartNumber),
			QtyDue:       cols.get(record, colQtyDue),
			PromisedDate: cols.get(record, colPromisedDate),
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
