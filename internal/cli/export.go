package cli

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/Caddickbrown/Plannr/internal/allocation"
	"github.com/Caddickbrown/Plannr/internal/contract"
)

// writeDecisionsCSV exports every strategy's per-order decisions to a
// CSV file for spreadsheet follow-up. One row per order per strategy.
func writeDecisionsCSV(path string, resp *contract.RunResponse) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"strategy", "order_no", "part_no", "planner", "category",
		"due_date", "quantity", "hours", "decision", "piggyback", "short_parts",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, result := range resp.Comparison.Results {
		for _, or := range result.Orders {
			if err := w.Write(decisionRow(result, or)); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func decisionRow(result *allocation.Result, or allocation.OrderResult) []string {
	order := or.Order

	decision := "HOLD"
	if or.Released {
		decision = "RELEASE"
	}
	piggyback := ""
	if order.Piggyback {
		piggyback = "yes"
	}
	due := ""
	if order.DueDate != nil {
		due = order.DueDate.Format("2006-01-02")
	}

	shorts := make([]string, 0, len(or.Shortfalls))
	for _, s := range or.Shortfalls {
		shorts = append(shorts, s.PartID+":"+s.Short.String())
	}

	return []string{
		result.Strategy.String(),
		order.ID,
		order.PartID,
		order.PlannerCode,
		order.Category.String(),
		due,
		order.TotalQuantity.String(),
		order.TotalHours.String(),
		decision,
		piggyback,
		strings.Join(shorts, ";"),
	}
}
