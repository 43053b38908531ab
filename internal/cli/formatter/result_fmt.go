package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Caddickbrown/Plannr/internal/allocation"
	"github.com/Caddickbrown/Plannr/internal/contract"
	"github.com/Caddickbrown/Plannr/internal/demand"
	"github.com/Caddickbrown/Plannr/internal/domain"
)

// FormatRunResponse renders the full report for one allocation run:
// the header, the per-strategy comparison, and the decision detail for
// the best result.
func FormatRunResponse(resp *contract.RunResponse) string {
	var b strings.Builder

	header := fmt.Sprintf("Run %s\nGenerated %s\nCandidate orders: %d",
		resp.RunID, Timestamp(resp.GeneratedAt), resp.Candidates)
	b.WriteString(RenderBox("Material Availability Run", header))
	b.WriteString("\n\n")

	if len(resp.Comparison.Results) > 1 {
		b.WriteString(FormatComparison(resp.Comparison))
		b.WriteString("\n")
	}

	best := resp.Comparison.BestResult(allocation.ObjectiveOrders)
	b.WriteString(FormatResultDetail(best))

	if resp.Diagnostics.Total() > 0 {
		b.WriteString("\n")
		b.WriteString(FormatDiagnostics(resp.Diagnostics))
	}

	return b.String()
}

// FormatComparison renders the strategy comparison table with the
// best strategy per objective marked.
func FormatComparison(c *allocation.Comparison) string {
	headers := []string{"Strategy", "Released", "Held", "Released Hrs", "Released Qty", "Time"}

	rows := make([][]string, 0, len(c.Results))
	for _, r := range c.Results {
		name := r.Strategy.Display()
		if marks := bestMarks(c, r.Strategy); marks != "" {
			name += " " + marks
		}
		released := fmt.Sprintf("%d", r.Totals.Released)
		if r.Partial {
			released += StyleYellow.Render(" (partial)")
		}
		rows = append(rows, []string{
			name,
			released,
			fmt.Sprintf("%d", r.Totals.Held),
			Hours(r.Totals.ReleasedHours),
			Qty(r.Totals.ReleasedQty),
			r.Elapsed.Round(time.Millisecond).String(),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows, 1, 2, 3, 4, 5))
	b.WriteString("\n")
	for _, obj := range allocation.Objectives() {
		best := c.Best[obj]
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", BestMarker(), obj.Display(), StyleBold.Render(best.Display())))
	}
	return b.String()
}

func bestMarks(c *allocation.Comparison, s allocation.Strategy) string {
	var marks []string
	for _, obj := range allocation.Objectives() {
		if c.Best[obj] == s {
			marks = append(marks, BestMarker())
		}
	}
	return strings.Join(marks, "")
}

// FormatResultDetail renders one strategy's decisions: summary totals,
// category rollup, and the held orders with what they are short of.
func FormatResultDetail(r *allocation.Result) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(fmt.Sprintf("Decisions — %s", r.Strategy.Display())))
	if r.Partial {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  (partial: stopped after %d orders)", r.Evaluated)))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %d of %d orders  (%s of %s hours, %s of %s units)\n\n",
		StyleGreen.Render("Released"),
		r.Totals.Released, r.Totals.Orders,
		Hours(r.Totals.ReleasedHours), Hours(r.Totals.TotalHours),
		Qty(r.Totals.ReleasedQty), Qty(r.Totals.TotalQty)))

	if len(r.ByCategory) > 0 {
		b.WriteString(formatCategoryRollup(r))
		b.WriteString("\n")
	}

	if held := heldOrders(r); len(held) > 0 {
		b.WriteString(formatHeldOrders(held))
	}

	return b.String()
}

func formatCategoryRollup(r *allocation.Result) string {
	categories := make([]domain.Category, 0, len(r.ByCategory))
	for cat := range r.ByCategory {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	headers := []string{"Category", "Released", "Held", "Released Hrs", "Released Qty"}
	rows := make([][]string, 0, len(categories))
	for _, cat := range categories {
		t := r.ByCategory[cat]
		rows = append(rows, []string{
			cat.Display(),
			fmt.Sprintf("%d", t.Released),
			fmt.Sprintf("%d", t.Held),
			Hours(t.ReleasedHours),
			Qty(t.ReleasedQty),
		})
	}
	return RenderTable(headers, rows, 1, 2, 3, 4)
}

func heldOrders(r *allocation.Result) []allocation.OrderResult {
	var held []allocation.OrderResult
	for _, or := range r.Orders {
		if !or.Released {
			held = append(held, or)
		}
	}
	return held
}

func formatHeldOrders(held []allocation.OrderResult) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Held Orders"))
	b.WriteString("\n")

	for _, or := range held {
		order := or.Order
		line := fmt.Sprintf("  %s  %s  %s", ReleaseIndicator(false), StyleBold.Render(order.ID), order.PartID)
		if order.Piggyback {
			line += "  " + StylePurple.Render("[piggyback]")
		}
		line += "  " + Dim(Date(order.DueDate))
		b.WriteString(line + "\n")

		for _, s := range or.Shortfalls {
			detail := fmt.Sprintf("      short %s of %s on %s (have %s)",
				StyleRed.Render(Qty(s.Short)), Qty(s.Required), s.PartID, Qty(s.Available))
			if s.CoveringPO != nil {
				detail += Dim(fmt.Sprintf("  covered by %s due %s", poName(s), Date(s.CoveringPO.PromisedDate)))
			}
			b.WriteString(detail + "\n")
		}
	}
	return b.String()
}

func poName(s allocation.Shortfall) string {
	if s.CoveringPO.PONumber == "" {
		return "incoming supply"
	}
	return "PO " + s.CoveringPO.PONumber
}

// FormatDiagnostics renders the data-quality counters from the demand
// build. Nonzero counters never fail a run; they tell the planner what
// the snapshot silently repaired.
func FormatDiagnostics(d demand.Diagnostics) string {
	headers := []string{"Data Issue", "Rows"}
	rows := [][]string{
		{"Malformed quantities set to zero", fmt.Sprintf("%d", d.CoercedQuantities)},
		{"Unparseable dates left unset", fmt.Sprintf("%d", d.CoercedDates)},
		{"Demand rows without an order number", fmt.Sprintf("%d", d.SkippedOrders)},
		{"Demand rows without a part number", fmt.Sprintf("%d", d.MissingParts)},
		{"Requirement parts missing from part master", fmt.Sprintf("%d", d.UnknownParts)},
	}
	kept := rows[:0]
	for _, row := range rows {
		if row[1] != "0" {
			kept = append(kept, row)
		}
	}
	return RenderTable(headers, kept, 1)
}

// FormatImportSummary renders the outcome of a snapshot import.
func FormatImportSummary(s *contract.ImportSummary) string {
	headers := []string{"Table", "Rows", "Source"}
	rows := make([][]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		rows = append(rows, []string{t.Table, fmt.Sprintf("%d", t.Rows), Dim(t.Path)})
	}
	return RenderTable(headers, rows, 1)
}

// FormatSnapshotInfo renders the current snapshot contents.
func FormatSnapshotInfo(infos []contract.SnapshotInfo) string {
	headers := []string{"Table", "Rows", "Imported"}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		imported := Dim("never")
		if !info.ImportedAt.IsZero() {
			imported = Timestamp(info.ImportedAt)
		}
		rows = append(rows, []string{info.Table, fmt.Sprintf("%d", info.Rows), imported})
	}
	return RenderTable(headers, rows, 1)
}
