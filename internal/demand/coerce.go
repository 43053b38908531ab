package demand

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Diagnostics counts the rows that needed repair during a build. Data
// quality problems are never fatal; they are coerced to safe defaults
// and surfaced here so the caller can judge the result.
type Diagnostics struct {
	CoercedQuantities int // malformed or negative quantities set to zero
	CoercedDates      int // unparseable dates left unset
	SkippedOrders     int // demand rows with no usable order identifier
	MissingParts      int // demand rows with no part number
	UnknownParts      int // requirement parts absent from the part master
}

// Total returns the overall count of repaired rows.
func (d Diagnostics) Total() int {
	return d.CoercedQuantities + d.CoercedDates + d.SkippedOrders + d.MissingParts + d.UnknownParts
}

// Merge adds another run's counts into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.CoercedQuantities += other.CoercedQuantities
	d.CoercedDates += other.CoercedDates
	d.SkippedOrders += other.SkippedOrders
	d.MissingParts += other.MissingParts
	d.UnknownParts += other.UnknownParts
}

// dateLayouts are tried in order when parsing date fields. Extracts
// arrive with either ISO dates or full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// coerceQuantity parses a quantity field. Blank, malformed and
// negative values coerce to zero; only the latter two count as repairs.
func coerceQuantity(raw string, diag *Diagnostics) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	qty, err := decimal.NewFromString(s)
	if err != nil {
		diag.CoercedQuantities++
		return decimal.Zero
	}
	if qty.IsNegative() {
		diag.CoercedQuantities++
		return decimal.Zero
	}
	return qty
}

// coerceDate parses a date field, returning nil when unset or
// unparseable.
func coerceDate(raw string, diag *Diagnostics) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	diag.CoercedDates++
	return nil
}

// normalizeOrderNo strips whitespace and the trailing ".0" that
// spreadsheet round-tripping leaves on numeric order identifiers, so
// demand and planned-demand rows for the same order join correctly.
func normalizeOrderNo(raw string) string {
	s := strings.TrimSpace(raw)
	if trimmed, ok := strings.CutSuffix(s, ".0"); ok && isDigits(trimmed) {
		return trimmed
	}
	return s
}

func normalizePartNo(raw string) string {
	return strings.TrimSpace(raw)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
