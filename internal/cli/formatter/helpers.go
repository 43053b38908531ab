package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// Qty formats a decimal quantity, dropping insignificant zeros.
func Qty(d decimal.Decimal) string {
	return d.String()
}

// Hours formats labor hours with one decimal place.
func Hours(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// Date formats an optional date, rendering a dim placeholder for
// missing values.
func Date(t *time.Time) string {
	if t == nil {
		return Dim("(no date)")
	}
	return t.Format("2006-01-02")
}

// Timestamp formats an absolute time for report headers.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}
