package formatter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// ProgressBar renders an in-place progress line on a terminal. It is
// driven by explicit Update calls rather than a bubbletea program; the
// allocation engine reports evaluation counts and the bar redraws on
// the spot.
type ProgressBar struct {
	out   io.Writer
	label string
	model progress.Model
}

// NewProgressBar creates a bar that writes to out under the given
// label, typically the display name of the running strategy.
func NewProgressBar(out io.Writer, label string) *ProgressBar {
	model := progress.New(
		progress.WithGradient(string(ColorYellow), string(ColorGreen)),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	return &ProgressBar{out: out, label: label, model: model}
}

// SetLabel switches the displayed label, used when a comparison run
// moves from one strategy to the next.
func (p *ProgressBar) SetLabel(label string) {
	p.label = label
}

// Update redraws the bar for evaluated of total orders.
func (p *ProgressBar) Update(evaluated, total int) {
	pct := 1.0
	if total > 0 {
		pct = float64(evaluated) / float64(total)
	}
	fmt.Fprintf(p.out, "\r\033[K%s %s %d/%d", Dim(p.label), p.model.ViewAs(pct), evaluated, total)
}

// Done clears the progress line.
func (p *ProgressBar) Done() {
	fmt.Fprint(p.out, "\r\033[K")
}
