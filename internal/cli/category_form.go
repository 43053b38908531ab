package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Caddickbrown/Plannr/internal/cli/formatter"
	"github.com/Caddickbrown/Plannr/internal/domain"
)

// plannrHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func plannrHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// pickCategories shows a checklist of planner categories, all selected
// by default, and returns the chosen subset.
func pickCategories() ([]domain.Category, error) {
	options := make([]huh.Option[string], 0, len(domain.AllCategories()))
	for _, c := range domain.AllCategories() {
		options = append(options, huh.NewOption(c.Display(), string(c)).Selected(true))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Planner categories").
				Description("Orders outside the selection are not evaluated").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(plannrHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return domain.ParseCategories(selected)
}
