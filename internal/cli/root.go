package cli

import (
	"github.com/Caddickbrown/Plannr/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the runtime defaults resolved at startup.
type App struct {
	Plans     service.PlanService
	Snapshots service.SnapshotService

	// DefaultPOTrustDays seeds the --po-trust-days flag.
	DefaultPOTrustDays int
	// ProgressEvery is the progress reporting interval in orders.
	ProgressEvery int

	// IsInteractive reports whether stdin is an interactive terminal.
	// Gate for forms and progress bars.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "plannr" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "plannr",
		Short: "Material availability allocation for shop order release",
		Long: "Plannr decides which shop orders can be released against finite\n" +
			"inventory. It replays the release queue under different orderings\n" +
			"and reports which ordering releases the most orders, hours, or units.",
	}

	root.AddCommand(
		newRunCmd(app),
		newOptimizeCmd(app),
		newSnapshotCmd(app),
	)

	return root
}
