package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Caddickbrown/Plannr/internal/cli/formatter"
	"github.com/Caddickbrown/Plannr/internal/contract"
)

func newSnapshotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage the planning snapshot the allocation runs against",
	}

	cmd.AddCommand(
		newSnapshotImportCmd(app),
		newSnapshotInfoCmd(app),
	)

	return cmd
}

func newSnapshotImportCmd(app *App) *cobra.Command {
	var req contract.ImportRequest

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace snapshot tables from planning-system CSV extracts",
		Long: "Each named file replaces its table wholesale. Tables without a file\n" +
			"keep their previous contents, so partial refreshes are fine.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var spinner *formatter.Spinner
			if app.interactive() {
				spinner = formatter.NewSpinner(cmd.ErrOrStderr(), "Importing snapshot tables...")
				spinner.Start()
			}
			summary, err := app.Snapshots.Import(cmd.Context(), req)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.DemandPath, "demand", "", "Shop order demand CSV")
	cmd.Flags().StringVar(&req.PlannedPath, "planned", "", "Planned component demand CSV")
	cmd.Flags().StringVar(&req.CommittedPath, "committed", "", "Committed component demand CSV")
	cmd.Flags().StringVar(&req.StockPath, "stock", "", "Available stock CSV")
	cmd.Flags().StringVar(&req.HoursPath, "hours", "", "Labor standards CSV")
	cmd.Flags().StringVar(&req.POPath, "pos", "", "Confirmed purchase orders CSV")

	return cmd
}

func newSnapshotInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show row counts and import times per snapshot table",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := app.Snapshots.Info(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshotInfo(infos))
			return nil
		},
	}
}
