package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Caddickbrown/Plannr/internal/cli/formatter"
)

func newOptimizeCmd(app *App) *cobra.Command {
	var flags runFlags
	var allStrategies bool

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Compare allocation strategies and report the best per objective",
		Long: "Runs the release allocation once per strategy, each against its own\n" +
			"copy of current availability, and reports which strategy releases the\n" +
			"most orders, the most labor hours, and the most units.",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.buildRequest(cmd, app)
			if err != nil {
				return err
			}
			req.TripleOptimization = true
			req.AllStrategies = allStrategies

			done := attachProgress(&req, app)
			resp, err := app.Plans.Run(cmd.Context(), req)
			done()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunResponse(resp))

			if flags.out != "" {
				if err := writeDecisionsCSV(flags.out, resp); err != nil {
					return fmt.Errorf("writing %s: %w", flags.out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nDecisions written to %s\n", flags.out)
			}
			return nil
		},
	}

	flags.register(cmd, app)
	cmd.Flags().BoolVar(&allStrategies, "all-strategies", false, "Compare the full strategy library instead of the core three")

	return cmd
}
