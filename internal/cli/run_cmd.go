package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Caddickbrown/Plannr/internal/allocation"
	"github.com/Caddickbrown/Plannr/internal/cli/formatter"
	"github.com/Caddickbrown/Plannr/internal/contract"
	"github.com/Caddickbrown/Plannr/internal/domain"
)

// runFlags are the options shared by the run and optimize commands.
type runFlags struct {
	categories  []string
	interactive bool
	isolated    bool
	includePOs  bool
	poTrustDays int
	noCommitted bool
	maxOrders   int
	out         string
}

func (f *runFlags) register(cmd *cobra.Command, app *App) {
	cmd.Flags().StringSliceVar(&f.categories, "categories", nil, "Restrict to planner categories (kits, instruments, virtuoso, kit_samples)")
	cmd.Flags().BoolVar(&f.interactive, "interactive", false, "Pick categories from a checklist")
	cmd.Flags().BoolVar(&f.isolated, "isolated-inventory", false, "Give each category its own inventory pool")
	cmd.Flags().BoolVar(&f.includePOs, "include-pos", false, "Credit confirmed purchase orders inside the trust window")
	cmd.Flags().IntVar(&f.poTrustDays, "po-trust-days", app.DefaultPOTrustDays, "Days ahead a purchase order promise is trusted")
	cmd.Flags().BoolVar(&f.noCommitted, "no-committed", false, "Skip charging committed component demand against stock")
	cmd.Flags().IntVar(&f.maxOrders, "max-orders", 0, "Evaluate at most this many orders per strategy (0 = all)")
	cmd.Flags().StringVar(&f.out, "out", "", "Write per-order decisions to this CSV file")
}

// buildRequest translates flags into a run request. The interactive
// category picker only appears on a terminal.
func (f *runFlags) buildRequest(cmd *cobra.Command, app *App) (contract.RunRequest, error) {
	req := contract.NewRunRequest()
	req.SharedInventory = !f.isolated
	req.IncludeCommitted = !f.noCommitted
	req.IncludePurchaseOrders = f.includePOs
	req.POTrustDays = f.poTrustDays
	req.MaxOrders = f.maxOrders
	req.ProgressEvery = app.ProgressEvery

	if cmd.Flags().Changed("categories") {
		categories, err := domain.ParseCategories(f.categories)
		if err != nil {
			return req, err
		}
		req.Categories = categories
	} else if f.interactive && app.interactive() {
		categories, err := pickCategories()
		if err != nil {
			return req, err
		}
		req.Categories = categories
	}

	return req, nil
}

// attachProgress wires a terminal progress bar into the request. The
// engine calls back from one goroutine per strategy, so redraws are
// serialized here.
func attachProgress(req *contract.RunRequest, app *App) func() {
	if !app.interactive() {
		return func() {}
	}

	bar := formatter.NewProgressBar(os.Stderr, "")
	var mu sync.Mutex
	req.Progress = func(strategy allocation.Strategy, evaluated, total int) {
		mu.Lock()
		defer mu.Unlock()
		bar.SetLabel(strategy.Display())
		bar.Update(evaluated, total)
	}
	return bar.Done
}

func newRunCmd(app *App) *cobra.Command {
	var flags runFlags
	var strategyName string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the release allocation under one strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.buildRequest(cmd, app)
			if err != nil {
				return err
			}
			if strategyName != "" {
				strategy, err := allocation.ParseStrategy(strategyName)
				if err != nil {
					return err
				}
				req.Strategy = strategy
			}

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
	cmd.Flags().StringVar(&strategyName, "strategy", "", "Ordering strategy (default order_priority)")

	return cmd
}
