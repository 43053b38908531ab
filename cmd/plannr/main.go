package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/Caddickbrown/Plannr/internal/cli"
	"github.com/Caddickbrown/Plannr/internal/config"
	"github.com/Caddickbrown/Plannr/internal/db"
	"github.com/Caddickbrown/Plannr/internal/repository"
	"github.com/Caddickbrown/Plannr/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)

	var observers []service.RunObserver
	if cfg.LogRuns {
		observers = append(observers, service.NewLogRunObserver(os.Stderr))
	}

	app := &cli.App{
		Plans:              service.NewPlanService(snapshotRepo, observers...),
		Snapshots:          service.NewSnapshotService(snapshotRepo, observers...),
		DefaultPOTrustDays: cfg.POTrustDays,
		ProgressEvery:      cfg.ProgressEvery,
	}

	// Detect interactive terminal for forms and progress rendering.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
