package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/pulse/internal/cli"
	"github.com/alexanderramin/pulse/internal/config"
	"github.com/alexanderramin/pulse/internal/db"
	"github.com/alexanderramin/pulse/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{Connect: connect}

	// Detect interactive terminal for the dashboard and the replace prompt.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	defer app.Close()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// connect opens the store named by cfg and wires repositories and services.
func connect(cfg config.Config) (*cli.Backend, error) {
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	observer := service.ObserverFor(cfg.LogUseCases, os.Stderr)

	// Wire repositories
	repos := service.NewSQLiteRepositories(database)

	// Wire unit of work for transactional imports
	uow := db.NewSQLiteUnitOfWork(database)

	return &cli.Backend{
		Analytics: service.NewAnalyticsService(
			service.NewSnapshotLoader(repos),
			service.AnalyticsConfig{
				Metrics:     cfg.Metrics,
				Utilization: cfg.Utilization,
				Executive:   cfg.Executive,
			},
			observer,
		),
		Import: service.NewImportService(uow, observer),
		Close:  database.Close,
	}, nil
}
