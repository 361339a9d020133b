package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pulse/internal/config"
	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/service"
	"github.com/spf13/cobra"
)

// Backend is what Connect hands back: the services plus a close func for
// the store behind them.
type Backend struct {
	Analytics service.AnalyticsService
	Import    service.ImportService
	Close     func() error
}

// App holds references to all service interfaces used by CLI commands.
// When Analytics and Import are nil, Connect builds them from the resolved
// configuration before the first command runs.
type App struct {
	Analytics service.AnalyticsService
	Import    service.ImportService

	Connect func(cfg config.Config) (*Backend, error)

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title, description string) (bool, error)

	// Config is the resolved configuration once a command has started.
	Config config.Config

	flags  rootFlags
	closer func() error
}

type rootFlags struct {
	configPath string
	dbPath     string
	asOf       string
	json       bool
	format     string
}

// NewRootCmd creates the top-level "pulse" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pulse",
		Short:         "Portfolio analytics: rollups, metrics, utilization and executive summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.prepare(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.configPath, "config", "", "YAML config file (default $PULSE_CONFIG)")
	pf.StringVar(&app.flags.dbPath, "db", "", "SQLite database path (default $PULSE_DB or ~/.pulse/pulse.db)")
	pf.StringVar(&app.flags.asOf, "as-of", "", "Evaluation date YYYY-MM-DD (default today)")
	pf.BoolVar(&app.flags.json, "json", false, "Shorthand for --format json")
	pf.StringVar(&app.flags.format, "format", "text", "Output format: text, json or yaml")

	root.AddCommand(
		newImportCmd(app),
		newPortfolioCmd(app),
		newMetricsCmd(app),
		newUtilizationCmd(app),
		newSummaryCmd(app),
		newFormulaCmd(app),
		newDashboardCmd(app),
	)

	return root
}

// prepare resolves configuration and connects the services when they were
// not injected.
func (a *App) prepare(cmd *cobra.Command) error {
	if _, err := a.outputFormat(); err != nil {
		return err
	}
	if a.Analytics != nil && a.Import != nil {
		return nil
	}
	if a.Connect == nil {
		return errors.New("no analytics backend configured")
	}

	cfg, err := config.LoadConfig(a.flags.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = a.flags.dbPath
	}
	a.Config = cfg

	backend, err := a.Connect(cfg)
	if err != nil {
		return err
	}
	a.Analytics = backend.Analytics
	a.Import = backend.Import
	a.closer = backend.Close
	return nil
}

// Close releases whatever Connect opened.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	closer := a.closer
	a.closer = nil
	return closer()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// asOf parses --as-of. Empty means the service default.
func (a *App) asOf() (*time.Time, error) {
	raw := strings.TrimSpace(a.flags.asOf)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, &contract.AnalyticsError{
			Code:    contract.ErrInvalidAsOf,
			Message: fmt.Sprintf("--as-of %q is not a YYYY-MM-DD date", raw),
		}
	}
	return &t, nil
}
