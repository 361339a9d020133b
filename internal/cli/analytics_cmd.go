package cli

import (
	"fmt"

	"github.com/alexanderramin/pulse/internal/cli/formatter"
	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/rollup"
	"github.com/spf13/cobra"
)

type scopeFlags struct {
	portfolioID string
	projectIDs  []string
}

func (s *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.portfolioID, "portfolio", "", "Scope to one portfolio ID")
	cmd.Flags().StringSliceVar(&s.projectIDs, "project", nil, "Scope to project IDs (repeatable)")
}

func (s *scopeFlags) scope() contract.Scope {
	return contract.Scope{PortfolioID: s.portfolioID, ProjectIDs: s.projectIDs}
}

func newPortfolioCmd(app *App) *cobra.Command {
	var by string
	var scope scopeFlags

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show the project or site breakdown with portfolio totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := app.asOf()
			if err != nil {
				return err
			}
			req := contract.NewPortfolioRequest()
			req.AsOf = asOf
			req.AggregateBy = rollup.AggregateBy(by)
			req.Scope = scope.scope()

			resp, err := app.Analytics.Portfolio(cmd.Context(), req)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatPortfolio(resp) })
		},
	}

	cmd.Flags().StringVar(&by, "by", string(rollup.ByProject), "Group rows by project or site")
	scope.register(cmd)
	return cmd
}

func newMetricsCmd(app *App) *cobra.Command {
	var scope scopeFlags

	cmd := &cobra.Command{
		Use:       "metrics [tasks|projects|counts|efficiency]",
		Short:     "Show earned-hours, count-based or efficiency metrics",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"tasks", "projects", "counts", "efficiency"},
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := app.asOf()
			if err != nil {
				return err
			}
			view := contract.ViewTasks
			if len(args) == 1 {
				view = contract.MetricsView(args[0])
			}

			resp, err := app.Analytics.Metrics(cmd.Context(), contract.MetricsRequest{
				AsOf:  asOf,
				View:  view,
				Scope: scope.scope(),
			})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatMetrics(resp) })
		},
	}

	scope.register(cmd)
	return cmd
}

func newUtilizationCmd(app *App) *cobra.Command {
	var employeeID string
	var scope scopeFlags

	cmd := &cobra.Command{
		Use:   "utilization",
		Short: "Show employee utilization, efficiency and trend",
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := app.asOf()
			if err != nil {
				return err
			}
			resp, err := app.Analytics.Utilization(cmd.Context(), contract.UtilizationRequest{
				AsOf:       asOf,
				EmployeeID: employeeID,
				Scope:      scope.scope(),
			})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatUtilization(resp) })
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "Only this employee ID")
	scope.register(cmd)
	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	var projectID, portfolioID string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Generate the executive summary for a project or the whole portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := app.asOf()
			if err != nil {
				return err
			}
			resp, err := app.Analytics.Summary(cmd.Context(), contract.SummaryRequest{
				AsOf:      asOf,
				ProjectID: projectID,
				Scope:     contract.Scope{PortfolioID: portfolioID},
			})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatSummary(resp) })
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Summarise one project ID")
	cmd.Flags().StringVar(&portfolioID, "portfolio", "", "Scope to one portfolio ID")
	return cmd
}

// headline is the one-line form used by the dashboard.
func headline(resp *contract.SummaryResponse) string {
	return fmt.Sprintf("%s  %s", formatter.HealthBadge(resp.Summary.Health), resp.Summary.KeyMessage)
}
