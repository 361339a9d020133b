package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/pulse/internal/app"
	"github.com/alexanderramin/pulse/internal/metrics"
	"github.com/alexanderramin/pulse/internal/provenance"
	"github.com/alexanderramin/pulse/internal/rollup"
	"github.com/alexanderramin/pulse/internal/testutil"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ignoreComputedAt = cmpopts.IgnoreFields(provenance.Trace{}, "ComputedAt")

func requireCode(t *testing.T, err error, code app.AnalyticsErrorCode) {
	t.Helper()
	var ae *app.AnalyticsError
	require.True(t, errors.As(err, &ae), "expected AnalyticsError, got %v", err)
	assert.Equal(t, code, ae.Code)
}

func TestPortfolio_ByProject(t *testing.T) {
	e := setupEnv(t)
	e.importFixture(t, false)

	resp, err := e.analytics.Portfolio(context.Background(), app.PortfolioRequest{AsOf: asOf(2026, 3, 14)})
	require.NoError(t, err)

	assert.Equal(t, rollup.ByProject, resp.AggregateBy)
	assert.Equal(t, testutil.Date(2026, 3, 14), resp.AsOf)
	require.Len(t, resp.Breakdown, 2)
	assert.Equal(t, "proj-1", resp.Breakdown[0].ID)
	assert.Equal(t, "Boiler Retrofit", resp.Breakdown[0].Name)
	assert.Equal(t, 3, resp.Aggregate.TaskCount)
	assert.Equal(t, "portfolio", resp.Aggregate.Scope)
	assert.Equal(t, fixedNow, resp.Aggregate.SPI.Provenance.Trace.ComputedAt)

	ev := e.events.last()
	assert.Equal(t, "portfolio", ev.Name)
	assert.Equal(t, 2, ev.Fields["rows"])
}

func TestPortfolio_BySite(t *testing.T) {
	e := setupEnv(t)
	e.importFixture(t, false)

	resp, err := e.analytics.Portfolio(context.Background(), app.PortfolioRequest{AggregateBy: rollup.BySite})
	require.NoError(t, err)
	require.Len(t, resp.Breakdown, 2)
	assert.Equal(t, "Harbor Plant", resp.Breakdown[0].Name)
	assert.Equal(t, rollup.BySite, resp.Breakdown[0].Kind)
}

func TestPortfolio_InvalidGrouping(t *testing.T) {
	e := setupEnv(t)
	e.importFixture(t, false)

	_, err := e.analytics.Portfolio(context.Background(), app.PortfolioRequest{AggregateBy: "customer"})
	requireCode(t, err, app.ErrInvalidAggregateBy)
	assert.False(t, e.events.last().Success())
	assert.Equal(t, app.ErrInvalidAggregateBy, e.events.last().Code)
}

func TestPortfolio_EmptyStore(t *testing.T) {
	e := setupEnv(t)

	_, err := e.analytics.Portfolio(context.Background(), app.NewPortfolioRequest())
	requireCode(t, err, app.ErrEmptySnapshot)
}

func TestPortfolio_Scoped(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	e.importFixture(t, false)

	other := testutil.NewTestProject("Other", testutil.WithPortfolio("pf-2"))
	require.NoError(t, e.repos.Projects.Upsert(ctx, other))
	require.NoError(t, e.repos.Tasks.Upsert(ctx, testutil.NewTestTask(other.ID, "Survey", testutil.WithBaseline(10))))

	all, err := e.analytics.Portfolio(ctx, app.NewPortfolioRequest())
	require.NoError(t, err)
	assert.Len(t, all.Breakdown, 3)

	pf, err := e.analytics.Portfolio(ctx, app.PortfolioRequest{Scope: app.Scope{PortfolioID: "pf-1"}})
	require.NoError(t, err)
	assert.Len(t, pf.Breakdown, 2)
	assert.Equal(t, "portfolio:pf-1", pf.Aggregate.Scope)

	one, err := e.analytics.Portfolio(ctx, app.PortfolioRequest{Scope: app.Scope{ProjectIDs: []string{other.ID}}})
	require.NoError(t, err)
	require.Len(t, one.Breakdown, 1)
	assert.Equal(t, "Other", one.Breakdown[0].Name)

	_, err = e.analytics.Portfolio(ctx, app.PortfolioRequest{Scope: app.Scope{PortfolioID: "pf-9"}})
	requireCode(t, err, app.ErrEmptySnapshot)
}

func TestMetrics_Views(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	e.importFixture(t, false)

	tasks, err := e.analytics.Metrics(ctx, app.MetricsRequest{View: app.ViewTasks})
	require.NoError(t, err)
	assert.Len(t, tasks.Tasks, 3)
	assert.Empty(t, tasks.Projects)

	projects, err := e.analytics.Metrics(ctx, app.MetricsRequest{View: app.ViewProjects})
	require.NoError(t, err)
	require.Len(t, projects.Projects, 2)
	assert.Equal(t, 2, projects.Projects[0].TaskCount)
	assert.Equal(t, fixedNow, projects.Projects[0].EffortSpent.Provenance.Trace.ComputedAt)

	counts, err := e.analytics.Metrics(ctx, app.MetricsRequest{View: app.ViewCounts})
	require.NoError(t, err)
	require.Len(t, counts.Counts, 3)
	assert.Equal(t, metrics.CountFromQC, counts.Counts[0].CountSource)
	assert.Equal(t, 12.0, counts.Counts[0].Count)

	eff, err := e.analytics.Metrics(ctx, app.MetricsRequest{View: app.ViewEfficiency, AsOf: asOf(2026, 3, 14)})
	require.NoError(t, err)
	assert.Len(t, eff.Efficiency, 2)
}

func TestMetrics_InvalidView(t *testing.T) {
	e := setupEnv(t)
	_, err := e.analytics.Metrics(context.Background(), app.MetricsRequest{View: "burndown"})
	requireCode(t, err, app.ErrInvalidView)
}

func TestUtilization(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	e.importFixture(t, false)

	resp, err := e.analytics.Utilization(ctx, app.UtilizationRequest{AsOf: asOf(2026, 3, 14)})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Empty(t, resp.Warnings)

	one, err := e.analytics.Utilization(ctx, app.UtilizationRequest{AsOf: asOf(2026, 3, 14), EmployeeID: "emp-1"})
	require.NoError(t, err)
	require.Len(t, one.Results, 1)
	assert.Equal(t, "Ada Lovelace", one.Results[0].EmployeeName)
	assert.Equal(t, 90.0, one.Results[0].ActualHoursLogged)
}

func TestUtilization_SharedNameWarning(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	e.importFixture(t, false)
	require.NoError(t, e.repos.Employees.Upsert(ctx, testutil.NewTestEmployee("grace  HOPPER")))

	resp, err := e.analytics.Utilization(ctx, app.UtilizationRequest{AsOf: asOf(2026, 3, 14)})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], "shared by 2 employees")
	assert.Len(t, resp.Warnings, 1, "both employees report the same warning once")
}

func TestUtilization_NoEmployees(t *testing.T) {
	e := setupEnv(t)
	_, err := e.analytics.Utilization(context.Background(), app.UtilizationRequest{})
	requireCode(t, err, app.ErrEmptySnapshot)
}

func TestSummary_Project(t *testing.T) {
	e := setupEnv(t)
	e.importFixture(t, false)

	resp, err := e.analytics.Summary(context.Background(), app.SummaryRequest{AsOf: asOf(2026, 3, 14), ProjectID: "proj-1"})
	require.NoError(t, err)

	assert.Equal(t, "Boiler Retrofit", resp.ProjectName)
	s := resp.Summary
	assert.Equal(t, 2, s.Metrics.TotalTasks)
	assert.Equal(t, 2, s.Metrics.TeamSize)
	assert.Equal(t, "project:proj-1", s.Indices.SPI.Provenance.Scope)
	require.NotNil(t, s.Indices.SPI.Provenance.TimeWindow.Start)
	assert.Equal(t, testutil.Date(2026, 1, 5), *s.Indices.SPI.Provenance.TimeWindow.Start)
	assert.NotEmpty(t, s.KeyMessage)
	assert.Len(t, s.Forecasts, 3)
}

func TestSummary_WholeStoreAndPortfolio(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	e.importFixture(t, false)

	all, err := e.analytics.Summary(ctx, app.SummaryRequest{AsOf: asOf(2026, 3, 14)})
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", all.ProjectName)
	assert.Equal(t, 3, all.Summary.Metrics.TotalTasks)

	pf, err := e.analytics.Summary(ctx, app.SummaryRequest{Scope: app.Scope{PortfolioID: "pf-1"}})
	require.NoError(t, err)
	assert.Equal(t, "Northern Region", pf.ProjectName)
}

func TestSummary_UnknownProject(t *testing.T) {
	e := setupEnv(t)
	e.importFixture(t, false)

	_, err := e.analytics.Summary(context.Background(), app.SummaryRequest{ProjectID: "ghost"})
	requireCode(t, err, app.ErrEmptySnapshot)
}

func TestEvaluate(t *testing.T) {
	e := setupEnv(t)

	resp, err := e.analytics.Evaluate(context.Background(), app.FormulaRequest{Name: "cpi", Args: []float64{50, 100}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ev", "ac"}, resp.Args)
	assert.Equal(t, 0.5, resp.Output.Value)
	assert.Equal(t, "ad-hoc", resp.Output.Provenance.Scope)
	assert.Equal(t, []string{"arguments"}, resp.Output.Provenance.DataSources)
}

func TestEvaluate_UnknownFormula(t *testing.T) {
	e := setupEnv(t)
	_, err := e.analytics.Evaluate(context.Background(), app.FormulaRequest{Name: "roi"})
	requireCode(t, err, app.ErrUnknownFormula)
	assert.Contains(t, err.Error(), "cpi")
}

func TestLogUseCaseObserver_WritesRecord(t *testing.T) {
	var buf bytes.Buffer
	database := testutil.NewTestDB(t)
	svc := NewAnalyticsService(NewSnapshotLoader(NewSQLiteRepositories(database)), AnalyticsConfig{}, ObserverFor(true, &buf))

	_, _ = svc.Evaluate(context.Background(), app.FormulaRequest{Name: "spi", Args: []float64{1, 1}})
	_, _ = svc.Portfolio(context.Background(), app.NewPortfolioRequest())

	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=formula")
	assert.Contains(t, out, "formula=spi")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "code=EMPTY_SNAPSHOT")
	assert.NotContains(t, out, "level=ERROR")
}

func TestObserverFor_Disabled(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, ObserverFor(false, &bytes.Buffer{}))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
