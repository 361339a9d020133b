package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/pulse/internal/config"
	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/rollup"
	"github.com/alexanderramin/pulse/internal/service"
	"github.com/alexanderramin/pulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "../importer/testdata/snapshot.json"

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	loader := service.NewSnapshotLoader(service.NewSQLiteRepositories(database))
	return &App{
		Analytics: service.NewAnalyticsService(loader, service.AnalyticsConfig{
			Now: func() time.Time { return fixedNow },
		}),
		Import: service.NewImportService(testutil.NewTestUoW(database)),
	}
}

// seededApp is testApp with the fixture snapshot imported.
func seededApp(t *testing.T) *App {
	t.Helper()
	app := testApp(t)
	_, err := app.Import.ImportFile(context.Background(), fixturePath, false)
	require.NoError(t, err)
	return app
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func requireCode(t *testing.T, err error, code contract.AnalyticsErrorCode) {
	t.Helper()
	var ae *contract.AnalyticsError
	require.True(t, errors.As(err, &ae), "expected AnalyticsError, got %v", err)
	assert.Equal(t, code, ae.Code)
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	output, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, output, "pulse")
	assert.Contains(t, output, "portfolio")
}

func TestRootCmd_InvalidAsOf(t *testing.T) {
	_, err := executeCmd(t, seededApp(t), "portfolio", "--as-of", "14/03/2026")
	requireCode(t, err, contract.ErrInvalidAsOf)
}

func TestRootCmd_UnknownFormat(t *testing.T) {
	_, err := executeCmd(t, seededApp(t), "portfolio", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown --format")
}

func TestRootCmd_WithoutBackend(t *testing.T) {
	_, err := executeCmd(t, &App{}, "portfolio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no analytics backend")
}

// --- import ---

func TestImportCmd_PrintsCounts(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "import", fixturePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported ")
	assert.Contains(t, out, "employees")
}

func TestImportCmd_JSON(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "import", fixturePath, "--json")
	require.NoError(t, err)

	var res contract.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Projects)
	assert.Equal(t, 3, res.Tasks)
	assert.Equal(t, 4, res.Hours)
	assert.False(t, res.Replaced)
}

func TestImportCmd_RequiresPath(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "import")
	assert.Error(t, err)
}

func TestImportCmd_ReplaceConfirmation(t *testing.T) {
	app := seededApp(t)
	app.IsInteractive = func() bool { return true }

	var asked string
	app.Confirm = func(title, description string) (bool, error) {
		asked = title
		return false, nil
	}
	_, err := executeCmd(t, app, "import", fixturePath, "--replace")
	assert.ErrorIs(t, err, errImportCancelled)
	assert.Equal(t, "Replace stored snapshot?", asked)

	app.Confirm = func(string, string) (bool, error) { return true, nil }
	out, err := executeCmd(t, app, "import", fixturePath, "--replace")
	require.NoError(t, err)
	assert.Contains(t, out, "Replaced snapshot with")
}

func TestImportCmd_ReplaceYesSkipsPrompt(t *testing.T) {
	app := seededApp(t)
	app.IsInteractive = func() bool { return true }
	app.Confirm = func(string, string) (bool, error) {
		t.Fatal("confirmation should be skipped")
		return false, nil
	}
	_, err := executeCmd(t, app, "import", fixturePath, "--replace", "-y")
	require.NoError(t, err)
}

// --- portfolio ---

func TestPortfolioCmd_Text(t *testing.T) {
	out, err := executeCmd(t, seededApp(t), "portfolio", "--as-of", "2026-03-14")
	require.NoError(t, err)
	assert.Contains(t, out, "PORTFOLIO BY PROJECT")
	assert.Contains(t, out, "Boiler Retrofit")
	assert.Contains(t, out, "Conveyor Upgrade")
	assert.Contains(t, out, "Totals")
}

func TestPortfolioCmd_BySiteJSON(t *testing.T) {
	out, err := executeCmd(t, seededApp(t), "portfolio", "--by", "site", "--json")
	require.NoError(t, err)

	var resp contract.PortfolioResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, rollup.BySite, resp.AggregateBy)
	require.Len(t, resp.Breakdown, 2)
	assert.Equal(t, "Harbor Plant", resp.Breakdown[0].Name)
	assert.Equal(t, "portfolio", resp.Aggregate.Scope)
}

func TestPortfolioCmd_YAML(t *testing.T) {
	out, err := executeCmd(t, seededApp(t), "portfolio", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "aggregateBy: project")
	assert.Contains(t, out, "formula: CPI = EV / AC")
}

func TestPortfolioCmd_InvalidGrouping(t *testing.T) {
	_, err := executeCmd(t, seededApp(t), "portfolio", "--by", "region")
	requireCode(t, err, contract.ErrInvalidAggregateBy)
}

func TestPortfolioCmd_EmptyStore(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "portfolio")
	requireCode(t, err, contract.ErrEmptySnapshot)
}

func TestPortfolioCmd_ProjectScope(t *testing.T) {
	out, err := executeCmd(t, seededApp(t), "portfolio", "--project", "proj-2", "--json")
	require.NoError(t, err)

	var resp contract.PortfolioResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Breakdown, 1)
	assert.Equal(t, "proj-2", resp.Breakdown[0].ID)
	assert.Equal(t, "project:proj-2", resp.Aggregate.Scope)
}

// --- metrics ---

func TestMetricsCmd_Views(t *testing.T) {
	app := seededApp(t)
	for view, want := range map[string]string{
		"":           "TASKS METRICS",
		"tasks":      "Design",
		"projects":   "Boiler Retrofit",
		"counts":     "SOURCE",
		"efficiency": "RATIO",
	} {
		args := []string{"metrics", "--as-of", "2026-03-14"}
		if view != "" {
			args = append(args, view)
		}
		out, err := executeCmd(t, app, args...)
		require.NoError(t, err, view)
		assert.Contains(t, out, want, view)
	}
}

func TestMetricsCmd_InvalidView(t *testing.T) {
	_, err := executeCmd(t, seededApp(t), "metrics", "burndown")
	requireCode(t, err, contract.ErrInvalidView)
}

func TestMetricsCmd_TooManyArgs(t *testing.T) {
	_, err := executeCmd(t, seededApp(t), "metrics", "tasks", "projects")
	assert.Error(t, err)
}

// --- utilization ---

func TestUtilizationCmd(t *testing.T) {
	out, err := executeCmd(t, seededApp(t), "utilization", "--as-of", "2026-03-14")
	require.NoError(t, err)
	assert.Contains(t, out, "UTILIZATION")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Grace Hopper")
}

func TestUtilizationCmd_SingleEmployeeJSON(t *testing.T) {
	out, err := executeCmd(t, seededApp(t), "utilization", "--employee", "emp-2", "--json")
	require.NoError(t, err)

	var resp contract.UtilizationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Grace Hopper", resp.Results[0].EmployeeName)
}

// --- summary ---

func TestSummaryCmd_Project(t *testing.T) {
	out, err := executeCmd(t, seededApp(t), "summary", "--project", "proj-1", "--as-of", "2026-03-14")
	require.NoError(t, err)
	assert.Contains(t, out, "EXECUTIVE SUMMARY")
	assert.Contains(t, out, "Boiler Retrofit")
	assert.Contains(t, out, "Forecasts")
}

func TestSummaryCmd_PortfolioJSON(t *testing.T) {
	out, err := executeCmd(t, seededApp(t), "summary", "--json")
	require.NoError(t, err)

	var resp contract.SummaryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.Summary.Metrics.TotalTasks)
	assert.NotEmpty(t, resp.Summary.KeyMessage)
}

// --- formula ---

func TestFormulaCmd_Positional(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "formula", "cpi", "90", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "cpi(ev, ac)")
	assert.Contains(t, out, "CPI = 90 / 100")
	assert.Contains(t, out, "CPI = 0.9")
	assert.Contains(t, out, "scope ad-hoc")
}

func TestFormulaCmd_Flags(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "formula", "tcpi", "--a", "1000", "--b", "400", "--c", "500", "--json")
	require.NoError(t, err)

	var resp contract.FormulaResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []string{"bac", "ev", "ac"}, resp.Args)
	assert.InDelta(t, 1.2, resp.Output.Value, 1e-9)
	assert.Equal(t, "arguments", resp.Output.Provenance.DataSources[0])
}

func TestFormulaCmd_ListsFormulas(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "formula")
	require.NoError(t, err)
	assert.Contains(t, out, "task-efficiency")
	assert.Contains(t, out, "bac, ev, ac")
}

func TestFormulaCmd_Errors(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "formula", "npv", "1")
	requireCode(t, err, contract.ErrUnknownFormula)

	_, err = executeCmd(t, testApp(t), "formula", "cpi", "ninety")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ninety" is not a number`)
}

// --- dashboard ---

func TestDashboardCmd_RequiresTerminal(t *testing.T) {
	_, err := executeCmd(t, seededApp(t), "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- configuration ---

func connectingApp(t *testing.T, got *config.Config, closed *bool) *App {
	t.Helper()
	inner := testApp(t)
	return &App{
		Connect: func(cfg config.Config) (*Backend, error) {
			*got = cfg
			return &Backend{
				Analytics: inner.Analytics,
				Import:    inner.Import,
				Close:     func() error { *closed = true; return nil },
			}, nil
		},
	}
}

func TestConnect_FlagsOverrideFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: from-file.db\nexecutive:\n  blended_hourly_rate: 150\n"), 0o644))
	t.Setenv("PULSE_CONFIG", "")
	t.Setenv("PULSE_DB", filepath.Join(dir, "from-env.db"))

	var cfg config.Config
	var closed bool
	app := connectingApp(t, &cfg, &closed)

	_, err := executeCmd(t, app, "--config", path, "formula", "cpi", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from-env.db"), cfg.DBPath)
	assert.Equal(t, 150.0, cfg.Executive.BlendedHourlyRate)
	assert.Equal(t, cfg, app.Config)

	app = connectingApp(t, &cfg, &closed)
	_, err = executeCmd(t, app, "--config", path, "--db", filepath.Join(dir, "flag.db"), "formula", "cpi", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "flag.db"), cfg.DBPath)

	require.NoError(t, app.Close())
	assert.True(t, closed)
	require.NoError(t, app.Close())
}

func TestConnect_BadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown_key: 1\n"), 0o644))

	var cfg config.Config
	var closed bool
	_, err := executeCmd(t, connectingApp(t, &cfg, &closed), "--config", path, "portfolio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
