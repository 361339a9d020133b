package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/pulse/internal/rollup"
	"github.com/alexanderramin/pulse/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	asOf := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	d := teatest.New(t, newDashboardModel(app, &asOf), teatest.WithSize(120, 60))
	d.DrainInit()
	return d
}

func dashboard(t *testing.T, d *teatest.Driver) *dashboardModel {
	t.Helper()
	m, ok := d.Model.(*dashboardModel)
	require.True(t, ok)
	return m
}

func TestDashboard_InitialLoad(t *testing.T) {
	d := dashboardDriver(t, seededApp(t))

	d.RequireViewContains(
		"PULSE DASHBOARD",
		"by project  as of 2026-03-14",
		"(health ",
		"Boiler Retrofit",
		"Conveyor Upgrade",
		"▸",
		"EXECUTIVE SUMMARY",
		"quit",
	)
	assert.NotContains(t, d.PlainView(), "computing...")

	m := dashboard(t, d)
	require.NotNil(t, m.detail)
	assert.Equal(t, "proj-1", m.detail.ProjectID)
	assert.Equal(t, 1, d.Seen["portfolioLoadedMsg"])
	assert.Equal(t, 1, d.Seen["headlineLoadedMsg"])
	assert.Equal(t, 1, d.Seen["detailLoadedMsg"])
}

func TestDashboard_TabTogglesGrouping(t *testing.T) {
	d := dashboardDriver(t, seededApp(t))

	d.PressTab()
	m := dashboard(t, d)
	assert.Equal(t, rollup.BySite, m.by)
	assert.Nil(t, m.detail)
	d.RequireViewContains("by site", "Harbor Plant", "Ridge Works", "Totals")
	assert.Equal(t, 2, d.Seen["portfolioLoadedMsg"])
	assert.Equal(t, 1, d.Seen["detailLoadedMsg"])

	d.PressTab()
	assert.Equal(t, rollup.ByProject, dashboard(t, d).by)
	d.RequireViewContains("by project", "Boiler Retrofit", "EXECUTIVE SUMMARY")
}

func TestDashboard_CursorLoadsDetail(t *testing.T) {
	d := dashboardDriver(t, seededApp(t))

	d.PressUp()
	assert.Equal(t, 0, dashboard(t, d).cursor)

	d.PressDown()
	m := dashboard(t, d)
	assert.Equal(t, 1, m.cursor)
	require.NotNil(t, m.detail)
	assert.Equal(t, "proj-2", m.detail.ProjectID)

	d.PressDown()
	assert.Equal(t, 1, dashboard(t, d).cursor)
}

func TestDashboard_RefreshRecomputes(t *testing.T) {
	d := dashboardDriver(t, seededApp(t))

	d.PressKey('r')
	assert.Equal(t, 2, d.Seen["portfolioLoadedMsg"])
	assert.Equal(t, 2, d.Seen["headlineLoadedMsg"])
	assert.False(t, dashboard(t, d).loading)
}

func TestDashboard_Quit(t *testing.T) {
	d := dashboardDriver(t, seededApp(t))
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d = dashboardDriver(t, seededApp(t))
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestDashboard_EmptyStore(t *testing.T) {
	d := dashboardDriver(t, testApp(t))
	d.RequireViewContains("EMPTY_SNAPSHOT", "pulse import <snapshot.json>")
	assert.Nil(t, dashboard(t, d).headline)
}
