package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/pulse/internal/app"
	"github.com/alexanderramin/pulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotLoader_ProjectScope(t *testing.T) {
	e := setupEnv(t)
	e.importFixture(t, false)

	snap, err := e.loader.Load(context.Background(), app.Scope{ProjectIDs: []string{"proj-2"}})
	require.NoError(t, err)

	require.Len(t, snap.Projects, 1)
	assert.Equal(t, "proj-2", snap.Projects[0].ID)
	assert.Len(t, snap.Tasks, 1)
	assert.Empty(t, snap.QCTasks)
	require.Len(t, snap.Hours, 1)
	assert.Equal(t, "emp-2", snap.Hours[0].EmployeeID)
	require.Len(t, snap.Sites, 1)
	assert.Equal(t, "site-2", snap.Sites[0].ID)
	assert.Len(t, snap.Employees, 2, "employees are never scoped")
}

func TestSnapshotLoader_PortfolioScope(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	e.importFixture(t, false)

	other := testutil.NewTestProject("Other", testutil.WithPortfolio("pf-2"))
	require.NoError(t, e.repos.Projects.Upsert(ctx, other))
	require.NoError(t, e.repos.Tasks.Upsert(ctx, testutil.NewTestTask(other.ID, "Survey")))

	snap, err := e.loader.Load(ctx, app.Scope{PortfolioID: "pf-1"})
	require.NoError(t, err)
	assert.Len(t, snap.Projects, 2)
	assert.Len(t, snap.Tasks, 3)
	assert.Len(t, snap.QCTasks, 1)
	assert.Len(t, snap.Hours, 4)
	require.Len(t, snap.Portfolios, 1)
	assert.Equal(t, "Northern Region", snap.Portfolios[0].Name)

	both, err := e.loader.Load(ctx, app.Scope{PortfolioID: "pf-1", ProjectIDs: []string{"proj-1", other.ID}})
	require.NoError(t, err)
	require.Len(t, both.Projects, 1)
	assert.Equal(t, "proj-1", both.Projects[0].ID)
	assert.Len(t, both.Tasks, 2)
}

func TestSnapshotLoader_OrphanTasksReachableByProjectID(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()
	require.NoError(t, e.repos.Tasks.Upsert(ctx, testutil.NewTestTask("no-record", "Orphan", testutil.WithBaseline(5))))

	snap, err := e.loader.Load(ctx, app.Scope{ProjectIDs: []string{"no-record"}})
	require.NoError(t, err)
	assert.Empty(t, snap.Projects)
	assert.Len(t, snap.Tasks, 1)
}
