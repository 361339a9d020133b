package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pulse/internal/importer"
	"github.com/alexanderramin/pulse/internal/testutil"
	"github.com/stretchr/testify/require"
)

const fixturePath = "../importer/testdata/snapshot.json"

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func asOf(y int, m time.Month, d int) *time.Time {
	t := testutil.Date(y, m, d)
	return &t
}

type env struct {
	db        *sql.DB
	repos     Repositories
	loader    *SnapshotLoader
	analytics AnalyticsService
	imports   ImportService
	events    *recordingObserver
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := NewSQLiteRepositories(database)
	loader := NewSnapshotLoader(repos)
	obs := &recordingObserver{}
	return &env{
		db:        database,
		repos:     repos,
		loader:    loader,
		analytics: NewAnalyticsService(loader, AnalyticsConfig{Now: func() time.Time { return fixedNow }}, obs),
		imports:   NewImportService(testutil.NewTestUoW(database), obs),
		events:    obs,
	}
}

func (e *env) importFixture(t *testing.T, replace bool) {
	t.Helper()
	_, err := e.imports.ImportFile(context.Background(), fixturePath, replace)
	require.NoError(t, err)
}

func loadFixture(t *testing.T) *importer.SnapshotImport {
	t.Helper()
	schema, err := importer.LoadSnapshot(fixturePath)
	require.NoError(t, err)
	return schema
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
