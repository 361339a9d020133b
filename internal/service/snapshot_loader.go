package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pulse/internal/app"
	"github.com/alexanderramin/pulse/internal/db"
	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/alexanderramin/pulse/internal/repository"
)

// Repositories groups the raw-record repositories over one connection.
type Repositories struct {
	Portfolios repository.PortfolioRepo
	Sites      repository.SiteRepo
	Projects   repository.ProjectRepo
	Employees  repository.EmployeeRepo
	Tasks      repository.TaskRepo
	QCTasks    repository.QCTaskRepo
	Hours      repository.HourEntryRepo
	Store      repository.Store
}

// NewSQLiteRepositories builds every SQLite repository over conn, which may
// be a *sql.DB or a transaction.
func NewSQLiteRepositories(conn db.DBTX) Repositories {
	return Repositories{
		Portfolios: repository.NewSQLitePortfolioRepo(conn),
		Sites:      repository.NewSQLiteSiteRepo(conn),
		Projects:   repository.NewSQLiteProjectRepo(conn),
		Employees:  repository.NewSQLiteEmployeeRepo(conn),
		Tasks:      repository.NewSQLiteTaskRepo(conn),
		QCTasks:    repository.NewSQLiteQCTaskRepo(conn),
		Hours:      repository.NewSQLiteHourEntryRepo(conn),
		Store:      repository.NewSQLiteStore(conn),
	}
}

// SnapshotLoader reads the raw-record tables into a domain.Snapshot.
type SnapshotLoader struct {
	repos Repositories
}

func NewSnapshotLoader(repos Repositories) *SnapshotLoader {
	return &SnapshotLoader{repos: repos}
}

// Load returns every record in scope. Employees are never scoped: the
// utilization engine needs the full roster to resolve names. A project id
// scope also reaches tasks and hours whose project record is missing.
func (l *SnapshotLoader) Load(ctx context.Context, scope app.Scope) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	var err error

	if snap.Employees, err = l.repos.Employees.List(ctx); err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	if snap.Portfolios, err = l.repos.Portfolios.List(ctx); err != nil {
		return nil, fmt.Errorf("loading portfolios: %w", err)
	}
	if snap.Sites, err = l.repos.Sites.List(ctx); err != nil {
		return nil, fmt.Errorf("loading sites: %w", err)
	}

	if scope.IsZero() {
		return l.loadAll(ctx, snap)
	}

	if scope.PortfolioID != "" {
		snap.Projects, err = l.repos.Projects.ListByPortfolio(ctx, scope.PortfolioID)
	} else {
		snap.Projects, err = l.repos.Projects.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	ids := scope.ProjectIDs
	if len(ids) > 0 {
		wanted := idSet(ids)
		kept := snap.Projects[:0]
		for _, p := range snap.Projects {
			if wanted[p.ID] {
				kept = append(kept, p)
			}
		}
		snap.Projects = kept
		if scope.PortfolioID != "" {
			ids = projectIDs(snap.Projects)
		}
	} else {
		ids = projectIDs(snap.Projects)
	}

	if snap.Tasks, err = l.repos.Tasks.ListByProjects(ctx, ids); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if snap.QCTasks, err = l.repos.QCTasks.ListByProjects(ctx, ids); err != nil {
		return nil, fmt.Errorf("loading qc tasks: %w", err)
	}
	if snap.Hours, err = l.repos.Hours.ListByProjects(ctx, ids); err != nil {
		return nil, fmt.Errorf("loading hour entries: %w", err)
	}

	snap.Sites = scopedSites(snap.Sites, snap.Projects, scope.PortfolioID)
	if scope.PortfolioID != "" {
		kept := snap.Portfolios[:0]
		for _, p := range snap.Portfolios {
			if p.ID == scope.PortfolioID {
				kept = append(kept, p)
			}
		}
		snap.Portfolios = kept
	}
	return snap, nil
}

func (l *SnapshotLoader) loadAll(ctx context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
	var err error
	if snap.Projects, err = l.repos.Projects.List(ctx); err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	if snap.Tasks, err = l.repos.Tasks.List(ctx); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if snap.QCTasks, err = l.repos.QCTasks.List(ctx); err != nil {
		return nil, fmt.Errorf("loading qc tasks: %w", err)
	}
	if snap.Hours, err = l.repos.Hours.List(ctx); err != nil {
		return nil, fmt.Errorf("loading hour entries: %w", err)
	}
	return snap, nil
}

func projectIDs(projects []domain.Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}

// scopedSites keeps sites in the portfolio or referenced by a scoped project.
func scopedSites(sites []domain.Site, projects []domain.Project, portfolioID string) []domain.Site {
	used := map[string]bool{}
	for _, p := range projects {
		if p.SiteID != "" {
			used[p.SiteID] = true
		}
	}
	var out []domain.Site
	for _, s := range sites {
		if used[s.ID] || (portfolioID != "" && s.PortfolioID == portfolioID) {
			out = append(out, s)
		}
	}
	return out
}
