package repository

import (
	"context"

	"github.com/alexanderramin/pulse/internal/domain"
)

// Upsert replaces the stored record with the same id. List methods return
// records in insertion order so recomputation over an unchanged store is
// byte-for-byte repeatable.

type PortfolioRepo interface {
	Upsert(ctx context.Context, p *domain.Portfolio) error
	GetByID(ctx context.Context, id string) (*domain.Portfolio, error)
	List(ctx context.Context) ([]domain.Portfolio, error)
}

type SiteRepo interface {
	Upsert(ctx context.Context, s *domain.Site) error
	List(ctx context.Context) ([]domain.Site, error)
}

type ProjectRepo interface {
	Upsert(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	// ListByPortfolio matches the project's own portfolio or its site's.
	ListByPortfolio(ctx context.Context, portfolioID string) ([]domain.Project, error)
}

type EmployeeRepo interface {
	Upsert(ctx context.Context, e *domain.Employee) error
	List(ctx context.Context) ([]domain.Employee, error)
}

type TaskRepo interface {
	Upsert(ctx context.Context, t *domain.Task) error
	List(ctx context.Context) ([]domain.Task, error)
	ListByProjects(ctx context.Context, projectIDs []string) ([]domain.Task, error)
}

type QCTaskRepo interface {
	Upsert(ctx context.Context, q *domain.QCTask) error
	List(ctx context.Context) ([]domain.QCTask, error)
	// ListByProjects returns QC tasks whose parent task belongs to one of
	// the projects.
	ListByProjects(ctx context.Context, projectIDs []string) ([]domain.QCTask, error)
}

type HourEntryRepo interface {
	Upsert(ctx context.Context, h *domain.HourEntry) error
	List(ctx context.Context) ([]domain.HourEntry, error)
	ListByProjects(ctx context.Context, projectIDs []string) ([]domain.HourEntry, error)
}

// Store clears every raw-record table.
type Store interface {
	Clear(ctx context.Context) error
}
