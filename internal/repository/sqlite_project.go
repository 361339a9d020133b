package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pulse/internal/db"
	"github.com/alexanderramin/pulse/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, customer_id, site_id, portfolio_id, percent_complete,
	baseline_start, baseline_end, actual_start, actual_end`

func (r *SQLiteProjectRepo) Upsert(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, customer_id = excluded.customer_id, site_id = excluded.site_id,
			portfolio_id = excluded.portfolio_id, percent_complete = excluded.percent_complete,
			baseline_start = excluded.baseline_start, baseline_end = excluded.baseline_end,
			actual_start = excluded.actual_start, actual_end = excluded.actual_end`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.CustomerID,
		p.SiteID,
		p.PortfolioID,
		p.PercentComplete,
		dateArg(p.BaselineStart),
		dateArg(p.BaselineEnd),
		dateArg(p.ActualStart),
		dateArg(p.ActualEnd),
	)
	if err != nil {
		return fmt.Errorf("upserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	return r.query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY rowid`)
}

func (r *SQLiteProjectRepo) ListByPortfolio(ctx context.Context, portfolioID string) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE portfolio_id = ? OR site_id IN (SELECT id FROM sites WHERE portfolio_id = ?)
		ORDER BY rowid`
	return r.query(ctx, query, portfolioID, portfolioID)
}

func (r *SQLiteProjectRepo) query(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return out, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var baselineStart, baselineEnd, actualStart, actualEnd sql.NullString
	err := s.Scan(
		&p.ID, &p.Name, &p.CustomerID, &p.SiteID, &p.PortfolioID, &p.PercentComplete,
		&baselineStart, &baselineEnd, &actualStart, &actualEnd,
	)
	if err != nil {
		return nil, err
	}
	p.BaselineStart = scanDate(baselineStart)
	p.BaselineEnd = scanDate(baselineEnd)
	p.ActualStart = scanDate(actualStart)
	p.ActualEnd = scanDate(actualEnd)
	return &p, nil
}
