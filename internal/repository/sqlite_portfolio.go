package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pulse/internal/db"
	"github.com/alexanderramin/pulse/internal/domain"
)

// ErrNotFound is returned by GetByID lookups with no matching row.
var ErrNotFound = errors.New("not found")

type SQLitePortfolioRepo struct {
	db db.DBTX
}

func NewSQLitePortfolioRepo(conn db.DBTX) *SQLitePortfolioRepo {
	return &SQLitePortfolioRepo{db: conn}
}

func (r *SQLitePortfolioRepo) Upsert(ctx context.Context, p *domain.Portfolio) error {
	query := `INSERT INTO portfolios (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Name); err != nil {
		return fmt.Errorf("upserting portfolio: %w", err)
	}
	return nil
}

func (r *SQLitePortfolioRepo) GetByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM portfolios WHERE id = ?`, id).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning portfolio: %w", err)
	}
	return &p, nil
}

func (r *SQLitePortfolioRepo) List(ctx context.Context) ([]domain.Portfolio, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM portfolios ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	defer rows.Close()

	var out []domain.Portfolio
	for rows.Next() {
		var p domain.Portfolio
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning portfolio row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating portfolios: %w", err)
	}
	return out, nil
}

type SQLiteSiteRepo struct {
	db db.DBTX
}

func NewSQLiteSiteRepo(conn db.DBTX) *SQLiteSiteRepo {
	return &SQLiteSiteRepo{db: conn}
}

func (r *SQLiteSiteRepo) Upsert(ctx context.Context, s *domain.Site) error {
	query := `INSERT INTO sites (id, name, customer_id, portfolio_id) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, customer_id = excluded.customer_id,
			portfolio_id = excluded.portfolio_id`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.CustomerID, s.PortfolioID); err != nil {
		return fmt.Errorf("upserting site: %w", err)
	}
	return nil
}

func (r *SQLiteSiteRepo) List(ctx context.Context) ([]domain.Site, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, customer_id, portfolio_id FROM sites ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}
	defer rows.Close()

	var out []domain.Site
	for rows.Next() {
		var s domain.Site
		if err := rows.Scan(&s.ID, &s.Name, &s.CustomerID, &s.PortfolioID); err != nil {
			return nil, fmt.Errorf("scanning site row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sites: %w", err)
	}
	return out, nil
}
