package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pulse/internal/db"
	"github.com/alexanderramin/pulse/internal/domain"
)

type SQLiteEmployeeRepo struct {
	db db.DBTX
}

func NewSQLiteEmployeeRepo(conn db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: conn}
}

func (r *SQLiteEmployeeRepo) Upsert(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (id, name, job_title, utilization, hourly_rate) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, job_title = excluded.job_title,
			utilization = excluded.utilization, hourly_rate = excluded.hourly_rate`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.JobTitle, e.Utilization, e.HourlyRate); err != nil {
		return fmt.Errorf("upserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, job_title, utilization, hourly_rate FROM employees ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.JobTitle, &e.Utilization, &e.HourlyRate); err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return out, nil
}
