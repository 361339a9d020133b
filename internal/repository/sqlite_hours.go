package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pulse/internal/db"
	"github.com/alexanderramin/pulse/internal/domain"
)

// SQLiteHourEntryRepo implements HourEntryRepo using a SQLite database.
type SQLiteHourEntryRepo struct {
	db db.DBTX
}

func NewSQLiteHourEntryRepo(conn db.DBTX) *SQLiteHourEntryRepo {
	return &SQLiteHourEntryRepo{db: conn}
}

const hourColumns = `id, employee_id, employee_name, task_id, project_id, hours, cost, entry_date, charge_type`

func (r *SQLiteHourEntryRepo) Upsert(ctx context.Context, h *domain.HourEntry) error {
	query := `INSERT INTO hour_entries (` + hourColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id, employee_name = excluded.employee_name,
			task_id = excluded.task_id, project_id = excluded.project_id, hours = excluded.hours,
			cost = excluded.cost, entry_date = excluded.entry_date, charge_type = excluded.charge_type`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.EmployeeID,
		h.EmployeeName,
		h.TaskID,
		h.ProjectID,
		h.Hours,
		h.Cost,
		h.Date.UTC().Format(timeLayout),
		string(h.ChargeType),
	)
	if err != nil {
		return fmt.Errorf("upserting hour entry: %w", err)
	}
	return nil
}

func (r *SQLiteHourEntryRepo) List(ctx context.Context) ([]domain.HourEntry, error) {
	return r.query(ctx, `SELECT `+hourColumns+` FROM hour_entries ORDER BY rowid`)
}

func (r *SQLiteHourEntryRepo) ListByProjects(ctx context.Context, projectIDs []string) ([]domain.HourEntry, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(projectIDs)
	return r.query(ctx, `SELECT `+hourColumns+` FROM hour_entries WHERE project_id IN `+in+` ORDER BY rowid`, args...)
}

func (r *SQLiteHourEntryRepo) query(ctx context.Context, query string, args ...any) ([]domain.HourEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing hour entries: %w", err)
	}
	defer rows.Close()

	var out []domain.HourEntry
	for rows.Next() {
		var h domain.HourEntry
		var date, charge string
		err := rows.Scan(&h.ID, &h.EmployeeID, &h.EmployeeName, &h.TaskID, &h.ProjectID,
			&h.Hours, &h.Cost, &date, &charge)
		if err != nil {
			return nil, fmt.Errorf("scanning hour entry row: %w", err)
		}
		h.Date, err = time.Parse(timeLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parsing entry_date: %w", err)
		}
		h.ChargeType = domain.ChargeType(charge)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hour entries: %w", err)
	}
	return out, nil
}
