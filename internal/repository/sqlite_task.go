package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/pulse/internal/db"
	"github.com/alexanderramin/pulse/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, name, project_id, phase_id, parent_id, resource_id, employee_id,
	assigned_resource, baseline_hours, actual_hours, projected_hours, percent_complete,
	status, is_critical, qc_status, start_date, end_date`

func (r *SQLiteTaskRepo) Upsert(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, project_id = excluded.project_id, phase_id = excluded.phase_id,
			parent_id = excluded.parent_id, resource_id = excluded.resource_id,
			employee_id = excluded.employee_id, assigned_resource = excluded.assigned_resource,
			baseline_hours = excluded.baseline_hours, actual_hours = excluded.actual_hours,
			projected_hours = excluded.projected_hours, percent_complete = excluded.percent_complete,
			status = excluded.status, is_critical = excluded.is_critical, qc_status = excluded.qc_status,
			start_date = excluded.start_date, end_date = excluded.end_date`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.ProjectID,
		t.PhaseID,
		t.ParentID,
		t.ResourceID,
		t.EmployeeID,
		t.AssignedResource,
		t.BaselineHours,
		t.ActualHours,
		t.ProjectedHours,
		t.PercentComplete,
		string(t.Status),
		flagArg(t.IsCritical),
		string(t.QCStatus),
		dateArg(t.StartDate),
		dateArg(t.EndDate),
	)
	if err != nil {
		return fmt.Errorf("upserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY rowid`)
}

func (r *SQLiteTaskRepo) ListByProjects(ctx context.Context, projectIDs []string) ([]domain.Task, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(projectIDs)
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id IN `+in+` ORDER BY rowid`, args...)
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		var t domain.Task
		var status, qcStatus string
		var critical int
		var start, end sql.NullString
		err := rows.Scan(
			&t.ID, &t.Name, &t.ProjectID, &t.PhaseID, &t.ParentID, &t.ResourceID, &t.EmployeeID,
			&t.AssignedResource, &t.BaselineHours, &t.ActualHours, &t.ProjectedHours, &t.PercentComplete,
			&status, &critical, &qcStatus, &start, &end,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		t.Status = domain.TaskStatus(status)
		t.QCStatus = domain.QCStatus(qcStatus)
		t.IsCritical = critical != 0
		t.StartDate = scanDate(start)
		t.EndDate = scanDate(end)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return out, nil
}

type SQLiteQCTaskRepo struct {
	db db.DBTX
}

func NewSQLiteQCTaskRepo(conn db.DBTX) *SQLiteQCTaskRepo {
	return &SQLiteQCTaskRepo{db: conn}
}

func (r *SQLiteQCTaskRepo) Upsert(ctx context.Context, q *domain.QCTask) error {
	query := `INSERT INTO qc_tasks (id, parent_task_id, qc_count, status) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET parent_task_id = excluded.parent_task_id,
			qc_count = excluded.qc_count, status = excluded.status`
	if _, err := r.db.ExecContext(ctx, query, q.ID, q.ParentTaskID, q.QCCount, string(q.Status)); err != nil {
		return fmt.Errorf("upserting qc task: %w", err)
	}
	return nil
}

func (r *SQLiteQCTaskRepo) List(ctx context.Context) ([]domain.QCTask, error) {
	return r.query(ctx, `SELECT id, parent_task_id, qc_count, status FROM qc_tasks ORDER BY rowid`)
}

func (r *SQLiteQCTaskRepo) ListByProjects(ctx context.Context, projectIDs []string) ([]domain.QCTask, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	in, args := inClause(projectIDs)
	query := `SELECT id, parent_task_id, qc_count, status FROM qc_tasks
		WHERE parent_task_id IN (SELECT id FROM tasks WHERE project_id IN ` + in + `)
		ORDER BY rowid`
	return r.query(ctx, query, args...)
}

func (r *SQLiteQCTaskRepo) query(ctx context.Context, query string, args ...any) ([]domain.QCTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing qc tasks: %w", err)
	}
	defer rows.Close()

	var out []domain.QCTask
	for rows.Next() {
		var q domain.QCTask
		var status string
		if err := rows.Scan(&q.ID, &q.ParentTaskID, &q.QCCount, &status); err != nil {
			return nil, fmt.Errorf("scanning qc task row: %w", err)
		}
		q.Status = domain.QCStatus(status)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating qc tasks: %w", err)
	}
	return out, nil
}
