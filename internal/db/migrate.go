package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Raw records keep whatever foreign keys the source system supplied, so the
// tables carry no REFERENCES clauses: unknown ids are resolved at analysis
// time, not rejected at import.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS portfolios (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS sites (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL DEFAULT '',
		customer_id  TEXT NOT NULL DEFAULT '',
		portfolio_id TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL DEFAULT '',
		customer_id      TEXT NOT NULL DEFAULT '',
		site_id          TEXT NOT NULL DEFAULT '',
		portfolio_id     TEXT NOT NULL DEFAULT '',
		percent_complete REAL NOT NULL DEFAULT 0,
		baseline_start   TEXT,
		baseline_end     TEXT,
		actual_start     TEXT,
		actual_end       TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_site ON projects(site_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_portfolio ON projects(portfolio_id)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		job_title   TEXT NOT NULL DEFAULT '',
		utilization REAL NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL DEFAULT '',
		project_id        TEXT NOT NULL DEFAULT '',
		phase_id          TEXT NOT NULL DEFAULT '',
		parent_id         TEXT NOT NULL DEFAULT '',
		resource_id       TEXT NOT NULL DEFAULT '',
		employee_id       TEXT NOT NULL DEFAULT '',
		assigned_resource TEXT NOT NULL DEFAULT '',
		baseline_hours    REAL NOT NULL DEFAULT 0,
		actual_hours      REAL NOT NULL DEFAULT 0,
		projected_hours   REAL NOT NULL DEFAULT 0,
		percent_complete  REAL NOT NULL DEFAULT 0,
		status            TEXT NOT NULL DEFAULT '',
		is_critical       INTEGER NOT NULL DEFAULT 0,
		qc_status         TEXT NOT NULL DEFAULT '',
		start_date        TEXT,
		end_date          TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_employee ON tasks(employee_id)`,

	`CREATE TABLE IF NOT EXISTS qc_tasks (
		id             TEXT PRIMARY KEY,
		parent_task_id TEXT NOT NULL DEFAULT '',
		qc_count       REAL NOT NULL DEFAULT 0,
		status         TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_qc_tasks_parent ON qc_tasks(parent_task_id)`,

	`CREATE TABLE IF NOT EXISTS hour_entries (
		id            TEXT PRIMARY KEY,
		employee_id   TEXT NOT NULL DEFAULT '',
		employee_name TEXT NOT NULL DEFAULT '',
		task_id       TEXT NOT NULL DEFAULT '',
		project_id    TEXT NOT NULL DEFAULT '',
		hours         REAL NOT NULL DEFAULT 0,
		cost          REAL NOT NULL DEFAULT 0,
		entry_date    TEXT NOT NULL,
		charge_type   TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_hours_project ON hour_entries(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_hours_employee ON hour_entries(employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_hours_date ON hour_entries(entry_date)`,

	// Added after the first schema: per-employee rate used for cost fallback.
	`ALTER TABLE employees ADD COLUMN hourly_rate REAL NOT NULL DEFAULT 0`,
}
