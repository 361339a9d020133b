package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pulse/internal/db"
)

// recordTables lists every raw-record table, children first.
var recordTables = []string{"hour_entries", "qc_tasks", "tasks", "employees", "projects", "sites", "portfolios"}

type SQLiteStore struct {
	db db.DBTX
}

func NewSQLiteStore(conn db.DBTX) *SQLiteStore {
	return &SQLiteStore{db: conn}
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	for _, table := range recordTables {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}
