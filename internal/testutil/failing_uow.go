package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/pulse/internal/db"
)

// FailingUoW is a test UoW that injects Err on the first ExecContext whose
// query mentions Table, after letting SkipWrites such statements through.
// Reads pass through untouched. It lets import tests fail part-way through
// one table and assert the whole batch rolled back.
type FailingUoW struct {
	DB         *sql.DB
	Table      string
	SkipWrites int
	Err        error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingExec{DBTX: tx, table: u.Table, skip: u.SkipWrites, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	table string
	skip  int
	seen  int
	err   error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.table) {
		f.seen++
		if f.seen > f.skip {
			return nil, f.err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
