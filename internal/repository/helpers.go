package repository

import (
	"database/sql"
	"strings"
	"time"
)

// Dates are stored as RFC 3339 text in UTC.
const timeLayout = time.RFC3339

// scanDate reads an optional date column. Unparseable text reads as no date.
func scanDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// dateArg is the bind value for an optional date; nil binds NULL.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

// flagArg stores a flag as SQLite's 0/1.
func flagArg(b bool) int {
	if b {
		return 1
	}
	return 0
}

// inClause returns "(?, ?, ?)" and the ids as query args.
func inClause(ids []string) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + ")", args
}
