package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sqlgenius/sqlgenius/internal/resultset"
)

// Runner executes generated SQL statements. Each call checks out a dedicated
// connection and returns it before the call ends, so a failed statement can
// never leak one.
type Runner struct {
	db *sql.DB
}

func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db}
}

// Execute runs the statement as-is and fetches every row in the database's
// native order. The statement comes from the translator untouched; it is not
// parameterized or otherwise rewritten.
func (r *Runner) Execute(ctx context.Context, sqlText string) (resultset.ResultSet, error) {
	if strings.TrimSpace(sqlText) == "" {
		return resultset.ResultSet{}, fmt.Errorf("sql is required")
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return resultset.ResultSet{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.QueryContext(ctx, sqlText)
	if err != nil {
		return resultset.ResultSet{}, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return resultset.ResultSet{}, fmt.Errorf("query columns: %w", err)
	}

	result := resultset.ResultSet{Columns: columns, Rows: make([][]resultset.Value, 0)}
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return resultset.ResultSet{}, fmt.Errorf("scan row: %w", err)
		}
		row := make([]resultset.Value, len(values))
		for i, value := range values {
			row[i] = resultset.FromDriver(value)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return resultset.ResultSet{}, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}
