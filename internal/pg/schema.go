package pg

import (
	"context"
	"database/sql"
	"fmt"
)

type Column struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

// Label renders the column the way the translator prompt expects it.
func (c Column) Label() string {
	return c.Name + " (" + c.DataType + ")"
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

type SchemaReader struct {
	db *sql.DB
}

func NewSchemaReader(db *sql.DB) *SchemaReader {
	return &SchemaReader{db: db}
}

const describeSchemaSQL = `
SELECT table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema = 'public'
ORDER BY table_name, ordinal_position`

// Describe lists the public-schema tables and their columns in declaration
// order.
func (s *SchemaReader) Describe(ctx context.Context) ([]Table, error) {
	rows, err := s.db.QueryContext(ctx, describeSchemaSQL)
	if err != nil {
		return nil, fmt.Errorf("query information_schema: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []Table
	index := map[string]int{}
	for rows.Next() {
		var tableName, columnName, dataType string
		if err := rows.Scan(&tableName, &columnName, &dataType); err != nil {
			return nil, fmt.Errorf("scan schema row: %w", err)
		}
		i, ok := index[tableName]
		if !ok {
			i = len(tables)
			index[tableName] = i
			tables = append(tables, Table{Name: tableName})
		}
		tables[i].Columns = append(tables[i].Columns, Column{Name: columnName, DataType: dataType})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schema rows: %w", err)
	}
	return tables, nil
}

func (s *SchemaReader) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
