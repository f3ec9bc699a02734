package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/sqlgenius/sqlgenius/internal/resultset"
)

// writeParquet encodes every cell as an optional utf8 column so that null
// cells survive the trip. Cell values use the shared canonical rendering.
func writeParquet(rs resultset.ResultSet, w io.Writer) error {
	if len(rs.Columns) == 0 {
		return fmt.Errorf("result set has no columns")
	}

	group := parquet.Group{}
	for _, column := range rs.Columns {
		group[column] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("query_results", group)

	writer := parquet.NewGenericWriter[map[string]any](w, schema)
	rows := make([]map[string]any, 0, len(rs.Rows))
	for i := range rs.Rows {
		row := make(map[string]any, len(rs.Columns))
		for j, column := range rs.Columns {
			cell := rs.Rows[i][j]
			if cell.IsNull() {
				row[column] = nil
				continue
			}
			row[column] = cell.String()
		}
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
