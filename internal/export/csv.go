package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sqlgenius/sqlgenius/internal/resultset"
)

func writeCSV(rs resultset.ResultSet, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(rs.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range rs.Rows {
		if err := writer.Write(rs.Record(i)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
