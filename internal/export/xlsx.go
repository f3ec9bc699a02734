package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sqlgenius/sqlgenius/internal/resultset"
)

const sheetName = "Sheet1"

func writeXLSX(rs resultset.ResultSet, w io.Writer) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	for j, column := range rs.Columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := file.SetCellValue(sheetName, cell, column); err != nil {
			return fmt.Errorf("write header cell %s: %w", cell, err)
		}
	}

	for i := range rs.Rows {
		record := rs.Record(i)
		for j, value := range record {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("cell name row %d col %d: %w", i, j, err)
			}
			if err := file.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
