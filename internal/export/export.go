// Package export renders a result set as a downloadable tabular file. Every
// format writes the same header row and the same canonical cell strings as
// the HTML table view.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/sqlgenius/sqlgenius/internal/resultset"
)

type Format string

const (
	FormatCSV     Format = "csv"
	FormatExcel   Format = "excel"
	FormatParquet Format = "parquet"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatExcel:
		return FormatExcel, nil
	case FormatParquet:
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unknown file type %q", value)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatParquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv"
	}
}

func (f Format) Filename() string {
	switch f {
	case FormatExcel:
		return "query_results.xlsx"
	case FormatParquet:
		return "query_results.parquet"
	default:
		return "query_results.csv"
	}
}

// Write encodes the result set in the requested format.
func Write(f Format, rs resultset.ResultSet, w io.Writer) error {
	switch f {
	case FormatCSV:
		return writeCSV(rs, w)
	case FormatExcel:
		return writeXLSX(rs, w)
	case FormatParquet:
		return writeParquet(rs, w)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}
