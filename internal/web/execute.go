package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/sqlgenius/sqlgenius/internal/observability"
	"github.com/sqlgenius/sqlgenius/internal/resultset"
)

type executeResults struct {
	Columns []string            `json:"columns"`
	Rows    [][]resultset.Value `json:"rows"`
}

func handleExecute(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Runner == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "query execution is not configured")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid form data")
		return
	}

	sqlText := strings.TrimSpace(r.FormValue("sql_query"))
	if sqlText == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "sql_query is required")
		return
	}

	start := time.Now()
	rs, err := deps.Runner.Execute(r.Context(), sqlText)
	observability.ObserveExecute(len(rs.Rows), time.Since(start), err != nil)
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.ErrorContext(r.Context(), "query execution failed", "error", err)
		}
		writeError(r.Context(), w, http.StatusBadRequest, "query execution failed")
		return
	}

	rows := rs.Rows
	if rows == nil {
		rows = [][]resultset.Value{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": executeResults{Columns: rs.Columns, Rows: rows},
	})
}
