package web

import "net/http"

type schemaTable struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

func handleSchemaInfo(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Schema == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "schema lookup is not configured")
		return
	}

	tables, err := deps.Schema.Describe(r.Context())
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.ErrorContext(r.Context(), "schema lookup failed", "error", err)
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "failed to load schema information")
		return
	}

	out := make([]schemaTable, 0, len(tables))
	for _, table := range tables {
		labels := make([]string, 0, len(table.Columns))
		for _, column := range table.Columns {
			labels = append(labels, column.Label())
		}
		out = append(out, schemaTable{Name: table.Name, Columns: labels})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"database": deps.DatabaseName,
		"tables":   out,
	})
}
