package web

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexData struct {
	Database string
	Tables   []schemaTable
	Message  string
}

func handleIndex(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	renderIndex(deps, w, r, "", true)
}

// renderIndex renders the form page. withSchema controls the schema lookup;
// callers reacting to bad form input skip it so the page renders without a
// database round trip.
func renderIndex(deps Dependencies, w http.ResponseWriter, r *http.Request, message string, withSchema bool) {
	data := indexData{Database: deps.DatabaseName, Message: message}
	if withSchema && deps.Schema != nil {
		if tables, err := deps.Schema.Describe(r.Context()); err == nil {
			for _, table := range tables {
				labels := make([]string, 0, len(table.Columns))
				for _, column := range table.Columns {
					labels = append(labels, column.Label())
				}
				data.Tables = append(data.Tables, schemaTable{Name: table.Name, Columns: labels})
			}
		} else if deps.Logger != nil {
			deps.Logger.WarnContext(r.Context(), "schema lookup failed", "error", err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil && deps.Logger != nil {
		deps.Logger.ErrorContext(r.Context(), "index template render failed", "error", err)
	}
}
