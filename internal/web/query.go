package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sqlgenius/sqlgenius/internal/nl2sql"
	"github.com/sqlgenius/sqlgenius/internal/observability"
)

func handleQuery(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid form data")
		return
	}

	question := strings.TrimSpace(r.FormValue("user_input"))
	if question == "" {
		// An empty question is not an error. Show the form again and never
		// touch the translation API or the database.
		renderIndex(deps, w, r, "Please enter a question before generating SQL.", false)
		return
	}

	if deps.Translator == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "query translation is not configured")
		return
	}

	tables := tableContexts(r.Context(), deps)

	start := time.Now()
	result, err := deps.Translator.Translate(r.Context(), nl2sql.Request{
		Question: question,
		Tables:   tables,
	})
	observability.ObserveTranslate(time.Since(start), err != nil)
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.ErrorContext(r.Context(), "sql translation failed", "error", err)
		}
		writeError(r.Context(), w, http.StatusBadGateway, "failed to generate an SQL query")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sql_query": result.SQL,
		"provider":  result.Provider,
		"model":     result.Model,
	})
}

// tableContexts loads the public schema for the translation prompt. A schema
// lookup failure degrades to an empty prompt context rather than failing the
// request.
func tableContexts(ctx context.Context, deps Dependencies) []nl2sql.TableContext {
	if deps.Schema == nil {
		return nil
	}
	tables, err := deps.Schema.Describe(ctx)
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.WarnContext(ctx, "schema lookup failed", "error", err)
		}
		return nil
	}
	contexts := make([]nl2sql.TableContext, 0, len(tables))
	for _, table := range tables {
		labels := make([]string, 0, len(table.Columns))
		for _, column := range table.Columns {
			labels = append(labels, column.Label())
		}
		contexts = append(contexts, nl2sql.TableContext{TableName: table.Name, Columns: labels})
	}
	return contexts
}
