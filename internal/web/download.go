package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sqlgenius/sqlgenius/internal/export"
	"github.com/sqlgenius/sqlgenius/internal/observability"
)

func handleDownload(deps Dependencies, w http.ResponseWriter, r *http.Request) {
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
	format, err := export.ParseFormat(r.FormValue("file_type"))
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "unsupported file type")
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

	var buf bytes.Buffer
	if err := export.Write(format, rs, &buf); err != nil {
		if deps.Logger != nil {
			deps.Logger.ErrorContext(r.Context(), "export encoding failed", "format", string(format), "error", err)
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "failed to build the download file")
		return
	}
	observability.IncrementDownload(string(format))

	// Archiving is best effort. The user still gets their file when the
	// object store is down.
	if deps.Archive != nil {
		if key, err := deps.Archive.Save(r.Context(), format.Filename(), format.ContentType(), buf.Bytes()); err != nil {
			observability.IncrementArchiveFailure()
			if deps.Logger != nil {
				deps.Logger.WarnContext(r.Context(), "download archive failed", "error", err)
			}
		} else if deps.Logger != nil {
			deps.Logger.InfoContext(r.Context(), "download archived", "key", key)
		}
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
