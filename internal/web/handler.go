package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sqlgenius/sqlgenius/internal/config"
	"github.com/sqlgenius/sqlgenius/internal/nl2sql"
	"github.com/sqlgenius/sqlgenius/internal/observability"
	"github.com/sqlgenius/sqlgenius/internal/pg"
	"github.com/sqlgenius/sqlgenius/internal/resultset"
)

type ReadinessCheck func(ctx context.Context) error

// QueryRunner executes an untrusted generated statement and returns every row.
type QueryRunner interface {
	Execute(ctx context.Context, sqlText string) (resultset.ResultSet, error)
}

// SchemaDescriber lists the queryable tables for the prompt and the UI.
type SchemaDescriber interface {
	Describe(ctx context.Context) ([]pg.Table, error)
}

// Archiver keeps a copy of produced downloads. Optional.
type Archiver interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

type Dependencies struct {
	Logger            *slog.Logger
	Readiness         ReadinessCheck
	AuthMiddleware    func(http.Handler) http.Handler
	DependencyTimeout time.Duration
	Translator        nl2sql.Translator
	Runner            QueryRunner
	Schema            SchemaDescriber
	Archive           Archiver
	DatabaseName      string
}

func NewHandler(cfg config.Config, deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "service": cfg.Service.Name})
	})

	mux.HandleFunc("GET /v1/ready", func(w http.ResponseWriter, r *http.Request) {
		if deps.Readiness == nil {
			writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
			return
		}
		timeout := deps.DependencyTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		if err := deps.Readiness(ctx); err != nil {
			writeError(r.Context(), w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	})

	mux.Handle("GET /v1/metrics", promhttp.Handler())

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		handleIndex(deps, w, r)
	})

	protected := http.NewServeMux()
	protected.HandleFunc("POST /query", func(w http.ResponseWriter, r *http.Request) {
		handleQuery(deps, w, r)
	})
	protected.HandleFunc("POST /execute", func(w http.ResponseWriter, r *http.Request) {
		handleExecute(deps, w, r)
	})
	protected.HandleFunc("POST /download", func(w http.ResponseWriter, r *http.Request) {
		handleDownload(deps, w, r)
	})
	protected.HandleFunc("GET /schema_info", func(w http.ResponseWriter, r *http.Request) {
		handleSchemaInfo(deps, w, r)
	})

	var protectedHandler http.Handler = protected
	if cfg.Auth.Required {
		if deps.AuthMiddleware == nil {
			if deps.Logger != nil {
				deps.Logger.Error("auth required but auth middleware missing")
			}
			protectedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeError(r.Context(), w, http.StatusInternalServerError, "auth middleware is required by configuration")
			})
		} else {
			protectedHandler = deps.AuthMiddleware(protectedHandler)
		}
	}
	mux.Handle("POST /query", protectedHandler)
	mux.Handle("POST /execute", protectedHandler)
	mux.Handle("POST /download", protectedHandler)
	mux.Handle("GET /schema_info", protectedHandler)

	middlewares := []func(http.Handler) http.Handler{
		observability.TraceMiddleware,
		observability.MetricsMiddleware,
	}
	if deps.Logger != nil {
		middlewares = append(middlewares, observability.LoggingMiddleware(deps.Logger))
	}
	return chain(mux, middlewares...)
}

func CheckDatabaseDSN(cfg config.Config) ReadinessCheck {
	return func(_ context.Context) error {
		if cfg.Database.Host == "" {
			return errors.New("database host is not configured")
		}
		if cfg.Database.Name == "" {
			return errors.New("database name is not configured")
		}
		return nil
	}
}

func CombineReadinessChecks(checks ...ReadinessCheck) ReadinessCheck {
	filtered := make([]ReadinessCheck, 0, len(checks))
	for _, check := range checks {
		if check != nil {
			filtered = append(filtered, check)
		}
	}
	return func(ctx context.Context) error {
		for _, check := range filtered {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

func chain(base http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends a generic user-facing message. Detailed causes stay in
// the log, keyed by trace id.
func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error":    message,
		"trace_id": observability.TraceIDFromContext(ctx),
	})
}
