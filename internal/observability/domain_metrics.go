package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	translateRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sqlgenius_translate_requests_total",
			Help: "Total number of natural-language translation requests.",
		},
	)
	translateFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sqlgenius_translate_failures_total",
			Help: "Total number of failed translation requests.",
		},
	)
	translateDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sqlgenius_translate_duration_seconds",
			Help:    "Latency of translation API round trips.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)
	executeRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sqlgenius_execute_requests_total",
			Help: "Total number of generated-SQL executions.",
		},
	)
	executeFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sqlgenius_execute_failures_total",
			Help: "Total number of failed generated-SQL executions.",
		},
	)
	executeDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sqlgenius_execute_duration_seconds",
			Help:    "Latency of database round trips for generated SQL.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
	)
	executeRowsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sqlgenius_execute_rows_returned",
			Help:    "Row counts returned by generated SQL.",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000, 100000},
		},
	)
	downloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlgenius_downloads_total",
			Help: "Total number of result downloads by format.",
		},
		[]string{"format"},
	)
	archiveFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sqlgenius_archive_failures_total",
			Help: "Total number of failed export archive uploads.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		translateRequestsTotal,
		translateFailuresTotal,
		translateDurationSeconds,
		executeRequestsTotal,
		executeFailuresTotal,
		executeDurationSeconds,
		executeRowsReturned,
		downloadsTotal,
		archiveFailuresTotal,
	)
}

func ObserveTranslate(elapsed time.Duration, failed bool) {
	translateRequestsTotal.Inc()
	if failed {
		translateFailuresTotal.Inc()
	}
	translateDurationSeconds.Observe(elapsed.Seconds())
}

func ObserveExecute(rows int, elapsed time.Duration, failed bool) {
	executeRequestsTotal.Inc()
	if failed {
		executeFailuresTotal.Inc()
		return
	}
	executeDurationSeconds.Observe(elapsed.Seconds())
	executeRowsReturned.Observe(float64(rows))
}

func IncrementDownload(format string) {
	downloadsTotal.WithLabelValues(format).Inc()
}

func IncrementArchiveFailure() {
	archiveFailuresTotal.Inc()
}
