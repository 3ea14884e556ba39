// Package metrics exposes Prometheus metrics for schema compilation and
// file validation.
package metrics

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Validation outcomes used as the "outcome" label.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

var (
	namespace = "gbfs"
	subsystem = "validator"

	validationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "validations_total",
			Help:      "Total number of validated files by outcome",
		},
		[]string{"version", "feed", "outcome"},
	)

	validationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "validation_errors_total",
			Help:      "Total number of reported conformance violations",
		},
		[]string{"version", "feed"},
	)

	validationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "validation_duration_seconds",
			Help:      "Duration of a file validation in seconds",
		},
		[]string{"version", "feed"},
	)

	schemaCompilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "schema_compiles_total",
			Help:      "Total number of schema set compilations by status",
		},
		[]string{"version", "status"},
	)

	schemaCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "schema_cache_lookups_total",
			Help:      "Compiled schema cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)
)

// ObserveValidation records one validateFile call.
func ObserveValidation(version, feed, outcome string, errorCount int, duration time.Duration) {
	validationsTotal.WithLabelValues(version, feed, outcome).Inc()
	if errorCount > 0 {
		validationErrorsTotal.WithLabelValues(version, feed).Add(float64(errorCount))
	}
	validationDuration.WithLabelValues(version, feed).Observe(duration.Seconds())
}

// ObserveCompile records one schema set compilation.
func ObserveCompile(version string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	schemaCompilesTotal.WithLabelValues(version, status).Inc()
}

// ObserveCacheLookup records a compiled schema cache hit or miss.
func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	schemaCacheLookupsTotal.WithLabelValues(result).Inc()
}

// SetupMetricsEndpoint starts an HTTP server exposing /metrics on addr.
// This should be called once at application startup.
func SetupMetricsEndpoint(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics endpoint failed", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	}()

	return server
}
