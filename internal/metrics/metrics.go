// Package metrics registers the server's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billsplit_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status class.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	ledgerOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billsplit_ledger_operations_total",
			Help: "Ledger mutations by operation and result.",
		},
		[]string{"operation", "result"},
	)

	extractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billsplit_extractions_total",
			Help: "Extraction attempts by outcome (extracted or fallback).",
		},
		[]string{"outcome"},
	)
)

// ObserveLedgerOp records one ledger mutation. Result is "ok" or
// "not_found".
func ObserveLedgerOp(operation, result string) {
	ledgerOps.WithLabelValues(operation, result).Inc()
}

// ObserveExtraction records one upload's extraction outcome.
func ObserveExtraction(fallback bool) {
	outcome := "extracted"
	if fallback {
		outcome = "fallback"
	}
	extractions.WithLabelValues(outcome).Inc()
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument wraps a handler with request duration tracking.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		requestDuration.WithLabelValues(r.Method, statusClass(rec.status)).Observe(time.Since(start).Seconds())
	})
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
