// Package metrics exposes Prometheus instrumentation for generation and
// the HTTP service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Generation metrics
	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plume_generation_duration_seconds",
			Help:    "Duration of portfolio generation (normalize, synthesize, archive) in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	generationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plume_generation_total",
			Help: "Total number of portfolio generation attempts",
		},
		[]string{"status"}, // success or error
	)

	archiveBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plume_archive_size_bytes",
			Help:    "Size of generated archives in bytes",
			Buckets: prometheus.ExponentialBuckets(8<<10, 2, 8), // 8KiB .. 1MiB
		},
	)

	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plume_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	rateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "plume_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// ObserveGeneration records one generation attempt
func ObserveGeneration(d time.Duration, err error) {
	generationDuration.Observe(d.Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	generationTotal.WithLabelValues(status).Inc()
}

// ObserveArchive records the size of a finished archive
func ObserveArchive(size int64) {
	archiveBytes.Observe(float64(size))
}

// ObserveRequest records a served HTTP request
func ObserveRequest(route string, code int) {
	httpRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// RateLimited records a rejected request
func RateLimited() {
	rateLimitedTotal.Inc()
}
