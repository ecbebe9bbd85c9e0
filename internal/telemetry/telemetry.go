// Package telemetry exposes Prometheus collectors for the audit service.
package telemetry

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scansTotal           *prometheus.CounterVec
	scanDurationSeconds  prometheus.Histogram
	reportDownloadsTotal prometheus.Counter
	httpRequestsTotal    *prometheus.CounterVec
	httpDurationSeconds  *prometheus.HistogramVec

	once sync.Once
)

// Init registers the Prometheus collectors. Safe to call more than once.
func Init() {
	once.Do(func() {
		scansTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitegrade_scans_total",
				Help: "Total number of scans performed, labeled by outcome status.",
			},
			[]string{"status"},
		)

		scanDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitegrade_scan_duration_seconds",
				Help:    "Histogram of end-to-end scan durations.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
		)

		reportDownloadsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sitegrade_report_downloads_total",
				Help: "Total number of xlsx reports generated.",
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 30},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler exposing the Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveScan records one completed scan.
func ObserveScan(status string, duration time.Duration) {
	scansTotal.WithLabelValues(status).Inc()
	scanDurationSeconds.Observe(duration.Seconds())
}

// ObserveDownload records one generated report.
func ObserveDownload() {
	reportDownloadsTotal.Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
