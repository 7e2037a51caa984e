// Package metrics provides Prometheus metrics for the HTTP layer and the
// document pipeline.
//
// Example:
//
//	err := metrics.InitMetrics(config.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	metrics.RequestCounter.WithLabelValues("GET", "/api/v1/documents").Inc()
package metrics

import (
	"net/http"
	_ "net/http/pprof" // registers pprof endpoints on the default mux

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teczamora/repositorio65/pkg/configs"
)

var (
	// RequestCounter counts HTTP requests.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration observes HTTP request durations.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// UploadsCommitted counts committed upload batches.
	UploadsCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "repo65_uploads_committed_total",
			Help: "Total number of committed upload batches",
		},
	)

	// UploadsRejected counts rejected upload batches by reason.
	UploadsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repo65_uploads_rejected_total",
			Help: "Total number of rejected upload batches",
		},
		[]string{"reason"},
	)

	// UploadBytes sums the bytes of committed payloads.
	UploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "repo65_upload_bytes_total",
			Help: "Total bytes of committed payloads",
		},
	)

	// ServesTotal counts content serves by access kind.
	ServesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repo65_serves_total",
			Help: "Total number of document content serves",
		},
		[]string{"access"},
	)

	// AccessLogFailures counts access log writes that were swallowed.
	AccessLogFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "repo65_access_log_failures_total",
			Help: "Total number of failed (non-fatal) access log writes",
		},
	)

	// MissingBlobs counts serves that found a record without its content.
	MissingBlobs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "repo65_missing_blobs_total",
			Help: "Total number of serves where the backing blob was missing",
		},
	)

	registry = prometheus.NewRegistry()
)

// InitMetrics registers all collectors when metrics are enabled.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	registry.MustRegister(
		RequestCounter, RequestDuration,
		UploadsCommitted, UploadsRejected, UploadBytes,
		ServesTotal, AccessLogFailures, MissingBlobs,
	)

	return nil
}

// StartMetricsServer exposes the registry on the main engine, plus pprof.
func StartMetricsServer(config configs.MetricsConfig, engine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	engine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))

	return nil
}

// GetRegistry returns the Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return registry
}
