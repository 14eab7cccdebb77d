// Package metrics provides Prometheus metrics collection for the kit service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// ProcurementRunsTotal counts procurement aggregations by scope kind.
	ProcurementRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procurement_runs_total",
			Help: "Total number of procurement list aggregations",
		},
		[]string{"scope", "status"},
	)

	// ProcurementDuration tracks aggregation time, including snapshot loading.
	ProcurementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "procurement_duration_seconds",
			Help:    "Procurement list aggregation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)

	// ProcurementShortageLines tracks how many summary lines of the last run had a shortage.
	ProcurementShortageLines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "procurement_shortage_lines",
			Help: "Summary lines with a positive shortage in the last procurement run",
		},
	)

	// StockMutationsTotal counts kit stock writes by operation and result.
	StockMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kit_stock_mutations_total",
			Help: "Total number of kit stock mutations",
		},
		[]string{"operation", "result"},
	)

	// KitBacklogUnits tracks units still to be made per kit after the last mutation.
	KitBacklogUnits = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kit_backlog_units",
			Help: "Units to be made for a kit after its last stock mutation",
		},
		[]string{"kit_id"},
	)

	// StatusTransitionsTotal counts assignment status changes by target and result.
	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignment_status_transitions_total",
			Help: "Total number of assignment status transitions",
		},
		[]string{"from", "to", "result"},
	)

	// EventsPublishedTotal counts lifecycle events handed to the broker.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignment_events_published_total",
			Help: "Total number of assignment lifecycle events published",
		},
		[]string{"type", "result"},
	)

	// CircuitBreakerState exposes breaker state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordProcurement records one aggregation run.
func RecordProcurement(duration time.Duration, scope, status string, shortageLines int) {
	ProcurementDuration.Observe(duration.Seconds())
	ProcurementRunsTotal.WithLabelValues(scope, status).Inc()
	if status == "success" {
		ProcurementShortageLines.Set(float64(shortageLines))
	}
}

// RecordStockMutation records a kit stock write and, on success, the resulting backlog.
func RecordStockMutation(operation, result, kitID string, stockCount int64) {
	StockMutationsTotal.WithLabelValues(operation, result).Inc()
	if result != "success" {
		return
	}
	backlog := int64(0)
	if stockCount < 0 {
		backlog = -stockCount
	}
	KitBacklogUnits.WithLabelValues(kitID).Set(float64(backlog))
}

// RecordTransition records an assignment status change attempt.
func RecordTransition(from, to, result string) {
	StatusTransitionsTotal.WithLabelValues(from, to, result).Inc()
}

// RecordEventPublished records a lifecycle event publish attempt.
func RecordEventPublished(eventType, result string) {
	EventsPublishedTotal.WithLabelValues(eventType, result).Inc()
}

// SetCircuitBreakerState updates the breaker state gauge.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
