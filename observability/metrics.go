package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Query pipeline metrics
	QueryRequestsTotal       *prometheus.CounterVec
	QueryDuration            *prometheus.HistogramVec
	QueryErrorsTotal         *prometheus.CounterVec
	RecommendationActions    *prometheus.CounterVec
	RecommendationConfidence *prometheus.HistogramVec
	RecommendationRisk       *prometheus.CounterVec
	DegradedResponsesTotal   *prometheus.CounterVec

	// External API metrics
	ExternalAPIRequestsTotal *prometheus.CounterVec
	ExternalAPIErrorsTotal   *prometheus.CounterVec
	ExternalAPIDuration      *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryTotal    *prometheus.CounterVec
	DBErrorsTotal   *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// confidenceBuckets are histogram buckets for confidence metrics (0 to 1)
var confidenceBuckets = []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		QueryRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "query",
				Name:      "requests_total",
				Help:      "Total number of advisor queries by routing path",
			},
			[]string{"path"},
		),
		QueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_advisor",
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Duration of query processing in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"path", "status"},
		),
		QueryErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "query",
				Name:      "errors_total",
				Help:      "Total number of query processing errors",
			},
			[]string{"error_type"},
		),
		RecommendationActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "recommendation",
				Name:      "actions_total",
				Help:      "Total number of recommendations by action",
			},
			[]string{"action"},
		),
		RecommendationConfidence: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_advisor",
				Subsystem: "recommendation",
				Name:      "confidence",
				Help:      "Distribution of recommendation confidence levels",
				Buckets:   confidenceBuckets,
			},
			[]string{"action"},
		),
		RecommendationRisk: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "recommendation",
				Name:      "risk_total",
				Help:      "Total number of recommendations by risk label",
			},
			[]string{"risk"},
		),
		DegradedResponsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "query",
				Name:      "degraded_total",
				Help:      "Total number of degraded responses by cause",
			},
			[]string{"cause"},
		),
		ExternalAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "external_api",
				Name:      "requests_total",
				Help:      "Total number of external API requests",
			},
			[]string{"service", "operation"},
		),
		ExternalAPIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "external_api",
				Name:      "errors_total",
				Help:      "Total number of external API errors",
			},
			[]string{"service", "operation", "error_type"},
		),
		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_advisor",
				Subsystem: "external_api",
				Name:      "duration_seconds",
				Help:      "Duration of external API calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"service", "operation"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_advisor",
				Subsystem: "database",
				Name:      "query_duration_seconds",
				Help:      "Duration of database queries in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"operation", "table"},
		),
		DBQueryTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "database",
				Name:      "queries_total",
				Help:      "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		DBErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "database",
				Name:      "errors_total",
				Help:      "Total number of database errors",
			},
			[]string{"operation", "table"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_advisor",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_advisor",
				Subsystem: "http",
				Name:      "response_size_bytes",
				Help:      "Size of HTTP responses in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "stock_advisor",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_advisor",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordQueryRequest records a query routed down the given path (symbol or general)
func (m *Metrics) RecordQueryRequest(path string) {
	m.QueryRequestsTotal.WithLabelValues(path).Inc()
}

// RecordQueryDuration records the duration of a query
func (m *Metrics) RecordQueryDuration(path, status string, duration time.Duration) {
	m.QueryDuration.WithLabelValues(path, status).Observe(duration.Seconds())
}

// RecordQueryError records a query processing error
func (m *Metrics) RecordQueryError(errorType string) {
	m.QueryErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordRecommendation records a recommendation's action, confidence, and risk
func (m *Metrics) RecordRecommendation(action string, confidence float64, risk string) {
	m.RecommendationActions.WithLabelValues(action).Inc()
	m.RecommendationConfidence.WithLabelValues(action).Observe(confidence)
	m.RecommendationRisk.WithLabelValues(risk).Inc()
}

// RecordDegradedResponse records a degraded response and its cause
func (m *Metrics) RecordDegradedResponse(cause string) {
	m.DegradedResponsesTotal.WithLabelValues(cause).Inc()
}

// RecordExternalAPIRequest records an external API request
func (m *Metrics) RecordExternalAPIRequest(service, operation string) {
	m.ExternalAPIRequestsTotal.WithLabelValues(service, operation).Inc()
}

// RecordExternalAPIError records an external API error
func (m *Metrics) RecordExternalAPIError(service, operation, errorType string) {
	m.ExternalAPIErrorsTotal.WithLabelValues(service, operation, errorType).Inc()
}

// RecordExternalAPIDuration records the duration of an external API call
func (m *Metrics) RecordExternalAPIDuration(service, operation string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordDBQuery records a database query
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration) {
	m.DBQueryTotal.WithLabelValues(operation, table).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordDBError records a database error
func (m *Metrics) RecordDBError(operation, table string) {
	m.DBErrorsTotal.WithLabelValues(operation, table).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration, responseSize int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

// Timer is a helper for timing operations
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// ObserveQuery records the query duration and status
func (t *Timer) ObserveQuery(path, status string) {
	t.metrics.RecordQueryDuration(path, status, time.Since(t.start))
}

// ObserveExternalAPI records the external API duration
func (t *Timer) ObserveExternalAPI(service, operation string) {
	t.metrics.RecordExternalAPIDuration(service, operation, time.Since(t.start))
}

// ObserveDB records the database query duration
func (t *Timer) ObserveDB(operation, table string) {
	t.metrics.RecordDBQuery(operation, table, time.Since(t.start))
}

// Duration returns the elapsed time
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
