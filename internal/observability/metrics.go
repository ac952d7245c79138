package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Histogram bucket definitions.
var (
	httpDurationBuckets  = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	storeDurationBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
	bodySizeBuckets      = []float64{100, 1024, 10240, 102400, 1048576}
)

// Metrics holds all Prometheus metric instruments for the service.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestSizeBytes  *prometheus.HistogramVec
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Tracker metrics
	MutationsTotal          *prometheus.CounterVec
	CheckInsTotal           *prometheus.CounterVec
	CycleTransitionsTotal   *prometheus.CounterVec
	EvidenceAttachedTotal   *prometheus.CounterVec
	ValidationFailuresTotal *prometheus.CounterVec

	// Dashboard metrics
	DashboardQueryDuration *prometheus.HistogramVec

	// Auth metrics
	TokenValidationFailures *prometheus.CounterVec

	// Store metrics
	StoreUp prometheus.Gauge
}

// InitMetrics creates and registers all Prometheus metric instruments.
func InitMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		// HTTP
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compass_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: httpDurationBuckets,
		}, []string{"method", "path_pattern"}),
		HTTPRequestSizeBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compass_http_request_size_bytes",
			Help:    "HTTP request body size in bytes.",
			Buckets: bodySizeBuckets,
		}, []string{"method", "path_pattern"}),
		HTTPResponseSizeBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compass_http_response_size_bytes",
			Help:    "HTTP response body size in bytes.",
			Buckets: bodySizeBuckets,
		}, []string{"method", "path_pattern"}),

		// Tracker
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_mutations_total",
			Help: "Total number of entity mutations.",
		}, []string{"entity", "operation", "status"}),
		CheckInsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_checkins_total",
			Help: "Total number of key result check-ins recorded.",
		}, []string{"scoring_type"}),
		CycleTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_cycle_transitions_total",
			Help: "Total number of cycle status transitions.",
		}, []string{"to_status"}),
		EvidenceAttachedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_evidence_attached_total",
			Help: "Total number of evidence records attached.",
		}, []string{"entity_type"}),
		ValidationFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_validation_failures_total",
			Help: "Total number of input validation failures.",
		}, []string{"entity", "operation"}),

		// Dashboard
		DashboardQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compass_dashboard_query_duration_seconds",
			Help:    "Dashboard aggregation query duration in seconds.",
			Buckets: storeDurationBuckets,
		}, []string{"section"}),

		// Auth
		TokenValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compass_token_validation_failures_total",
			Help: "Total number of JWT validation failures.",
		}, []string{"reason"}),

		// Store
		StoreUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "compass_store_up",
			Help: "Whether the backing store is reachable (1=up, 0=down).",
		}),
	}

	reg.MustRegister(
		// HTTP
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestSizeBytes,
		m.HTTPResponseSizeBytes,
		// Tracker
		m.MutationsTotal,
		m.CheckInsTotal,
		m.CycleTransitionsTotal,
		m.EvidenceAttachedTotal,
		m.ValidationFailuresTotal,
		// Dashboard
		m.DashboardQueryDuration,
		// Auth
		m.TokenValidationFailures,
		// Store
		m.StoreUp,
	)

	return m
}

// --- Recording helpers ---

// RecordHTTPRequest records HTTP request metrics.
func (m *Metrics) RecordHTTPRequest(method, pathPattern string, status int, duration time.Duration, reqSize, respSize int) {
	statusStr := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(method, pathPattern, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, pathPattern).Observe(duration.Seconds())
	m.HTTPRequestSizeBytes.WithLabelValues(method, pathPattern).Observe(float64(reqSize))
	m.HTTPResponseSizeBytes.WithLabelValues(method, pathPattern).Observe(float64(respSize))
}

// RecordMutation records an entity mutation outcome.
func (m *Metrics) RecordMutation(entity, operation, status string) {
	m.MutationsTotal.WithLabelValues(entity, operation, status).Inc()
}

// RecordCheckIn records a key result check-in.
func (m *Metrics) RecordCheckIn(scoringType string) {
	m.CheckInsTotal.WithLabelValues(scoringType).Inc()
}

// RecordCycleTransition records a cycle status transition.
func (m *Metrics) RecordCycleTransition(toStatus string) {
	m.CycleTransitionsTotal.WithLabelValues(toStatus).Inc()
}

// RecordEvidenceAttached records an attached evidence record.
func (m *Metrics) RecordEvidenceAttached(entityType string) {
	m.EvidenceAttachedTotal.WithLabelValues(entityType).Inc()
}

// RecordValidationFailure records an input validation failure.
func (m *Metrics) RecordValidationFailure(entity, operation string) {
	m.ValidationFailuresTotal.WithLabelValues(entity, operation).Inc()
}

// RecordDashboardQuery records a dashboard section query duration.
func (m *Metrics) RecordDashboardQuery(section string, duration time.Duration) {
	m.DashboardQueryDuration.WithLabelValues(section).Observe(duration.Seconds())
}

// RecordTokenValidationFailure records a JWT validation failure.
func (m *Metrics) RecordTokenValidationFailure(reason string) {
	m.TokenValidationFailures.WithLabelValues(reason).Inc()
}

// SetStoreUp sets the store reachability gauge.
func (m *Metrics) SetStoreUp(up bool) {
	if up {
		m.StoreUp.Set(1)
	} else {
		m.StoreUp.Set(0)
	}
}

// --- HTTP Middleware ---

// MetricsMiddleware returns HTTP middleware that records request metrics using
// chi's route pattern (not the actual URL path) to avoid label cardinality
// explosion.
func (m *Metrics) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &metricsResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		pathPattern := routePattern(r)
		reqSize := 0
		if r.ContentLength > 0 {
			reqSize = int(r.ContentLength)
		}

		m.RecordHTTPRequest(r.Method, pathPattern, sw.status, duration, reqSize, sw.bytes)
	})
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// routePattern extracts chi's route pattern from the request context.
// Falls back to the raw URL path if no pattern is found.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	pattern := strings.Join(rctx.RoutePatterns, "")
	// chi route patterns have trailing /*, remove it.
	pattern = strings.TrimSuffix(pattern, "/*")
	if pattern == "" {
		return r.URL.Path
	}
	return pattern
}

// metricsResponseWriter wraps http.ResponseWriter to capture status and bytes.
type metricsResponseWriter struct {
	http.ResponseWriter
	status  int
	bytes   int
	written bool
}

func (w *metricsResponseWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *metricsResponseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}
