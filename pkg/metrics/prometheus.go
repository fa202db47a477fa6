// Package metrics provides Prometheus metrics for the meld blend engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the meld service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Graph build metrics - the only expensive step in the engine
	graphBuildDuration prometheus.Histogram
	graphBuilds        prometheus.Counter
	pairsEvaluated     prometheus.Counter
	edgesKept          prometheus.Gauge
	buildWorkers       prometheus.Gauge

	// Query metrics - interactive path
	similarityQueries prometheus.Counter
	neighborQueries   prometheus.Counter
	blendRequests     prometheus.Counter
	blendErrors       prometheus.Counter
	blendSelectionSz  prometheus.Histogram
	blendLatency      prometheus.Histogram

	// Catalog metrics
	catalogSize prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "meld",
		subsystem:        "blend",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Register on the configured registry (custom by default).
	auto := promauto.With(m.registry)

	m.graphBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "graph_build_duration_milliseconds",
		Help:      "Histogram of full catalog graph build duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.graphBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "graph_builds_total",
		Help:      "Total number of full catalog graph builds",
	})

	m.pairsEvaluated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pairs_evaluated_total",
		Help:      "Total number of pairwise similarity evaluations",
	})

	m.edgesKept = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "graph_edges",
		Help:      "Number of edges above the similarity floor in the current graph",
	})

	m.buildWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_workers",
		Help:      "Number of workers used by the most recent graph build",
	})

	m.similarityQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_queries_total",
		Help:      "Total number of pairwise similarity queries served",
	})

	m.neighborQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "neighbor_queries_total",
		Help:      "Total number of top-K neighbor queries served",
	})

	m.blendRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "blend_requests_total",
		Help:      "Total number of blend resolutions requested",
	})

	m.blendErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "blend_errors_total",
		Help:      "Total number of blend resolutions that failed validation",
	})

	m.blendSelectionSz = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "blend_selection_size",
		Help:      "Histogram of the number of games per blend request",
		Buckets:   []float64{2, 3, 4, 5, 6, 8, 10, 15, 20},
	})

	m.blendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "blend_latency_milliseconds",
		Help:      "Histogram of blend resolution latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_size",
		Help:      "Number of games in the loaded catalog",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of garbage collection pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Graph build metrics functions.

// RecordGraphBuild records a completed full graph build.
func RecordGraphBuild(durationMs float64) {
	globalManager.graphBuilds.Inc()
	globalManager.graphBuildDuration.Observe(durationMs)
}

// AddPairsEvaluated adds to the pairwise similarity evaluation counter.
func AddPairsEvaluated(n int) {
	globalManager.pairsEvaluated.Add(float64(n))
}

// UpdateEdgesKept sets the number of edges in the current graph.
func UpdateEdgesKept(n int) {
	globalManager.edgesKept.Set(float64(n))
}

// UpdateBuildWorkers sets the worker count used for the graph build.
func UpdateBuildWorkers(n int) {
	globalManager.buildWorkers.Set(float64(n))
}

// Query metrics functions.

// RecordSimilarityQuery increments the similarity query counter.
func RecordSimilarityQuery() {
	globalManager.similarityQueries.Inc()
}

// RecordNeighborQuery increments the neighbor query counter.
func RecordNeighborQuery() {
	globalManager.neighborQueries.Inc()
}

// RecordBlendRequest records a blend resolution with its selection size.
func RecordBlendRequest(selectionSize int) {
	globalManager.blendRequests.Inc()
	globalManager.blendSelectionSz.Observe(float64(selectionSize))
}

// RecordBlendError increments the blend validation error counter.
func RecordBlendError() {
	globalManager.blendErrors.Inc()
}

// RecordBlendLatency records blend resolution latency.
func RecordBlendLatency(latencyMs float64) {
	globalManager.blendLatency.Observe(latencyMs)
}

// Catalog metrics functions.

// UpdateCatalogSize sets the number of games in the loaded catalog.
func UpdateCatalogSize(count int) {
	globalManager.catalogSize.Set(float64(count))
}

// HTTP metrics functions.

// RecordHTTPRequest records an HTTP request with endpoint, method, and status labels.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// System metrics functions.

// UpdateSystemMemoryUsage sets the current heap memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a garbage collection pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
