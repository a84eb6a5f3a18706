package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the radar service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ranking metrics
	rankingsComputed *prometheus.CounterVec
	rankingErrors    *prometheus.CounterVec
	rankingLatency   prometheus.Histogram
	cohortSize       prometheus.Histogram

	// Cohort store metrics
	cohortCacheHits        prometheus.Counter
	cohortCacheMisses      prometheus.Counter
	cohortCacheEvictions   prometheus.Counter
	cohortIndexesCached    prometheus.Gauge
	cohortBuildDuration    prometheus.Histogram
	cohortBuildLastUnix    prometheus.Gauge
	cohortBuildLastPlayers prometheus.Gauge

	// Dataset metrics
	datasetRows         prometheus.Gauge
	datasetColumns      prometheus.Gauge
	datasetLoadDuration prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "radar",
		subsystem:        "profiles",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.rankingsComputed = m.counterVec("rankings_total",
		"Total number of profiles ranked by bundle and scope", "bundle", "scope")
	m.rankingErrors = m.counterVec("ranking_errors_total",
		"Total number of failed ranking requests by error kind", "kind")
	m.rankingLatency = m.histogram("ranking_latency_milliseconds",
		"Histogram of ranking latency in milliseconds", m.histogramBuckets)
	m.cohortSize = m.histogram("cohort_size",
		"Number of peers a profile was ranked against",
		[]float64{0, 5, 10, 25, 50, 100, 250, 500, 1000, 2500})

	m.cohortCacheHits = m.counter("cohort_cache_hits_total",
		"Cohort index lookups served from the cache")
	m.cohortCacheMisses = m.counter("cohort_cache_misses_total",
		"Cohort index lookups that required a build")
	m.cohortCacheEvictions = m.counter("cohort_cache_evictions_total",
		"Cohort indexes evicted from the cache")
	m.cohortIndexesCached = m.gauge("cohort_indexes_cached",
		"Number of cohort indexes currently cached")
	m.cohortBuildDuration = m.histogram("cohort_build_duration_milliseconds",
		"Cohort index build duration in milliseconds", m.histogramBuckets)
	m.cohortBuildLastUnix = m.gauge("cohort_build_last_unix",
		"Unix timestamp of the last cohort index build")
	m.cohortBuildLastPlayers = m.gauge("cohort_build_last_players",
		"Total cohort memberships of the last built index")

	m.datasetRows = m.gauge("dataset_rows", "Rows in the loaded dataset")
	m.datasetColumns = m.gauge("dataset_metric_columns", "Numeric metric columns in the loaded dataset")
	m.datasetLoadDuration = m.gauge("dataset_load_duration_milliseconds",
		"Duration of the last dataset load in milliseconds")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Total number of errors by component", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordRanking counts a successful ranking and its cohort size.
func RecordRanking(bundle, scope string, cohortSize int) {
	globalManager.rankingsComputed.WithLabelValues(bundle, scope).Inc()
	globalManager.cohortSize.Observe(float64(cohortSize))
}

// RecordRankingError counts a failed ranking by error kind.
func RecordRankingError(kind string) {
	globalManager.rankingErrors.WithLabelValues(kind).Inc()
}

// RecordRankingLatency records ranking latency in milliseconds.
func RecordRankingLatency(latencyMs float64) {
	globalManager.rankingLatency.Observe(latencyMs)
}

// RecordCohortCacheHit increments the cohort cache hit counter.
func RecordCohortCacheHit() {
	globalManager.cohortCacheHits.Inc()
}

// RecordCohortCacheMiss increments the cohort cache miss counter.
func RecordCohortCacheMiss() {
	globalManager.cohortCacheMisses.Inc()
}

// RecordCohortCacheEviction increments the cohort cache eviction counter.
func RecordCohortCacheEviction() {
	globalManager.cohortCacheEvictions.Inc()
}

// UpdateCohortIndexesCached sets the number of cached cohort indexes.
func UpdateCohortIndexesCached(n int) {
	globalManager.cohortIndexesCached.Set(float64(n))
}

// RecordCohortBuild records a cohort index build.
func RecordCohortBuild(durationMs float64, memberships int, unix int64) {
	globalManager.cohortBuildDuration.Observe(durationMs)
	globalManager.cohortBuildLastPlayers.Set(float64(memberships))
	globalManager.cohortBuildLastUnix.Set(float64(unix))
}

// UpdateDataset sets dataset shape and load duration.
func UpdateDataset(rows, columns int, loadMs float64) {
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetColumns.Set(float64(columns))
	globalManager.datasetLoadDuration.Set(loadMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
