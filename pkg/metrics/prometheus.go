// Package metrics provides Prometheus metrics for the star ratings dashboard.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Query engine
	queries             *prometheus.CounterVec
	queryLatency        prometheus.Histogram
	queryResultSize     prometheus.Histogram
	summaryRequests     *prometheus.CounterVec
	summaryNoData       prometheus.Counter
	viewActions         *prometheus.CounterVec
	viewActionsRejected prometheus.Counter

	// Dataset
	datasetPlans           prometheus.Gauge
	datasetLoadDuration    prometheus.Histogram
	datasetLoadedUnix      prometheus.Gauge
	repositoryQueryLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// state pairs the active manager with the registry it registers into.
type state struct {
	manager  *Manager
	registry *prometheus.Registry
}

var current atomic.Pointer[state] //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	Init()
}

// Init replaces the package-level manager with one built from opts on a
// fresh private registry. Values recorded before the call are dropped, so
// run it once at startup, before traffic.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	all := append(append([]Option(nil), opts...), WithPrometheusRegistry(registry))
	current.Store(&state{manager: NewManager(all...), registry: registry})
}

func globalManager() *Manager {
	return current.Load().manager
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stars",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.queries = auto.NewCounterVec(
		m.counterOpts("queries_total", "Plan queries by region filter, rating band and sort key"),
		[]string{"region", "band", "sort"},
	)
	m.queryLatency = auto.NewHistogram(
		m.histogramOpts("query_latency_milliseconds", "Filter and sort latency in milliseconds", m.histogramBuckets),
	)
	m.queryResultSize = auto.NewHistogram(
		m.histogramOpts("query_result_size", "Number of plans returned per query", prometheus.LinearBuckets(0, 5, 6)),
	)
	m.summaryRequests = auto.NewCounterVec(
		m.counterOpts("summaries_total", "Summary computations by scope"),
		[]string{"scope"},
	)
	m.summaryNoData = auto.NewCounter(
		m.counterOpts("summaries_no_data_total", "Summary computations over an empty scope"),
	)
	m.viewActions = auto.NewCounterVec(
		m.counterOpts("view_actions_total", "Dashboard interactions applied by kind"),
		[]string{"kind"},
	)
	m.viewActionsRejected = auto.NewCounter(
		m.counterOpts("view_actions_rejected_total", "Dashboard interactions rejected as malformed"),
	)

	m.datasetPlans = auto.NewGauge(
		m.gaugeOpts("dataset_plans", "Number of plans in the loaded dataset"),
	)
	m.datasetLoadDuration = auto.NewHistogram(
		m.histogramOpts("dataset_load_duration_milliseconds", "Dataset decode and validation time in milliseconds", m.histogramBuckets),
	)
	m.datasetLoadedUnix = auto.NewGauge(
		m.gaugeOpts("dataset_loaded_unixtime", "Unix time the dataset was last loaded"),
	)
	m.repositoryQueryLatency = auto.NewHistogram(
		m.histogramOpts("repository_query_latency_milliseconds", "Repository read latency in milliseconds", m.histogramBuckets),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that ended in an error", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Current number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_milliseconds", "Most recent GC pause in milliseconds", m.histogramBuckets),
	)
}

// RecordQuery counts one plan query. Empty labels are reported as "all".
func RecordQuery(region, band, sortKey string) {
	globalManager().queries.WithLabelValues(orAll(region), orAll(band), sortKey).Inc()
}

// RecordQueryLatency records filter and sort latency in milliseconds.
func RecordQueryLatency(latencyMs float64) {
	globalManager().queryLatency.Observe(latencyMs)
}

// RecordQueryResultSize records how many plans a query returned.
func RecordQueryResultSize(n int) {
	globalManager().queryResultSize.Observe(float64(n))
}

// RecordSummary counts one summary computation for scope.
func RecordSummary(scope string) {
	globalManager().summaryRequests.WithLabelValues(orAll(scope)).Inc()
}

// RecordSummaryNoData counts a summary over an empty scope.
func RecordSummaryNoData() {
	globalManager().summaryNoData.Inc()
}

// RecordViewAction counts an applied dashboard interaction.
func RecordViewAction(kind string) {
	globalManager().viewActions.WithLabelValues(kind).Inc()
}

// RecordViewActionRejected counts a rejected dashboard interaction.
func RecordViewActionRejected() {
	globalManager().viewActionsRejected.Inc()
}

// UpdateDatasetPlans sets the number of loaded plans.
func UpdateDatasetPlans(count int) {
	globalManager().datasetPlans.Set(float64(count))
	globalManager().datasetLoadedUnix.SetToCurrentTime()
}

// RecordDatasetLoadDuration records dataset load time in milliseconds.
func RecordDatasetLoadDuration(durationMs float64) {
	globalManager().datasetLoadDuration.Observe(durationMs)
}

// RecordRepositoryQueryLatency records repository read latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager().repositoryQueryLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager().errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the heap memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the private registry of the active manager.
func GetRegistry() *prometheus.Registry {
	return current.Load().registry
}

// Gatherer returns a gatherer that always reads the registry installed by
// the latest Init.
func Gatherer() prometheus.Gatherer {
	return prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		return GetRegistry().Gather()
	})
}

func orAll(v string) string {
	if v == "" {
		return "all"
	}
	return v
}
