package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline metrics
	seasonsProcessed  *prometheus.CounterVec
	weeksProcessed    *prometheus.CounterVec
	lineupBuilds      *prometheus.CounterVec
	malformedGroups   prometheus.Counter
	missingReferences *prometheus.CounterVec
	stageDuration     *prometheus.HistogramVec

	// Storage and export
	storageOperations *prometheus.CounterVec
	exportWrites      *prometheus.CounterVec

	// Read model
	repositoryRecords *prometheus.GaugeVec
	lastRunUnix       prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
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
		namespace:        "gridiron",
		subsystem:        "league",
		histogramBuckets: prometheus.ExponentialBuckets(1, 2, 14),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	auto := promauto.With(m.registry)

	m.seasonsProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seasons_processed_total",
		Help:      "Seasons processed by outcome",
	}, []string{"status"})

	m.weeksProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "weeks_processed_total",
		Help:      "Weeks analysed by phase (regular, postseason)",
	}, []string{"phase"})

	m.lineupBuilds = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lineup_builds_total",
		Help:      "Lineups built by direction",
	}, []string{"direction"})

	m.malformedGroups = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "malformed_groups_total",
		Help:      "Matchup groups excluded from scoring because they were not two-team games",
	})

	m.missingReferences = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "missing_references_total",
		Help:      "Identifiers resolved to a placeholder label, by kind",
	}, []string{"kind"})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_milliseconds",
		Help:      "Duration of a run stage in milliseconds",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"stage"})

	m.storageOperations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_operations_total",
		Help:      "Storage operations by backend, operation and result",
	}, []string{"backend", "operation", "result"})

	m.exportWrites = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_documents_total",
		Help:      "Derived documents written by format",
	}, []string{"format"})

	m.repositoryRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_records",
		Help:      "Records held by the read model, by kind",
	}, []string{"kind"})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time at which the last run was published",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Errors by component and error type",
		},
		[]string{"component", "error_type"},
	)
}

// RecordSeasonProcessed counts a season with the given outcome ("ok", "failed").
func RecordSeasonProcessed(status string) {
	globalManager.seasonsProcessed.WithLabelValues(status).Inc()
}

// RecordWeekProcessed counts an analysed week.
func RecordWeekProcessed(phase string) {
	globalManager.weeksProcessed.WithLabelValues(phase).Inc()
}

// RecordLineupBuild counts a lineup build.
func RecordLineupBuild(direction string) {
	globalManager.lineupBuilds.WithLabelValues(direction).Inc()
}

// RecordMalformedGroup counts an unscored matchup group.
func RecordMalformedGroup() {
	globalManager.malformedGroups.Inc()
}

// RecordMissingReference counts an identifier resolved to a placeholder.
func RecordMissingReference(kind string) {
	globalManager.missingReferences.WithLabelValues(kind).Inc()
}

// RecordStageDuration records how long a run stage took.
func RecordStageDuration(stage string, durationMs float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(durationMs)
}

// RecordStorageOperation counts a storage call.
func RecordStorageOperation(backend, operation, result string) {
	globalManager.storageOperations.WithLabelValues(backend, operation, result).Inc()
}

// RecordExportWrite counts an exported document.
func RecordExportWrite(format string) {
	globalManager.exportWrites.WithLabelValues(format).Inc()
}

// UpdateRepositoryRecords sets the number of records of one kind held by the read model.
func UpdateRepositoryRecords(kind string, count int) {
	globalManager.repositoryRecords.WithLabelValues(kind).Set(float64(count))
}

// UpdateLastRun sets the publish time of the last run.
func UpdateLastRun(unix int64) {
	globalManager.lastRunUnix.Set(float64(unix))
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
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
