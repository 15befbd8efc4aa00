// Package metrics provides Prometheus metrics for the food monitoring service.
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
	enabled          bool
	registry         prometheus.Registerer

	// Evaluation metrics
	evaluationsTotal   *prometheus.CounterVec
	alertsEmitted      *prometheus.CounterVec
	validationFailures prometheus.Counter

	// Broadcast metrics
	eventsPublished    prometheus.Counter
	deliveriesDropped  prometheus.Counter
	subscribersCurrent prometheus.Gauge

	// Store metrics
	recordsTracked prometheus.Gauge
	storeErrors    prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "foodmon",
		subsystem:        "records",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.evaluationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Evaluator runs, labeled by check kind.",
	}, []string{"check"})

	m.alertsEmitted = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "alerts_emitted_total",
		Help:      "Alerts produced by evaluators, labeled by alert kind.",
	}, []string{"kind"})

	m.validationFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Evaluations or updates rejected for missing/invalid input.",
	})

	m.eventsPublished = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "broadcast",
		Name:      "events_published_total",
		Help:      "Alert events handed to the broadcaster.",
	})

	m.deliveriesDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "broadcast",
		Name:      "deliveries_dropped_total",
		Help:      "Per-subscriber deliveries dropped because a buffer was full.",
	})

	m.subscribersCurrent = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "broadcast",
		Name:      "subscribers",
		Help:      "Currently registered alert subscribers.",
	})

	m.recordsTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked",
		Help:      "Records currently held by the store.",
	})

	m.storeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Failures reported by the record store backend.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests, labeled by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by endpoint.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})
}

// GetRegistry returns the custom registry backing the global manager,
// suitable for promhttp.HandlerFor.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

// RecordEvaluation counts one evaluator run for the given check kind.
func RecordEvaluation(check string) {
	if globalManager.enabled {
		globalManager.evaluationsTotal.WithLabelValues(check).Inc()
	}
}

// RecordAlertEmitted counts one produced alert of the given kind.
func RecordAlertEmitted(kind string) {
	if globalManager.enabled {
		globalManager.alertsEmitted.WithLabelValues(kind).Inc()
	}
}

// RecordValidationFailure counts one rejected evaluation or update.
func RecordValidationFailure() {
	if globalManager.enabled {
		globalManager.validationFailures.Inc()
	}
}

// RecordEventPublished counts one alert event handed to the broadcaster.
func RecordEventPublished() {
	if globalManager.enabled {
		globalManager.eventsPublished.Inc()
	}
}

// RecordDeliveryDropped counts one dropped per-subscriber delivery.
func RecordDeliveryDropped() {
	if globalManager.enabled {
		globalManager.deliveriesDropped.Inc()
	}
}

// UpdateSubscriberCount sets the current subscriber gauge.
func UpdateSubscriberCount(n int) {
	if globalManager.enabled {
		globalManager.subscribersCurrent.Set(float64(n))
	}
}

// UpdateRecordsTracked sets the tracked-records gauge.
func UpdateRecordsTracked(n int) {
	if globalManager.enabled {
		globalManager.recordsTracked.Set(float64(n))
	}
}

// RecordStoreError counts one store backend failure.
func RecordStoreError() {
	if globalManager.enabled {
		globalManager.storeErrors.Inc()
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request latency in seconds.
func RecordHTTPRequestDuration(endpoint string, seconds float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint).Observe(seconds)
	}
}
