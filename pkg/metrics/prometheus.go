// Package metrics provides Prometheus metrics for tally runs.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Manager owns every collector exported by tally.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Input
	recordsLoaded   *prometheus.CounterVec
	recordsRejected *prometheus.CounterVec

	// Aggregation
	aggregationLatency prometheus.Histogram
	studentsRanked     prometheus.Gauge
	recordsAggregated  prometheus.Counter

	// Runs and errors
	runs                 *prometheus.CounterVec
	errorRateByComponent *prometheus.CounterVec
}

// Latency buckets in milliseconds.
var defaultLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50} //nolint:gochecknoglobals // bucket table

var globalManager *Manager //nolint:gochecknoglobals // singleton for package-level recorders

// customRegistry holds only tally collectors, no Go runtime collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry for the singleton

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tally",
		subsystem:        "scores",
		histogramBuckets: defaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_loaded_total",
		Help:      "Total number of score records read, by source",
	}, []string{"source"})

	m.recordsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_rejected_total",
		Help:      "Total number of score records failing validation, by reason",
	}, []string{"reason"})

	m.aggregationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_latency_milliseconds",
		Help:      "Time spent computing totals and ranks in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.studentsRanked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "students_ranked",
		Help:      "Number of distinct students in the last computed result",
	})

	m.recordsAggregated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_aggregated_total",
		Help:      "Total number of valid records fed into aggregation",
	})

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of command runs by command and status",
	}, []string{"command", "status"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Errors by component and kind",
	}, []string{"component", "kind"})
}

// RecordRecordsLoaded adds n to the records loaded from source.
func RecordRecordsLoaded(source string, n int) {
	globalManager.recordsLoaded.WithLabelValues(source).Add(float64(n))
}

// RecordRecordRejected increments the rejected records counter for reason.
func RecordRecordRejected(reason string) {
	globalManager.recordsRejected.WithLabelValues(reason).Inc()
}

// RecordAggregationLatency records aggregation latency in milliseconds.
func RecordAggregationLatency(latencyMs float64) {
	globalManager.aggregationLatency.Observe(latencyMs)
}

// UpdateStudentsRanked sets the number of students in the last result.
func UpdateStudentsRanked(count int) {
	globalManager.studentsRanked.Set(float64(count))
}

// RecordRecordsAggregated adds n to the aggregated records counter.
func RecordRecordsAggregated(n int) {
	globalManager.recordsAggregated.Add(float64(n))
}

// RecordRun increments the run counter.
func RecordRun(command, status string) {
	globalManager.runs.WithLabelValues(command, status).Inc()
}

// RecordErrorByComponent records an error with component and kind labels.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorRateByComponent.WithLabelValues(component, kind).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteText writes every metric family in the custom registry to w using
// the Prometheus text exposition format.
func WriteText(w io.Writer) error {
	return writeGathered(w, customRegistry)
}

func writeGathered(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("%w: gather: %v", ErrExport, err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("%w: %v", ErrExport, err)
		}
	}
	return nil
}
