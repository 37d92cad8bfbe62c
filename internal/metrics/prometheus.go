package metrics

import (
	"sync"
	"time"

	"github.com/arloliu/spinpick/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metrics are registered lazily on first use, so constructing a collector that
// is never exercised leaves the registerer untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	phaseTransitions *prometheus.CounterVec
	eventsDropped    prometheus.Counter
	rosterSize       prometheus.Gauge

	spinsStarted prometheus.Counter
	spinEntries  prometheus.Histogram
	spinDuration prometheus.Histogram

	assignments     *prometheus.CounterVec
	partitions      prometheus.Counter
	partitionSize   prometheus.Histogram
	partitionSpread prometheus.Gauge
	partitionTime   prometheus.Histogram
	rosterDrift     prometheus.Counter
}

var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "spinpick" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "spinpick"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.phaseTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "phase_transitions_total",
			Help:      "Total phase transitions by source and target phase.",
		}, []string{"from", "to"})
		p.eventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "events_dropped_total",
			Help:      "Assignment events dropped because a subscriber was not draining its channel.",
		})
		p.rosterSize = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "roster_entries",
			Help:      "Current number of entries on the wheel.",
		})

		p.spinsStarted = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "spin",
			Name:      "started_total",
			Help:      "Total spins started.",
		})
		p.spinEntries = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "spin",
			Name:      "wheel_entries",
			Help:      "Number of entries on the wheel when a spin started.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8), // 1 .. 128
		})
		p.spinDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "spin",
			Name:      "settle_seconds",
			Help:      "Wall time from spin start to settle in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 7.5, 10, 20},
		})

		p.assignments = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "total",
			Help:      "Total entries placed into groups by path (precomputed, fallback, manual).",
		}, []string{"path"})
		p.partitions = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "partitions_built_total",
			Help:      "Total balanced partitions computed.",
		})
		p.partitionSize = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "partition_entries",
			Help:      "Number of entries in each computed partition.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		})
		p.partitionSpread = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "partition_spread",
			Help:      "Score difference between heaviest and lightest group of the last partition.",
		})
		p.partitionTime = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "partition_seconds",
			Help:      "Time taken to compute a partition in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs .. ~160ms
		})
		p.rosterDrift = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "roster_drift_total",
			Help:      "Spins started after the roster diverged from the partitioned roster.",
		})

		p.reg.MustRegister(p.phaseTransitions)
		p.reg.MustRegister(p.eventsDropped)
		p.reg.MustRegister(p.rosterSize)
		p.reg.MustRegister(p.spinsStarted)
		p.reg.MustRegister(p.spinEntries)
		p.reg.MustRegister(p.spinDuration)
		p.reg.MustRegister(p.assignments)
		p.reg.MustRegister(p.partitions)
		p.reg.MustRegister(p.partitionSize)
		p.reg.MustRegister(p.partitionSpread)
		p.reg.MustRegister(p.partitionTime)
		p.reg.MustRegister(p.rosterDrift)
	})
}

// EngineMetrics implementation

// RecordPhaseTransition increments the transition counter for the phase pair.
func (p *PrometheusCollector) RecordPhaseTransition(from, to types.Phase) {
	p.ensureRegistered()
	p.phaseTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// RecordEventDropped increments the dropped event counter.
func (p *PrometheusCollector) RecordEventDropped() {
	p.ensureRegistered()
	p.eventsDropped.Inc()
}

// RecordRosterSize sets the roster gauge.
func (p *PrometheusCollector) RecordRosterSize(count int) {
	p.ensureRegistered()
	p.rosterSize.Set(float64(count))
}

// SpinMetrics implementation

// RecordSpinStarted increments the spin counter and observes the wheel size.
func (p *PrometheusCollector) RecordSpinStarted(entries int) {
	p.ensureRegistered()
	p.spinsStarted.Inc()
	p.spinEntries.Observe(float64(entries))
}

// RecordSpinSettled observes the spin duration.
func (p *PrometheusCollector) RecordSpinSettled(elapsed time.Duration) {
	p.ensureRegistered()
	p.spinDuration.Observe(elapsed.Seconds())
}

// AssignmentMetrics implementation

// RecordAssignment increments the assignment counter for the path.
func (p *PrometheusCollector) RecordAssignment(path string) {
	p.ensureRegistered()
	p.assignments.WithLabelValues(path).Inc()
}

// RecordPartitionBuilt records partition count, size, spread and latency.
func (p *PrometheusCollector) RecordPartitionBuilt(entries, spread int, duration time.Duration) {
	p.ensureRegistered()
	p.partitions.Inc()
	p.partitionSize.Observe(float64(entries))
	p.partitionSpread.Set(float64(spread))
	p.partitionTime.Observe(duration.Seconds())
}

// RecordRosterDrift increments the drift counter.
func (p *PrometheusCollector) RecordRosterDrift() {
	p.ensureRegistered()
	p.rosterDrift.Inc()
}
