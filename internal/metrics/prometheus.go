package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/zoner/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// a collector that is never exercised leaves the registerer untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	stateTransitions    *prometheus.CounterVec
	stateDuration       *prometheus.HistogramVec
	computeDuration     *prometheus.HistogramVec
	computeAttempts     *prometheus.CounterVec
	clusterCount        *prometheus.GaugeVec
	assignmentCost      *prometheus.GaugeVec
	storeDuration       *prometheus.HistogramVec
	fingerprintMismatch *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "zoner" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "zoner"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.stateTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "state_transitions_total",
			Help:      "Total allocator state transitions by source and target state.",
		}, []string{"from", "to"})

		p.stateDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "state_duration_seconds",
			Help:      "Time spent in a state before leaving it, in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms .. ~4min
		}, []string{"state"})

		p.computeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "compute_duration_seconds",
			Help:      "Duration of allocation lifecycle calls by phase (precompute, resume, prepare).",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 12), // 1ms .. ~24s
		}, []string{"phase"})

		p.computeAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "compute_attempts_total",
			Help:      "Allocation lifecycle call outcomes (success|failure) by phase.",
		}, []string{"phase", "result"})

		p.clusterCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "clusters",
			Help:      "Number of clusters of the last committed allocation by category.",
		}, []string{"category"})

		p.assignmentCost = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "assignment_cost",
			Help:      "Total agent-to-cluster distance of the last committed assignment by category.",
		}, []string{"category"})

		p.storeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Latency of persisted state operations by operation (save, load).",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms .. ~1s
		}, []string{"operation"})

		p.fingerprintMismatch = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "fingerprint_mismatches_total",
			Help:      "Resumes whose stored site fingerprint differs from the current world model.",
		}, []string{"category"})

		p.reg.MustRegister(p.stateTransitions)
		p.reg.MustRegister(p.stateDuration)
		p.reg.MustRegister(p.computeDuration)
		p.reg.MustRegister(p.computeAttempts)
		p.reg.MustRegister(p.clusterCount)
		p.reg.MustRegister(p.assignmentCost)
		p.reg.MustRegister(p.storeDuration)
		p.reg.MustRegister(p.fingerprintMismatch)
	})
}

// AllocatorMetrics implementation

// RecordStateTransition counts the transition and observes the time spent in from.
func (p *PrometheusCollector) RecordStateTransition(from, to types.State, duration float64) {
	p.ensureRegistered()
	p.stateTransitions.WithLabelValues(from.String(), to.String()).Inc()
	p.stateDuration.WithLabelValues(from.String()).Observe(duration)
}

// RecordComputeDuration observes the duration of a lifecycle call.
func (p *PrometheusCollector) RecordComputeDuration(phase string, duration float64) {
	p.ensureRegistered()
	p.computeDuration.WithLabelValues(phase).Observe(duration)
}

// RecordComputeAttempt records the outcome of a lifecycle call.
func (p *PrometheusCollector) RecordComputeAttempt(phase string, success bool) {
	p.ensureRegistered()
	result := "failure"
	if success {
		result = "success"
	}
	p.computeAttempts.WithLabelValues(phase, result).Inc()
}

// RecordClusterCount sets the cluster count gauge.
func (p *PrometheusCollector) RecordClusterCount(category string, count int) {
	p.ensureRegistered()
	p.clusterCount.WithLabelValues(category).Set(float64(count))
}

// RecordAssignmentCost sets the assignment cost gauge.
func (p *PrometheusCollector) RecordAssignmentCost(category string, cost int64) {
	p.ensureRegistered()
	p.assignmentCost.WithLabelValues(category).Set(float64(cost))
}

// StoreMetrics implementation

// RecordStoreOperationDuration observes store latency.
func (p *PrometheusCollector) RecordStoreOperationDuration(operation string, duration float64) {
	p.ensureRegistered()
	p.storeDuration.WithLabelValues(operation).Observe(duration)
}

// RecordFingerprintMismatch increments the fingerprint mismatch counter.
func (p *PrometheusCollector) RecordFingerprintMismatch(category string) {
	p.ensureRegistered()
	p.fingerprintMismatch.WithLabelValues(category).Inc()
}
