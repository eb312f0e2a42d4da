// Package metrics provides metrics collector implementations for the zoner library.
package metrics

import "github.com/arloliu/zoner/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	alloc, err := zoner.NewAllocator(&cfg, world, zoner.FireBrigade, zoner.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// AllocatorMetrics implementation

// RecordStateTransition discards the state transition metric.
func (n *NopMetrics) RecordStateTransition(_ /* from */, _ /* to */ types.State, _ /* duration */ float64) {
	// No-op
}

// RecordComputeDuration discards the compute duration metric.
func (n *NopMetrics) RecordComputeDuration(_ /* phase */ string, _ /* duration */ float64) {
	// No-op
}

// RecordComputeAttempt discards the compute attempt metric.
func (n *NopMetrics) RecordComputeAttempt(_ /* phase */ string, _ /* success */ bool) {
	// No-op
}

// RecordClusterCount discards the cluster count metric.
func (n *NopMetrics) RecordClusterCount(_ /* category */ string, _ /* count */ int) {
	// No-op
}

// RecordAssignmentCost discards the assignment cost metric.
func (n *NopMetrics) RecordAssignmentCost(_ /* category */ string, _ /* cost */ int64) {
	// No-op
}

// StoreMetrics implementation

// RecordStoreOperationDuration discards the store operation duration metric.
func (n *NopMetrics) RecordStoreOperationDuration(_ /* operation */ string, _ /* duration */ float64) {
	// No-op
}

// RecordFingerprintMismatch discards the fingerprint mismatch metric.
func (n *NopMetrics) RecordFingerprintMismatch(_ /* category */ string) {
	// No-op
}
