package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	AllocatorMetrics
	StoreMetrics
}

// AllocatorMetrics defines metrics for allocator computations.
type AllocatorMetrics interface {
	// RecordStateTransition records an allocator state transition.
	RecordStateTransition(from, to State, duration float64)

	// RecordComputeDuration records the time taken for a lifecycle call.
	//
	// Parameters:
	//   - phase: Lifecycle phase ("precompute", "resume", "prepare")
	//   - duration: Time taken in seconds
	RecordComputeDuration(phase string, duration float64)

	// RecordComputeAttempt records a lifecycle call outcome.
	//
	// Parameters:
	//   - phase: Lifecycle phase
	//   - success: true if the call committed a result
	RecordComputeAttempt(phase string, success bool)

	// RecordClusterCount sets the cluster count of a category (gauge metric).
	RecordClusterCount(category string, count int)

	// RecordAssignmentCost sets the total matching cost of a category (gauge metric).
	RecordAssignmentCost(category string, cost int64)
}

// StoreMetrics defines metrics for persisted state operations.
type StoreMetrics interface {
	// RecordStoreOperationDuration records store latency.
	//
	// Parameters:
	//   - operation: Operation type ("save", "load")
	//   - duration: Time taken in seconds
	RecordStoreOperationDuration(operation string, duration float64)

	// RecordFingerprintMismatch records a resumed snapshot that was computed
	// from a different site set than the current world model.
	RecordFingerprintMismatch(category string)
}
