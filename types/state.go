package types

// State represents the allocator lifecycle state.
//
// States follow one of two progressions:
//
//	StateInit → StateComputing → StateReady    (Precompute or Prepare)
//	StateInit → StateComputing → StateResumed  (Resume)
//
// A failed computation returns to StateInit. StateReady and StateResumed are terminal.
type State int

const (
	// StateInit is the initial state before any computation.
	StateInit State = iota

	// StateComputing indicates a lifecycle call is running.
	StateComputing

	// StateReady indicates clusters, centroids and the assignment are available.
	StateReady

	// StateResumed indicates membership and assignment were restored from a store.
	// Centroids are not available in this state.
	StateResumed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateComputing:
		return "Computing"
	case StateReady:
		return "Ready"
	case StateResumed:
		return "Resumed"
	default:
		return "Unknown"
	}
}

// HasResult reports whether cluster membership and assignment can be queried.
func (s State) HasResult() bool {
	return s == StateReady || s == StateResumed
}
