package types

import (
	"errors"
	"strings"
)

// Sentinel errors for the zoner library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Allocator, Clusterer, Strategy, Store)
//   - Use consistent messages across similar error types

// Allocator errors - Public API errors returned by the Allocator.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrWorldModelRequired is returned when the world model is nil.
	ErrWorldModelRequired = errors.New("world model is required")

	// ErrCategoryRequired is returned when the agent category is empty.
	ErrCategoryRequired = errors.New("agent category is required")

	// ErrStoreRequired is returned when a persistence call receives a nil store.
	ErrStoreRequired = errors.New("store is required")

	// ErrAlreadyComputed is returned when a lifecycle call follows a successful one.
	ErrAlreadyComputed = errors.New("allocation already computed")

	// ErrComputeInProgress is returned when a lifecycle call overlaps a running one.
	ErrComputeInProgress = errors.New("allocation computation in progress")

	// ErrDuplicateEntity is returned when the world model reports the same ID twice.
	ErrDuplicateEntity = errors.New("duplicate entity ID")

	// ErrNilEntity is returned when the world model reports a nil entity.
	ErrNilEntity = errors.New("nil entity")

	// ErrPersistFailed is returned when the computed allocation cannot be stored.
	ErrPersistFailed = errors.New("failed to persist allocation")

	// ErrResumeFailed is returned when a stored allocation cannot be loaded.
	ErrResumeFailed = errors.New("failed to resume allocation")
)

// Configuration errors - fatal, never retried.
var (
	// ErrConfiguration is the parent of every fatal configuration error.
	// Callers use IsConfigurationError to tell these apart from transient failures.
	ErrConfiguration = errors.New("fatal configuration error")

	// ErrAgentCountMismatch is returned when the agent count differs from the cluster count.
	ErrAgentCountMismatch = errors.New("agent count does not match cluster count")
)

// Query errors - returned by strict accessors.
var (
	// ErrNotReady is returned when results are queried before any computation.
	ErrNotReady = errors.New("clusters not computed")

	// ErrIndexOutOfRange is returned for cluster indexes outside [0, n).
	ErrIndexOutOfRange = errors.New("cluster index out of range")

	// ErrCentroidUnavailable is returned for centroid queries on clusters restored
	// from persisted membership, which carry no coordinates.
	ErrCentroidUnavailable = errors.New("centroid unavailable for restored clusters")
)

// Clusterer errors - k-means++ construction and execution errors.
var (
	// ErrInvalidClusterCount is returned when n <= 0 or n exceeds the point count.
	ErrInvalidClusterCount = errors.New("invalid cluster count")

	// ErrNoPoints is returned when clustering is requested for an empty point set.
	ErrNoPoints = errors.New("no points to cluster")

	// ErrInvalidRounds is returned for a negative refinement round count.
	ErrInvalidRounds = errors.New("invalid refinement round count")

	// ErrRestoredClusters is returned by Execute on clusters rebuilt from persisted
	// membership, which hold no points to recompute from.
	ErrRestoredClusters = errors.New("restored clusters cannot be recomputed")
)

// Strategy errors - assignment solver validation errors.
var (
	// ErrNotSquare is returned for cost matrices that are not n × n.
	ErrNotSquare = errors.New("cost matrix is not square")

	// ErrNegativeCost is returned for cost matrices with negative entries.
	ErrNegativeCost = errors.New("cost matrix has negative entry")
)

// Store errors - persisted state errors.
var (
	// ErrKeyNotFound is returned when a key is absent from the store.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruptState is returned when persisted state fails validation.
	ErrCorruptState = errors.New("corrupt persisted state")

	// ErrStoreUnavailable is returned when the store backend cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsConfigurationError reports whether err is a fatal configuration error.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err wraps ErrConfiguration
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsKeyNotFoundError checks if an error indicates that a key was not found.
//
// This function handles backend-specific "not found" errors which may come as:
//   - Sentinel error: ErrKeyNotFound (possibly wrapped)
//   - NATS message: "nats: key not found"
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if the error indicates a missing key, false otherwise
func IsKeyNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrKeyNotFound) {
		return true
	}

	return strings.Contains(err.Error(), "key not found")
}
