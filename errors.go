package zoner

import "github.com/arloliu/zoner/types"

// Sentinel errors returned by the Allocator.
//
// They are re-exported from the types package so that callers can check
// errors with errors.Is without importing subpackages.
var (
	ErrInvalidConfig      = types.ErrInvalidConfig
	ErrWorldModelRequired = types.ErrWorldModelRequired
	ErrCategoryRequired   = types.ErrCategoryRequired
	ErrStoreRequired      = types.ErrStoreRequired
	ErrAlreadyComputed    = types.ErrAlreadyComputed
	ErrComputeInProgress  = types.ErrComputeInProgress
	ErrDuplicateEntity    = types.ErrDuplicateEntity
	ErrNilEntity          = types.ErrNilEntity
	ErrPersistFailed      = types.ErrPersistFailed
	ErrResumeFailed       = types.ErrResumeFailed
)

// Fatal configuration errors. Check with IsConfigurationError.
var (
	ErrConfiguration      = types.ErrConfiguration
	ErrAgentCountMismatch = types.ErrAgentCountMismatch
)

// Query errors returned by the strict accessors.
var (
	ErrNotReady            = types.ErrNotReady
	ErrIndexOutOfRange     = types.ErrIndexOutOfRange
	ErrCentroidUnavailable = types.ErrCentroidUnavailable
)

// Computation errors surfaced from the clusterer and the assignment strategy.
var (
	ErrInvalidClusterCount = types.ErrInvalidClusterCount
	ErrNoPoints            = types.ErrNoPoints
	ErrInvalidRounds       = types.ErrInvalidRounds
	ErrRestoredClusters    = types.ErrRestoredClusters
	ErrNotSquare           = types.ErrNotSquare
	ErrNegativeCost        = types.ErrNegativeCost
)

// Persistence errors.
var (
	ErrKeyNotFound      = types.ErrKeyNotFound
	ErrCorruptState     = types.ErrCorruptState
	ErrStoreUnavailable = types.ErrStoreUnavailable
)
