package kmeans

import (
	"fmt"
	"math/rand/v2"

	"github.com/arloliu/zoner/types"
)

// DefaultSeed is the fixed seed used when no random source is configured.
const DefaultSeed int64 = 123456789

// Clusterer binds k-means++ seeding and Lloyd refinement to one point set.
//
// A Clusterer is created either from points (New) and then run with Execute, or
// from persisted membership (Restore), in which case only membership queries
// are supported.
//
// Clusterer is not safe for concurrent use.
type Clusterer struct {
	points []types.Point
	n      int
	newRNG func() types.RandomSource

	result   []*Cluster
	restored bool
}

// Option configures a Clusterer.
type Option func(*Clusterer)

// WithSeed seeds a fresh PCG source on every Execute call.
//
// Parameters:
//   - seed: Seed value
//
// Returns:
//   - Option: Configuration option
func WithSeed(seed int64) Option {
	return func(c *Clusterer) {
		c.newRNG = func() types.RandomSource { return NewRandomSource(seed) }
	}
}

// WithRandomSource uses rng for seeding. The source is shared across Execute
// calls, so repeated calls continue its stream.
//
// Parameters:
//   - rng: Random source
//
// Returns:
//   - Option: Configuration option
func WithRandomSource(rng types.RandomSource) Option {
	return func(c *Clusterer) {
		c.newRNG = func() types.RandomSource { return rng }
	}
}

// NewRandomSource returns the default deterministic source for seed.
func NewRandomSource(seed int64) types.RandomSource {
	s := uint64(seed) //nolint:gosec // bit pattern reuse is intended
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// New creates a clusterer for points.
//
// Validation happens here, not during Execute.
//
// Parameters:
//   - points: Points to cluster, already in their canonical order
//   - n: Number of clusters, 1 <= n <= len(points)
//   - opts: Optional configuration (WithSeed, WithRandomSource)
//
// Returns:
//   - *Clusterer: Initialized clusterer
//   - error: ErrNoPoints or ErrInvalidClusterCount
//
// Example:
//
//	c, err := kmeans.New(points, 8, kmeans.WithSeed(42))
//	if err != nil { /* handle */ }
//	if err := c.Execute(20); err != nil { /* handle */ }
func New(points []types.Point, n int, opts ...Option) (*Clusterer, error) {
	if err := validateCount(len(points), n); err != nil {
		return nil, err
	}

	c := &Clusterer{
		points: append([]types.Point(nil), points...),
		n:      n,
	}
	WithSeed(DefaultSeed)(c)
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Restore rebuilds clusters from persisted membership.
//
// Restored clusters have no centroids: Centroid returns ErrCentroidUnavailable.
//
// Parameters:
//   - n: Number of clusters, > 0
//   - members: Member IDs per cluster index, len(members) == n
//
// Returns:
//   - *Clusterer: Clusterer answering membership queries
//   - error: ErrInvalidClusterCount on size mismatch
func Restore(n int, members [][]types.EntityID) (*Clusterer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d must be positive", types.ErrInvalidClusterCount, n)
	}
	if len(members) != n {
		return nil, fmt.Errorf("%w: got %d member lists for n=%d", types.ErrInvalidClusterCount, len(members), n)
	}

	result := make([]*Cluster, n)
	for i, m := range members {
		result[i] = restoredCluster(i, m)
	}

	return &Clusterer{n: n, result: result, restored: true}, nil
}

// Execute seeds the clusters and runs rep refinement rounds.
//
// Every call starts from a new seeding, so with the default source repeated
// calls produce identical clusters.
//
// Parameters:
//   - rep: Number of Lloyd rounds, >= 0
//
// Returns:
//   - error: ErrInvalidRounds, or ErrRestoredClusters after Restore
func (c *Clusterer) Execute(rep int) error {
	if c.restored {
		return types.ErrRestoredClusters
	}
	if rep < 0 {
		return fmt.Errorf("%w: rep=%d", types.ErrInvalidRounds, rep)
	}

	clusters, err := Seed(c.points, c.n, c.newRNG())
	if err != nil {
		return err
	}
	if err := Iterate(clusters, c.points, rep); err != nil {
		return err
	}
	c.result = clusters

	return nil
}

// ClusterNumber returns the number of computed or restored clusters (0 before Execute).
func (c *Clusterer) ClusterNumber() int {
	return len(c.result)
}

// Centroid returns the centre of cluster i.
//
// Returns:
//   - x, y: Centroid coordinates
//   - error: ErrNotReady, ErrIndexOutOfRange or ErrCentroidUnavailable
func (c *Clusterer) Centroid(i int) (float64, float64, error) {
	cl, err := c.cluster(i)
	if err != nil {
		return 0, 0, err
	}
	x, y, ok := cl.Centroid()
	if !ok {
		return 0, 0, fmt.Errorf("%w: cluster %d", types.ErrCentroidUnavailable, i)
	}

	return x, y, nil
}

// Members returns a copy of the member IDs of cluster i.
//
// Returns:
//   - []types.EntityID: Members in assignment order
//   - error: ErrNotReady or ErrIndexOutOfRange
func (c *Clusterer) Members(i int) ([]types.EntityID, error) {
	cl, err := c.cluster(i)
	if err != nil {
		return nil, err
	}

	return cl.Members(), nil
}

// Clusters returns the computed clusters (nil before Execute).
func (c *Clusterer) Clusters() []*Cluster {
	return append([]*Cluster(nil), c.result...)
}

func (c *Clusterer) cluster(i int) (*Cluster, error) {
	if c.result == nil {
		return nil, types.ErrNotReady
	}
	if i < 0 || i >= len(c.result) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", types.ErrIndexOutOfRange, i, len(c.result))
	}

	return c.result[i], nil
}
