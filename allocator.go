package zoner

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/zoner/internal/hooks"
	"github.com/arloliu/zoner/internal/logging"
	"github.com/arloliu/zoner/internal/metrics"
	"github.com/arloliu/zoner/internal/precompute"
	"github.com/arloliu/zoner/kmeans"
	"github.com/arloliu/zoner/strategy"
	"github.com/arloliu/zoner/types"
)

// Lifecycle phase names used in logs and metrics.
const (
	phasePrecompute = "precompute"
	phaseResume     = "resume"
	phasePrepare    = "prepare"
)

// Allocator partitions the map sites of one agent category into as many
// clusters as the category has agents, and matches every agent to exactly
// one cluster at minimum total distance.
//
// Allocator is the main entry point of the zoner library. It handles:
//   - k-means++ seeding and Lloyd refinement of the site clusters
//   - Agent-to-cluster assignment through an AssignmentStrategy
//   - Persisting the result to a Store and resuming from it
//
// Lifecycle:
//   - Create with NewAllocator()
//   - Call exactly one of Precompute(), Resume() or Prepare()
//   - Query clusters and the assignment
//
// A failed lifecycle call leaves the allocator in StateInit with no partial
// result, so it can be retried. A successful call is final: every later call
// returns ErrAlreadyComputed.
//
// Error policy:
//   - Strict accessors (ClusterMembers, Centroid) return errors for queries
//     before computation and for out-of-range indexes
//   - Collaborator-facing accessors (ClusterIndexOf, SiteClusterOf,
//     ClusterEntityIDs, AgentFor) never fail; they return NoCluster, an empty
//     slice or false instead
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Results are committed atomically; readers never observe a partial result
type Allocator struct {
	cfg      Config
	world    WorldModel
	category Category
	keys     precompute.Keys

	strategy     AssignmentStrategy
	hooks        Hooks
	metrics      MetricsCollector
	logger       Logger
	randomSource func(seed int64) RandomSource
	verifyResume bool

	state        atomic.Int32 // State
	stateEntered atomic.Int64 // unix nanoseconds

	mu     sync.RWMutex
	result *allocation
}

// allocation is an immutable committed result.
type allocation struct {
	clusterer  *kmeans.Clusterer
	siteIndex  map[EntityID]int // site -> cluster
	agents     []EntityID       // cluster -> agent
	assignment map[EntityID]int // agent -> cluster
	cost       int64            // -1 when unknown (resumed)
}

// NewAllocator creates a new Allocator for one agent category.
//
// Returns a concrete *Allocator struct following the "accept interfaces, return structs" principle.
//
// Parameters:
//   - cfg: Configuration (missing values are filled with defaults)
//   - world: World model supplying sites, agents and the cluster count
//   - category: Agent category to allocate
//   - opts: Optional configuration (strategy, logger, metrics, hooks, random source)
//
// Returns:
//   - *Allocator: Initialized allocator in StateInit
//   - error: ErrInvalidConfig, ErrWorldModelRequired or ErrCategoryRequired
//
// Example:
//
//	cfg := zoner.DefaultConfig()
//	world := source.NewStatic(sites)
//	world.SetAgents(zoner.FireBrigade, brigades)
//	alloc, err := zoner.NewAllocator(&cfg, world, zoner.FireBrigade)
//	if err != nil { /* handle */ }
//	if err := alloc.Prepare(ctx); err != nil { /* handle */ }
func NewAllocator(cfg *Config, world WorldModel, category Category, opts ...Option) (*Allocator, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if world == nil {
		return nil, ErrWorldModelRequired
	}
	if category == "" {
		return nil, ErrCategoryRequired
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	options := &allocatorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	strategyInstance := options.strategy
	if strategyInstance == nil {
		strategyInstance = strategy.NewHungarian()
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	// Validate with warnings after logger is available
	cfg.ValidateWithWarnings(loggerInstance)

	randomSource := options.randomSource
	if randomSource == nil {
		randomSource = kmeans.NewRandomSource
	}

	a := &Allocator{
		cfg:          *cfg,
		world:        world,
		category:     category,
		keys:         precompute.NewKeys(cfg.KeyPrefix, category),
		strategy:     strategyInstance,
		hooks:        hooks.Fill(options.hooks),
		metrics:      metricsCollector,
		logger:       logging.WithFields(loggerInstance, "category", category),
		randomSource: randomSource,
		verifyResume: options.verifyResume,
	}
	a.cfg.SiteKinds = slices.Clone(cfg.SiteKinds)

	a.state.Store(int32(StateInit))
	a.stateEntered.Store(time.Now().UnixNano())

	return a, nil
}

// Precompute computes the allocation with PrecomputeRounds refinement rounds
// and persists it to st.
//
// The result is committed only after it was persisted; a persistence failure
// leaves the allocator in StateInit.
//
// Parameters:
//   - ctx: Context for cancellation (bounded by Config.OperationTimeout)
//   - st: Destination store
//
// Returns:
//   - error: ErrStoreRequired, ErrAlreadyComputed, ErrComputeInProgress,
//     a computation error, or ErrPersistFailed
func (a *Allocator) Precompute(ctx context.Context, st Store) error {
	if st == nil {
		return ErrStoreRequired
	}

	return a.run(ctx, phasePrecompute, func(ctx context.Context) (*allocation, State, error) {
		result, sites, err := a.compute(ctx, a.cfg.PrecomputeRounds)
		if err != nil {
			return nil, StateInit, err
		}

		snap := precompute.Snapshot{
			Members:        make([][]EntityID, len(result.agents)),
			Agents:         slices.Clone(result.agents),
			Fingerprint:    precompute.Fingerprint(sites),
			HasFingerprint: true,
		}
		for i := range snap.Members {
			snap.Members[i], _ = result.clusterer.Members(i)
		}

		start := time.Now()
		err = precompute.Save(ctx, st, a.keys, snap)
		a.metrics.RecordStoreOperationDuration("save", time.Since(start).Seconds())
		if err != nil {
			return nil, StateInit, fmt.Errorf("%w: %w", ErrPersistFailed, err)
		}

		a.logger.Debug("allocation persisted",
			"clusters", snap.N(),
			"fingerprint", snap.Fingerprint,
		)

		return result, StateReady, nil
	})
}

// Resume restores the allocation persisted by Precompute without recomputing it.
//
// Resumed clusters carry membership only: Centroid returns ErrCentroidUnavailable.
// With WithResumeVerification the stored site fingerprint is compared with the
// current world model; a mismatch is only logged and counted.
//
// Parameters:
//   - ctx: Context for cancellation (bounded by Config.OperationTimeout)
//   - st: Source store
//
// Returns:
//   - error: ErrStoreRequired, ErrAlreadyComputed, ErrComputeInProgress or
//     ErrResumeFailed (wrapping ErrKeyNotFound or ErrCorruptState)
func (a *Allocator) Resume(ctx context.Context, st Store) error {
	if st == nil {
		return ErrStoreRequired
	}

	return a.run(ctx, phaseResume, func(ctx context.Context) (*allocation, State, error) {
		start := time.Now()
		snap, err := precompute.Load(ctx, st, a.keys)
		a.metrics.RecordStoreOperationDuration("load", time.Since(start).Seconds())
		if err != nil {
			return nil, StateInit, fmt.Errorf("%w: %w", ErrResumeFailed, err)
		}

		clusterer, err := kmeans.Restore(snap.N(), snap.Members)
		if err != nil {
			return nil, StateInit, fmt.Errorf("%w: %w", ErrResumeFailed, err)
		}

		if a.verifyResume {
			a.verifyFingerprint(ctx, snap)
		}

		return newAllocation(clusterer, snap.Agents, -1), StateResumed, nil
	})
}

// Prepare computes the allocation locally with PrepareRounds refinement rounds.
// Nothing is persisted.
//
// Parameters:
//   - ctx: Context for cancellation (bounded by Config.OperationTimeout)
//
// Returns:
//   - error: ErrAlreadyComputed, ErrComputeInProgress or a computation error
func (a *Allocator) Prepare(ctx context.Context) error {
	return a.run(ctx, phasePrepare, func(ctx context.Context) (*allocation, State, error) {
		result, _, err := a.compute(ctx, a.cfg.PrepareRounds)
		if err != nil {
			return nil, StateInit, err
		}

		return result, StateReady, nil
	})
}

// run executes one lifecycle call: it claims the Computing state, runs fn under
// the operation timeout and either commits the result or rolls back to Init.
func (a *Allocator) run(
	ctx context.Context,
	phase string,
	fn func(ctx context.Context) (*allocation, State, error),
) error {
	if err := a.begin(ctx); err != nil {
		return err
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, a.cfg.OperationTimeout)
	defer cancel()

	a.logger.Info("allocation started", "phase", phase)

	result, to, err := fn(ctx)
	a.metrics.RecordComputeDuration(phase, time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordComputeAttempt(phase, false)
		a.transitionState(ctx, StateComputing, StateInit)
		a.logger.Error("allocation failed",
			"phase", phase,
			"error", err,
		)
		if hookErr := a.hooks.OnError(ctx, err); hookErr != nil {
			a.logger.Warn("error hook failed", "error", hookErr)
		}

		return err
	}

	a.mu.Lock()
	a.result = result
	a.mu.Unlock()

	a.transitionState(ctx, StateComputing, to)
	a.metrics.RecordComputeAttempt(phase, true)
	a.metrics.RecordClusterCount(string(a.category), len(result.agents))
	if result.cost >= 0 {
		a.metrics.RecordAssignmentCost(string(a.category), result.cost)
	}

	a.logger.Info("allocation ready",
		"phase", phase,
		"clusters", len(result.agents),
		"cost", result.cost,
		"duration", time.Since(start),
	)

	if hookErr := a.hooks.OnAllocated(ctx, a.category, maps.Clone(result.assignment)); hookErr != nil {
		a.logger.Warn("allocated hook failed", "error", hookErr)
	}

	return nil
}

// begin moves Init to Computing, rejecting overlapping and repeated calls.
func (a *Allocator) begin(ctx context.Context) error {
	if a.state.CompareAndSwap(int32(StateInit), int32(StateComputing)) {
		a.recordTransition(ctx, StateInit, StateComputing)

		return nil
	}

	switch State(a.state.Load()) {
	case StateComputing:
		return ErrComputeInProgress
	case StateReady, StateResumed:
		return ErrAlreadyComputed
	default:
		return fmt.Errorf("%w: unexpected state %s", ErrComputeInProgress, a.State())
	}
}

// transitionState stores to and reports the transition from from.
func (a *Allocator) transitionState(ctx context.Context, from, to State) {
	a.state.Store(int32(to))
	a.recordTransition(ctx, from, to)
}

func (a *Allocator) recordTransition(ctx context.Context, from, to State) {
	now := time.Now().UnixNano()
	entered := a.stateEntered.Swap(now)

	a.metrics.RecordStateTransition(from, to, time.Duration(now-entered).Seconds())
	a.logger.Debug("allocator state changed", "from", from, "to", to)

	// Hooks run synchronously so callers observe them before the lifecycle call returns.
	if err := a.hooks.OnStateChanged(ctx, from, to); err != nil {
		a.logger.Warn("state change hook failed", "from", from, "to", to, "error", err)
	}
}

// compute runs the clustering and assignment pipeline on the current world model.
// It returns the allocation and the ID-sorted sites it was computed from.
func (a *Allocator) compute(ctx context.Context, rounds int) (*allocation, []Point, error) {
	n, err := a.world.ClusterCount(ctx, a.category)
	if err != nil {
		return nil, nil, fmt.Errorf("cluster count for %s: %w", a.category, err)
	}

	sites, err := a.sortedSites(ctx)
	if err != nil {
		return nil, nil, err
	}

	rawAgents, err := a.world.Agents(ctx, a.category)
	if err != nil {
		return nil, nil, fmt.Errorf("agents of %s: %w", a.category, err)
	}
	agents, err := types.SortedPoints(rawAgents)
	if err != nil {
		return nil, nil, fmt.Errorf("agents of %s: %w", a.category, err)
	}
	if id, dup := types.FirstDuplicate(agents); dup {
		return nil, nil, fmt.Errorf("%w: agent %d", ErrDuplicateEntity, id)
	}

	if len(agents) != n {
		return nil, nil, fmt.Errorf("%w: %w: %d %s agents for %d clusters",
			ErrConfiguration, ErrAgentCountMismatch, len(agents), a.category, n)
	}

	clusterer, err := kmeans.New(sites, n, kmeans.WithRandomSource(a.randomSource(a.cfg.Seed)))
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := clusterer.Execute(rounds); err != nil {
		return nil, nil, err
	}

	costs, err := costMatrix(agents, clusterer)
	if err != nil {
		return nil, nil, err
	}
	perm, err := a.strategy.Assign(costs)
	if err != nil {
		return nil, nil, fmt.Errorf("assign %s agents: %w", a.category, err)
	}
	if err := checkPermutation(perm, n); err != nil {
		return nil, nil, err
	}

	matched := make([]EntityID, n)
	for i, j := range perm {
		matched[j] = agents[i].ID
	}

	return newAllocation(clusterer, matched, strategy.TotalCost(costs, perm)), sites, nil
}

func (a *Allocator) sortedSites(ctx context.Context) ([]Point, error) {
	raw, err := a.world.Sites(ctx, a.cfg.SiteKinds)
	if err != nil {
		return nil, fmt.Errorf("sites: %w", err)
	}

	sites, err := types.SortedPoints(raw)
	if err != nil {
		return nil, fmt.Errorf("sites: %w", err)
	}
	if id, dup := types.FirstDuplicate(sites); dup {
		return nil, fmt.Errorf("%w: site %d", ErrDuplicateEntity, id)
	}

	return sites, nil
}

func (a *Allocator) verifyFingerprint(ctx context.Context, snap precompute.Snapshot) {
	if !snap.HasFingerprint {
		a.logger.Debug("snapshot has no site fingerprint, skipping verification")

		return
	}

	sites, err := a.sortedSites(ctx)
	if err != nil {
		a.logger.Warn("cannot verify resumed allocation", "error", err)

		return
	}

	if current := precompute.Fingerprint(sites); current != snap.Fingerprint {
		a.metrics.RecordFingerprintMismatch(string(a.category))
		a.logger.Warn("resumed allocation was computed from a different map",
			"stored", snap.Fingerprint,
			"current", current,
		)
	}
}

// costMatrix returns cost[i][j], the truncated distance from agent i to the
// centroid of cluster j.
func costMatrix(agents []Point, clusterer *kmeans.Clusterer) ([][]int64, error) {
	n := clusterer.ClusterNumber()
	centroids := make([][]float64, n)
	for j := range n {
		x, y, err := clusterer.Centroid(j)
		if err != nil {
			return nil, err
		}
		centroids[j] = []float64{x, y}
	}

	costs := make([][]int64, len(agents))
	for i, agent := range agents {
		at := []float64{agent.X, agent.Y}
		costs[i] = make([]int64, n)
		for j := range n {
			costs[i][j] = int64(floats.Distance(at, centroids[j], 2))
		}
	}

	return costs, nil
}

// checkPermutation guards against strategies that return an invalid matching.
func checkPermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("assignment strategy returned %d entries for %d agents", len(perm), n)
	}

	seen := make([]bool, n)
	for i, j := range perm {
		if j < 0 || j >= n || seen[j] {
			return fmt.Errorf("assignment strategy returned invalid cluster %d for agent %d", j, i)
		}
		seen[j] = true
	}

	return nil
}

func newAllocation(clusterer *kmeans.Clusterer, agents []EntityID, cost int64) *allocation {
	result := &allocation{
		clusterer:  clusterer,
		siteIndex:  make(map[EntityID]int),
		agents:     agents,
		assignment: make(map[EntityID]int, len(agents)),
		cost:       cost,
	}
	for i, agent := range agents {
		result.assignment[agent] = i
	}
	for _, c := range clusterer.Clusters() {
		for _, id := range c.Members() {
			result.siteIndex[id] = c.Index()
		}
	}

	return result
}

// snapshot returns the committed result, or nil before computation.
func (a *Allocator) snapshot() *allocation {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.result
}

// State returns the current lifecycle state.
func (a *Allocator) State() State {
	return State(a.state.Load())
}

// Category returns the agent category of the allocator.
func (a *Allocator) Category() Category {
	return a.category
}

// ClusterCount returns the number of clusters, or 0 before computation.
func (a *Allocator) ClusterCount() int {
	r := a.snapshot()
	if r == nil {
		return 0
	}

	return r.clusterer.ClusterNumber()
}

// ClusterIndexOf returns the cluster assigned to an agent.
//
// Returns NoCluster for IDs outside the category's fleet and before computation.
func (a *Allocator) ClusterIndexOf(agent EntityID) int {
	r := a.snapshot()
	if r == nil {
		return NoCluster
	}
	if i, ok := r.assignment[agent]; ok {
		return i
	}

	return NoCluster
}

// SiteClusterOf returns the cluster a site belongs to, or NoCluster.
func (a *Allocator) SiteClusterOf(site EntityID) int {
	r := a.snapshot()
	if r == nil {
		return NoCluster
	}
	if i, ok := r.siteIndex[site]; ok {
		return i
	}

	return NoCluster
}

// ClusterMembers returns the site IDs of cluster i.
//
// Parameters:
//   - i: Cluster index in [0, ClusterCount())
//
// Returns:
//   - []EntityID: Copy of the member IDs
//   - error: ErrNotReady before computation, ErrIndexOutOfRange for bad indexes
func (a *Allocator) ClusterMembers(i int) ([]EntityID, error) {
	r := a.snapshot()
	if r == nil {
		return nil, ErrNotReady
	}

	return r.clusterer.Members(i)
}

// ClusterEntityIDs returns the site IDs of cluster i, or an empty slice when
// the allocator is not ready or i is out of range.
func (a *Allocator) ClusterEntityIDs(i int) []EntityID {
	members, err := a.ClusterMembers(i)
	if err != nil {
		return []EntityID{}
	}

	return members
}

// Centroid returns the centre of cluster i.
//
// Returns:
//   - x, y: Centroid coordinates
//   - error: ErrNotReady, ErrIndexOutOfRange, or ErrCentroidUnavailable after Resume
func (a *Allocator) Centroid(i int) (float64, float64, error) {
	r := a.snapshot()
	if r == nil {
		return 0, 0, ErrNotReady
	}

	return r.clusterer.Centroid(i)
}

// Assignment returns a copy of the agent to cluster map (empty before computation).
func (a *Allocator) Assignment() map[EntityID]int {
	r := a.snapshot()
	if r == nil {
		return map[EntityID]int{}
	}

	return maps.Clone(r.assignment)
}

// AgentFor returns the agent matched to cluster i.
func (a *Allocator) AgentFor(i int) (EntityID, bool) {
	r := a.snapshot()
	if r == nil || i < 0 || i >= len(r.agents) {
		return 0, false
	}

	return r.agents[i], true
}

// TotalCost returns the summed agent-to-centroid distance of the assignment.
//
// Returns:
//   - int64: Total cost
//   - bool: false before computation and after Resume, where centroids are unknown
func (a *Allocator) TotalCost() (int64, bool) {
	r := a.snapshot()
	if r == nil || r.cost < 0 {
		return 0, false
	}

	return r.cost, true
}
