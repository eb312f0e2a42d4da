package source

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/zoner/types"
)

// Site is a located map entity tagged with its kind.
type Site struct {
	types.Point `yaml:",inline"`

	// Kind selects the site for Config.SiteKinds filtering.
	Kind types.SiteKind `json:"kind" yaml:"kind"`
}

// Static implements a world model over fixed entity lists.
type Static struct {
	mu     sync.RWMutex
	sites  []Site
	agents map[types.Category][]types.Point
	counts map[types.Category]int
}

var _ types.WorldModel = (*Static)(nil)

// NewStatic creates a new static world model.
//
// The model holds fixed lists that only change through the Set methods.
// Useful for testing and for scenarios where the map is loaded once at startup.
//
// Parameters:
//   - sites: Candidate cluster sites with their kinds
//
// Returns:
//   - *Static: Initialized static world model
//
// Example:
//
//	world := source.NewStatic([]source.Site{
//	    {Point: types.Point{ID: 1, X: 0, Y: 0}, Kind: types.SiteRoad},
//	    {Point: types.Point{ID: 2, X: 100, Y: 0}, Kind: types.SiteBuilding},
//	})
//	world.SetAgents(types.FireBrigade, brigades)
//	alloc, err := zoner.NewAllocator(&cfg, world, types.FireBrigade)
//	if err != nil { /* handle */ }
func NewStatic(sites []Site) *Static {
	return &Static{
		sites:  slices.Clone(sites),
		agents: make(map[types.Category][]types.Point),
		counts: make(map[types.Category]int),
	}
}

// Sites returns the sites whose kind is in kinds.
//
// Returns:
//   - []types.Locatable: Matching sites in insertion order
//   - error: ctx error if the context is already done
func (s *Static) Sites(ctx context.Context, kinds []types.SiteKind) ([]types.Locatable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.Locatable, 0, len(s.sites))
	for _, site := range s.sites {
		if slices.Contains(kinds, site.Kind) {
			result = append(result, site.Point)
		}
	}

	return result, nil
}

// Agents returns the agents of the category.
func (s *Static) Agents(ctx context.Context, category types.Category) ([]types.Locatable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	agents := s.agents[category]
	result := make([]types.Locatable, len(agents))
	for i, a := range agents {
		result[i] = a
	}

	return result, nil
}

// ClusterCount returns the scenario population of the category.
//
// The population defaults to the number of registered agents unless it was
// overridden with SetClusterCount.
func (s *Static) ClusterCount(ctx context.Context, category types.Category) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n, ok := s.counts[category]; ok {
		return n, nil
	}

	return len(s.agents[category]), nil
}

// SetSites replaces the site list.
func (s *Static) SetSites(sites []Site) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sites = slices.Clone(sites)
}

// SetAgents replaces the agents of a category.
//
// Parameters:
//   - category: Agent category
//   - agents: New agent list
func (s *Static) SetAgents(category types.Category, agents []types.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agents[category] = slices.Clone(agents)
}

// SetClusterCount overrides the scenario population of a category.
//
// This allows the static model to simulate scenarios where the population
// differs from the registered agents, which is useful for testing the
// agent-count mismatch path.
//
// Parameters:
//   - category: Agent category
//   - n: Population to report
//
// Returns:
//   - error: Non-nil if n is negative
func (s *Static) SetClusterCount(category types.Category, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative population %d for %s", types.ErrInvalidClusterCount, n, category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[category] = n

	return nil
}
