package testutil

import (
	"testing"

	"github.com/arloliu/zoner/source"
	zonertest "github.com/arloliu/zoner/testing"
	"github.com/arloliu/zoner/types"
)

// AllocationView is the read side of an allocator used by the assertions.
type AllocationView interface {
	ClusterCount() int
	ClusterEntityIDs(i int) []types.EntityID
	Assignment() map[types.EntityID]int
}

// AssertAllocationConsistent verifies that the clusters partition exactly siteCount
// sites and that every one of agentCount agents owns a distinct cluster.
//
// Parameters:
//   - t: testing handle
//   - alloc: allocator (or any view of one) with a committed result
//   - siteCount: expected number of clustered sites
//   - agentCount: expected number of agents and clusters
func AssertAllocationConsistent(t testing.TB, alloc AllocationView, siteCount, agentCount int) {
	t.Helper()

	n := alloc.ClusterCount()
	if n != agentCount {
		t.Fatalf("cluster count (%d) does not equal agent count (%d)", n, agentCount)
	}

	seen := make(map[types.EntityID]int, siteCount)
	for i := range n {
		for _, id := range alloc.ClusterEntityIDs(i) {
			if prev, ok := seen[id]; ok {
				t.Fatalf("site %d in clusters %d and %d", id, prev, i)
			}
			seen[id] = i
		}
	}
	if len(seen) != siteCount {
		t.Fatalf("clustered site count (%d) does not equal expected total (%d)", len(seen), siteCount)
	}

	assignment := alloc.Assignment()
	if len(assignment) != agentCount {
		t.Fatalf("assigned agent count (%d) does not equal expected total (%d)", len(assignment), agentCount)
	}
	owners := make(map[int]types.EntityID, n)
	for agent, i := range assignment {
		if i < 0 || i >= n {
			t.Fatalf("agent %d assigned to out-of-range cluster %d", agent, i)
		}
		if prev, ok := owners[i]; ok {
			t.Fatalf("cluster %d assigned to agents %d and %d", i, prev, agent)
		}
		owners[i] = agent
	}
}

// ScatteredWorld builds a static world model of siteCount random road sites over a
// square map and registers agentCount agents of category at random positions.
//
// The same seed always yields the same world.
func ScatteredWorld(seed uint64, siteCount, agentCount int, category types.Category, size float64) *source.Static {
	points := zonertest.RandomPoints(seed, siteCount, size)
	sites := make([]source.Site, len(points))
	for i, p := range points {
		sites[i] = source.Site{Point: p, Kind: types.SiteRoad}
	}

	agents := zonertest.RandomPoints(seed+1, agentCount, size)
	for i := range agents {
		agents[i].ID += 100000
	}

	world := source.NewStatic(sites)
	world.SetAgents(category, agents)

	return world
}
