package testing

import (
	"math/rand/v2"
	"testing"

	"github.com/arloliu/zoner/source"
	"github.com/arloliu/zoner/types"
)

// gridSpacing is the distance between neighbouring grid sites.
const gridSpacing = 100.0

// NewGridWorld builds a static world model with rows × cols road sites.
//
// Sites are laid out on a square grid with IDs starting at 1, row-major.
// The category receives agents IDs starting at 10001, spread along the grid
// diagonal, and its population equals agents.
//
// Parameters:
//   - t: Testing context
//   - rows: Grid rows
//   - cols: Grid columns
//   - category: Category to populate
//   - agents: Number of agents in the category
//
// Returns:
//   - *source.Static: World model ready for an allocator
func NewGridWorld(t testing.TB, rows, cols int, category types.Category, agents int) *source.Static {
	t.Helper()

	sites := make([]source.Site, 0, rows*cols)
	for r := range rows {
		for c := range cols {
			sites = append(sites, source.Site{
				Point: types.Point{
					ID: types.EntityID(r*cols + c + 1),
					X:  float64(c) * gridSpacing,
					Y:  float64(r) * gridSpacing,
				},
				Kind: types.SiteRoad,
			})
		}
	}

	world := source.NewStatic(sites)
	world.SetAgents(category, DiagonalAgents(agents, float64(max(rows, cols))*gridSpacing))

	return world
}

// DiagonalAgents places n agents evenly along the diagonal of a square of the given size.
func DiagonalAgents(n int, size float64) []types.Point {
	agents := make([]types.Point, n)
	for i := range agents {
		pos := size * float64(i) / float64(max(n, 1))
		agents[i] = types.Point{ID: types.EntityID(10001 + i), X: pos, Y: pos}
	}

	return agents
}

// RandomPoints returns n points with IDs 1..n uniformly spread over a square.
//
// The same seed always yields the same points.
func RandomPoints(seed uint64, n int, size float64) []types.Point {
	r := rand.New(rand.NewPCG(seed, seed+1))
	points := make([]types.Point, n)
	for i := range points {
		points[i] = types.Point{
			ID: types.EntityID(i + 1),
			X:  r.Float64() * size,
			Y:  r.Float64() * size,
		}
	}

	return points
}
