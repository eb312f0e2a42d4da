package strategy

import (
	"math"

	"github.com/arloliu/zoner/types"
)

const inf = math.MaxInt64 / 4

// Hungarian solves the square assignment problem exactly.
//
// Tie policy: when several permutations reach the optimal total cost, Assign
// returns the lexicographically smallest one by row (agent) index. The solver
// first computes optimal dual potentials, then keeps only zero reduced-cost edges
// (every optimal permutation lives there) and fixes each row in turn to its
// smallest column that still leaves a perfect matching for the remaining rows.
type Hungarian struct{}

var _ types.AssignmentStrategy = (*Hungarian)(nil)

// NewHungarian creates a new Hungarian strategy.
//
// Returns:
//   - *Hungarian: Initialized strategy
//
// Example:
//
//	alloc, err := zoner.NewAllocator(&cfg, world, zoner.FireBrigade,
//	    zoner.WithStrategy(strategy.NewHungarian()))
func NewHungarian() *Hungarian {
	return &Hungarian{}
}

// Assign returns a minimum-cost permutation for costs.
//
// The algorithm:
//  1. Run the primal-dual Kuhn–Munkres method with integer potentials
//  2. Restrict to the equality subgraph of the final potentials
//  3. Rewrite the matching into the lexicographically smallest optimal one
//
// Parameters:
//   - costs: n × n matrix of non-negative costs
//
// Returns:
//   - []int: perm[i] is the column assigned to row i (empty for n == 0)
//   - error: ErrNotSquare or ErrNegativeCost
//
// Example:
//
//	perm, err := strategy.NewHungarian().Assign([][]int64{
//	    {4, 1, 3},
//	    {2, 0, 5},
//	    {3, 2, 2},
//	})
func (h *Hungarian) Assign(costs [][]int64) ([]int, error) {
	if err := validateCosts(costs); err != nil {
		return nil, err
	}
	if len(costs) == 0 {
		return []int{}, nil
	}

	u, v, rowMatch := solve(costs)
	m := &equalityMatcher{costs: costs, u: u, v: v, rowMatch: rowMatch}

	return m.lexMinimal(), nil
}

// TotalCost sums costs[i][perm[i]].
func TotalCost(costs [][]int64, perm []int) int64 {
	var total int64
	for i, j := range perm {
		total += costs[i][j]
	}

	return total
}

// solve runs the shortest augmenting path form of the Hungarian method.
// Index 0 of u, v and p is a virtual row/column; real indexes are 1-based.
// On return c[i][j] >= u[i]+v[j] for every pair and matched pairs are tight.
func solve(c [][]int64) ([]int64, []int64, []int) {
	n := len(c)
	u := make([]int64, n+1)
	v := make([]int64, n+1)
	p := make([]int, n+1)   // p[j] = row matched to column j
	way := make([]int, n+1) // way[j] = previous column on the augmenting path
	minv := make([]int64, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := int64(inf)
			j1 := 0

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowMatch := make([]int, n)
	for j := 1; j <= n; j++ {
		rowMatch[p[j]-1] = j - 1
	}

	return u[1:], v[1:], rowMatch
}

// equalityMatcher walks perfect matchings of the zero reduced-cost subgraph.
type equalityMatcher struct {
	costs    [][]int64
	u, v     []int64
	rowMatch []int
	colMatch []int
	fixedCol []bool
	visited  []bool
	target   int
}

func (m *equalityMatcher) tight(i, j int) bool {
	return m.costs[i][j]-m.u[i]-m.v[j] == 0
}

// lexMinimal fixes rows in index order, giving each the smallest tight column
// for which the unfixed rows can still be perfectly matched.
func (m *equalityMatcher) lexMinimal() []int {
	n := len(m.costs)
	m.colMatch = make([]int, n)
	for i, j := range m.rowMatch {
		m.colMatch[j] = i
	}
	m.fixedCol = make([]bool, n)
	m.visited = make([]bool, n)

	for i := range n {
		// Columns visited by a failed search cannot reach row i's column, so the
		// marks carry over to the next candidate until the matching changes.
		clear(m.visited)
		m.target = m.rowMatch[i]
		for j := range n {
			if m.fixedCol[j] || !m.tight(i, j) {
				continue
			}
			if m.rowMatch[i] == j {
				break
			}
			if m.visited[j] {
				continue
			}
			// Column j is taken by row r. Row i may take it if r can reach the
			// column i frees through an alternating path.
			m.visited[j] = true
			if m.reroute(m.colMatch[j]) {
				m.rowMatch[i] = j
				m.colMatch[j] = i

				break
			}
		}
		m.fixedCol[m.rowMatch[i]] = true
	}

	return m.rowMatch
}

func (m *equalityMatcher) reroute(r int) bool {
	for c := range m.costs {
		if m.visited[c] || m.fixedCol[c] || !m.tight(r, c) {
			continue
		}
		m.visited[c] = true
		if c == m.target || m.reroute(m.colMatch[c]) {
			m.rowMatch[r] = c
			m.colMatch[c] = r

			return true
		}
	}

	return false
}
