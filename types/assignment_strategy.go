package types

// AssignmentStrategy solves the square assignment problem between agents and clusters.
//
// The allocator builds costs[i][j] as the truncated distance between agent i and
// the centroid of cluster j, then calls Assign once per computation.
//
// Strategy implementations should:
//   - Be deterministic (same input → same output)
//   - Return a true permutation of [0, n)
//   - Be stateless (no side effects)
type AssignmentStrategy interface {
	// Assign returns perm where perm[i] is the column assigned to row i.
	//
	// Parameters:
	//   - costs: Square, non-negative cost matrix
	//
	// Returns:
	//   - []int: Row to column permutation (empty for an empty matrix)
	//   - error: Validation error for malformed matrices
	Assign(costs [][]int64) ([]int, error)
}
