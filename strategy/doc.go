// Package strategy provides built-in assignment strategy implementations.
//
// Assignment strategies pair agents with clusters given a square cost matrix.
// The package includes:
//
//   - Hungarian: Exact minimum-cost perfect matching (Kuhn–Munkres, O(n³)) with a
//     deterministic tie policy: the lexicographically smallest optimal permutation
//
// Custom strategies can be implemented by satisfying the types.AssignmentStrategy interface.
package strategy
