// Package kmeans implements k-means++ clustering of planar points.
//
// The package provides the three stages used by the allocator:
//
//   - Seed: D²-weighted k-means++ seeding from a caller-supplied random source
//   - Iterate: Lloyd refinement for an exact number of rounds (no convergence test)
//   - Clusterer: Seeding and refinement bound to one point set, plus the
//     membership-only restore path used when resuming persisted state
//
// Every cluster holds the IDs of its members in point order. After any number of
// refinement rounds the clusters partition the input points.
package kmeans
