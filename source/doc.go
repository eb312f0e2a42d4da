// Package source provides built-in world model implementations.
//
// World models supply the located sites and agents the allocator partitions.
// The package includes:
//
//   - Static: Fixed lists of sites, agents and per-category populations
//
// Custom world models can be implemented by satisfying the types.WorldModel interface.
package source
