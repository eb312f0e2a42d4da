// Package types provides core type definitions and interfaces for the zoner library.
//
// This package contains shared types that are used across multiple packages in the
// zoner library. By keeping these types in a separate package, we avoid import cycles
// between the main zoner package and its algorithm and storage implementations.
//
// Key types:
//   - EntityID, Point, Locatable: Located map entities
//   - Category, SiteKind: Agent categories and candidate site kinds
//   - State: Allocator lifecycle state
//   - WorldModel, Store: External collaborators
//   - AssignmentStrategy, RandomSource: Pluggable algorithm dependencies
//   - Logger, MetricsCollector, Hooks: Ambient observability
package types
