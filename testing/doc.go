// Package testing provides test utilities for the zoner library.
//
// This package offers helpers for setting up test environments, particularly
// embedded NATS servers for persistence tests and synthetic world models for
// allocation tests. It follows Go's convention of providing testing utilities
// in a dedicated package (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamKV: Convenience wrapper for KV bucket creation
//   - NewGridWorld: Deterministic world model with sites on a grid
//   - RandomPoints: Seeded random point sets
//   - NewTestLogger: Logger that writes to t.Logf
//
// Example usage:
//
//	import (
//	    "testing"
//	    zonertest "github.com/arloliu/zoner/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    world := zonertest.NewGridWorld(t, 10, 10, types.FireBrigade, 4)
//	    // Build an allocator over world
//	}
package testing
