// Package zoner provides a Go library that divides a map into zones and gives every
// agent of a category exactly one zone.
//
// An Allocator clusters the map sites (roads, buildings, refuges, ...) of a world model
// into as many clusters as the category has agents, using k-means++ seeding followed by
// Lloyd refinement. It then matches agents to clusters one-to-one with the Hungarian
// algorithm, minimizing the summed distance from each agent to its cluster centroid.
//
// # Quick Start
//
// Compute an allocation locally:
//
//	import (
//	    "github.com/arloliu/zoner"
//	    "github.com/arloliu/zoner/source"
//	)
//
//	cfg := zoner.DefaultConfig()
//	world := source.NewStatic(sites)
//	world.SetAgents(zoner.FireBrigade, brigades)
//
//	alloc, err := zoner.NewAllocator(&cfg, world, zoner.FireBrigade)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := alloc.Prepare(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	zone := alloc.ClusterIndexOf(myID)
//	targets := alloc.ClusterEntityIDs(zone)
//
// # Lifecycle
//
// Every Allocator runs exactly one lifecycle call:
//
//	Precompute: INIT → COMPUTING → READY    (compute, then persist to a Store)
//	Resume:     INIT → COMPUTING → RESUMED  (restore membership from a Store)
//	Prepare:    INIT → COMPUTING → READY    (compute locally, nothing persisted)
//
// A failed call returns to INIT without a partial result and may be retried.
// Resumed clusters carry membership and assignment only; their centroids are unknown.
//
// # Persistence
//
// Precompute writes one value per cluster under a configurable key prefix:
//
//	<prefix>.m.<category>.<i>   member site IDs of cluster i
//	<prefix>.a.<category>.<i>   agent matched to cluster i
//	<prefix>.h.<category>       fingerprint of the clustered sites
//	<prefix>.n.<category>       cluster count, written last
//
// The store package provides in-memory, NATS JetStream KV and DynamoDB backends.
//
// # Error Policy
//
// Fatal configuration errors, such as an agent count that differs from the category's
// cluster count, wrap ErrConfiguration; check them with IsConfigurationError.
// Strict accessors (ClusterMembers, Centroid) return ErrNotReady or ErrIndexOutOfRange.
// Collaborator-facing accessors (ClusterIndexOf, ClusterEntityIDs) never fail and return
// NoCluster or an empty slice instead.
//
// # Advanced Usage
//
// Precompute once, resume everywhere else:
//
//	st, err := cfg.Store.NewJetStream(ctx, js)
//	if err != nil { /* handle */ }
//
//	alloc, _ := zoner.NewAllocator(&cfg, world, zoner.PoliceForce,
//	    zoner.WithLogger(logger),
//	    zoner.WithMetrics(zoner.NewPrometheusMetrics(prometheus.DefaultRegisterer)),
//	    zoner.WithResumeVerification(),
//	)
//	err = alloc.Resume(ctx, st)
//
// See the examples/ directory for complete working examples.
package zoner
