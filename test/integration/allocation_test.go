//go:build integration
// +build integration

package integration_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/zoner"
	"github.com/arloliu/zoner/store"
	"github.com/arloliu/zoner/test/testutil"
	zonertest "github.com/arloliu/zoner/testing"
	"github.com/arloliu/zoner/types"
)

// TestPrecomputeResume_ManyAgents verifies that every agent process resuming a
// precomputed allocation from JetStream KV observes the same zones.
func TestPrecomputeResume_ManyAgents(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	const (
		numSites   = 2000
		numAgents  = 25
		numReaders = 10
	)

	ctx, cancel := context.WithTimeout(t.Context(), 60*time.Second)
	defer cancel()

	// Start embedded NATS server
	_, nc := zonertest.StartEmbeddedNATS(t)
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	cfg := zoner.DefaultConfig()
	st, err := cfg.Store.NewJetStream(ctx, js)
	require.NoError(t, err)

	world := testutil.ScatteredWorld(11, numSites, numAgents, types.FireBrigade, 10000)

	writer, err := zoner.NewAllocator(&cfg, world, types.FireBrigade, zoner.WithLogger(zonertest.NewTestLogger(t)))
	require.NoError(t, err)
	require.NoError(t, writer.Precompute(ctx, st))
	testutil.AssertAllocationConsistent(t, writer, numSites, numAgents)

	var wg sync.WaitGroup
	readers := make([]*zoner.Allocator, numReaders)
	errs := make([]error, numReaders)
	for i := range numReaders {
		wg.Add(1)
		go func() {
			defer wg.Done()

			alloc, err := zoner.NewAllocator(&cfg, world, types.FireBrigade, zoner.WithResumeVerification())
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = alloc.Resume(ctx, st)
			readers[i] = alloc
		}()
	}
	wg.Wait()

	for i, reader := range readers {
		require.NoError(t, errs[i])
		require.Equal(t, zoner.StateResumed, reader.State())
		require.Equal(t, writer.Assignment(), reader.Assignment())
		testutil.AssertAllocationConsistent(t, reader, numSites, numAgents)
	}
}

// TestPrecompute_OverwritesSmallerAllocation verifies that a second precompute with
// fewer clusters leaves no stale cluster keys behind.
func TestPrecompute_OverwritesSmallerAllocation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(t.Context(), 30*time.Second)
	defer cancel()

	_, nc := zonertest.StartEmbeddedNATS(t)
	kv := zonertest.CreateJetStreamKV(t, nc, "zones")
	st := store.NewJetStreamFromKV(kv)

	cfg := zoner.TestConfig()
	large := testutil.ScatteredWorld(5, 200, 6, types.PoliceForce, 1000)
	first, err := zoner.NewAllocator(&cfg, large, types.PoliceForce)
	require.NoError(t, err)
	require.NoError(t, first.Precompute(ctx, st))

	small := testutil.ScatteredWorld(5, 200, 2, types.PoliceForce, 1000)
	second, err := zoner.NewAllocator(&cfg, small, types.PoliceForce)
	require.NoError(t, err)
	require.NoError(t, second.Precompute(ctx, st))

	_, err = kv.Get(ctx, "zoner.allocator.m.police_force.5")
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)

	reader, err := zoner.NewAllocator(&cfg, small, types.PoliceForce)
	require.NoError(t, err)
	require.NoError(t, reader.Resume(ctx, st))
	testutil.AssertAllocationConsistent(t, reader, 200, 2)
}

// TestPrepare_LargeMap exercises local computation on a city-sized map.
func TestPrepare_LargeMap(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	t.Parallel()

	const (
		numSites  = 10000
		numAgents = 40
	)

	cfg := zoner.DefaultConfig()
	world := testutil.ScatteredWorld(99, numSites, numAgents, types.AmbulanceTeam, 50000)
	alloc, err := zoner.NewAllocator(&cfg, world, types.AmbulanceTeam)
	require.NoError(t, err)

	require.NoError(t, alloc.Prepare(t.Context()))
	testutil.AssertAllocationConsistent(t, alloc, numSites, numAgents)

	cost, ok := alloc.TotalCost()
	require.True(t, ok)
	require.Positive(t, cost)
}
