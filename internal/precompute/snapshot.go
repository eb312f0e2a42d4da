package precompute

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/zoner/types"
)

// Snapshot is the persisted form of a computed allocation.
type Snapshot struct {
	// Members holds the member IDs of each cluster, indexed by cluster.
	Members [][]types.EntityID

	// Agents holds the agent matched to each cluster, indexed by cluster.
	Agents []types.EntityID

	// Fingerprint identifies the site set the snapshot was computed from.
	Fingerprint uint64

	// HasFingerprint is false for snapshots written without a fingerprint.
	HasFingerprint bool
}

// N returns the cluster count.
func (s Snapshot) N() int {
	return len(s.Members)
}

// Validate checks the structural invariants of a snapshot: at least one
// cluster, one agent per cluster, no agent matched twice and no site in two
// clusters.
func (s Snapshot) Validate() error {
	n := len(s.Members)
	if n == 0 {
		return fmt.Errorf("%w: cluster count must be positive", types.ErrCorruptState)
	}
	if len(s.Agents) != n {
		return fmt.Errorf("%w: %d agents for %d clusters", types.ErrCorruptState, len(s.Agents), n)
	}

	agents := make(map[types.EntityID]struct{}, n)
	for i, a := range s.Agents {
		if _, dup := agents[a]; dup {
			return fmt.Errorf("%w: agent %d matched to more than one cluster (cluster %d)", types.ErrCorruptState, a, i)
		}
		agents[a] = struct{}{}
	}

	seen := make(map[types.EntityID]int)
	for i, members := range s.Members {
		for _, id := range members {
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%w: site %d in clusters %d and %d", types.ErrCorruptState, id, prev, i)
			}
			seen[id] = i
		}
	}

	return nil
}

// Save writes snap under keys.
//
// The cluster count is removed before any cluster key is overwritten and
// written back last, so an interrupted save leaves no count behind and Load
// fails instead of mixing clusters of two snapshots. Keys of clusters beyond
// the new count that a previous, larger snapshot left behind are deleted.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - st: Destination store
//   - keys: Key builder of the category
//   - snap: Snapshot to write
//
// Returns:
//   - error: Validation or store error
func Save(ctx context.Context, st types.Store, keys Keys, snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	// An unreadable previous count only skips the stale key cleanup.
	previous, _ := loadCount(ctx, st, keys)

	if err := deleteKey(ctx, st, keys.Count()); err != nil {
		return err
	}

	for i := range snap.N() {
		members := snap.Members[i]
		if members == nil {
			members = []types.EntityID{}
		}
		if err := putJSON(ctx, st, keys.Members(i), members); err != nil {
			return err
		}
		if err := putJSON(ctx, st, keys.Agent(i), snap.Agents[i]); err != nil {
			return err
		}
	}

	if snap.HasFingerprint {
		if err := putJSON(ctx, st, keys.Fingerprint(), snap.Fingerprint); err != nil {
			return err
		}
	} else if err := deleteKey(ctx, st, keys.Fingerprint()); err != nil {
		return err
	}

	if err := putJSON(ctx, st, keys.Count(), snap.N()); err != nil {
		return err
	}

	for i := snap.N(); i < previous; i++ {
		if err := deleteKey(ctx, st, keys.Members(i)); err != nil {
			return fmt.Errorf("stale cluster %d: %w", i, err)
		}
		if err := deleteKey(ctx, st, keys.Agent(i)); err != nil {
			return fmt.Errorf("stale cluster %d: %w", i, err)
		}
	}

	return nil
}

// Load reads the snapshot stored under keys.
//
// Returns:
//   - Snapshot: The validated snapshot
//   - error: ErrKeyNotFound (wrapped) if a required key is missing,
//     ErrCorruptState if a value cannot be decoded or fails validation
func Load(ctx context.Context, st types.Store, keys Keys) (Snapshot, error) {
	n, err := loadCount(ctx, st, keys)
	if err != nil {
		return Snapshot{}, err
	}
	if n <= 0 {
		return Snapshot{}, fmt.Errorf("%w: cluster count %d", types.ErrCorruptState, n)
	}

	snap := Snapshot{
		Members: make([][]types.EntityID, n),
		Agents:  make([]types.EntityID, n),
	}
	for i := range n {
		if err := getJSON(ctx, st, keys.Members(i), &snap.Members[i]); err != nil {
			return Snapshot{}, err
		}
		if err := getJSON(ctx, st, keys.Agent(i), &snap.Agents[i]); err != nil {
			return Snapshot{}, err
		}
	}

	switch err := getJSON(ctx, st, keys.Fingerprint(), &snap.Fingerprint); {
	case err == nil:
		snap.HasFingerprint = true
	case types.IsKeyNotFoundError(err):
	default:
		return Snapshot{}, err
	}

	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

// Fingerprint hashes the IDs and coordinates of ID-sorted points.
func Fingerprint(points []types.Point) uint64 {
	buf := make([]byte, 0, len(points)*24)
	for _, p := range points {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(p.ID)) //nolint:gosec // bit pattern only
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Y))
	}

	return xxh3.Hash(buf)
}

func loadCount(ctx context.Context, st types.Store, keys Keys) (int, error) {
	var n int
	if err := getJSON(ctx, st, keys.Count(), &n); err != nil {
		return 0, err
	}

	return n, nil
}

// deleteKey removes key; an already absent key is not an error.
func deleteKey(ctx context.Context, st types.Store, key string) error {
	if err := st.Delete(ctx, key); err != nil && !types.IsKeyNotFoundError(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

func putJSON(ctx context.Context, st types.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := st.Put(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}

func getJSON(ctx context.Context, st types.Store, key string, v any) error {
	data, err := st.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", types.ErrCorruptState, key, err)
	}

	return nil
}
