package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/zoner/internal/kvutil"
	"github.com/arloliu/zoner/internal/natsutil"
	"github.com/arloliu/zoner/types"
)

// DefaultBucket is the KV bucket used when JetStreamConfig.Bucket is empty.
const DefaultBucket = kvutil.DefaultBucket

// JetStreamConfig configures the KV bucket backing a JetStream store.
type JetStreamConfig = kvutil.BucketConfig

// JetStream implements types.Store on a NATS JetStream KeyValue bucket.
type JetStream struct {
	kv     jetstream.KeyValue
	bucket string
}

var _ types.Store = (*JetStream)(nil)

// NewJetStream creates or opens the configured bucket and wraps it as a store.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - js: JetStream context
//   - cfg: Bucket configuration
//
// Returns:
//   - *JetStream: Store backed by the bucket
//   - error: Bucket creation error
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	st, err := store.NewJetStream(ctx, js, store.JetStreamConfig{Bucket: "zoner-allocations"})
//	if err != nil { /* handle */ }
//	err = alloc.Precompute(ctx, st)
func NewJetStream(ctx context.Context, js jetstream.JetStream, cfg JetStreamConfig) (*JetStream, error) {
	kv, err := kvutil.OpenBucket(ctx, js, cfg)
	if err != nil {
		return nil, natsutil.Classify(err)
	}

	return NewJetStreamFromKV(kv), nil
}

// NewJetStreamFromKV wraps an existing KV bucket.
func NewJetStreamFromKV(kv jetstream.KeyValue) *JetStream {
	return &JetStream{kv: kv, bucket: kv.Bucket()}
}

// Get returns the latest value stored under key.
func (s *JetStream) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", s.bucket, key, natsutil.Classify(err))
	}

	return entry.Value(), nil
}

// Put stores value under key.
func (s *JetStream) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.kv.Put(ctx, key, value); err != nil {
		return fmt.Errorf("put %s/%s: %w", s.bucket, key, natsutil.Classify(err))
	}

	return nil
}

// Delete removes key. A missing key is not an error.
func (s *JetStream) Delete(ctx context.Context, key string) error {
	err := s.kv.Delete(ctx, key)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("delete %s/%s: %w", s.bucket, key, natsutil.Classify(err))
	}

	return nil
}
