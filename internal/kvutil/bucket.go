// Package kvutil opens the NATS JetStream KV buckets that hold precomputed allocations.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// DefaultBucket is the bucket used when BucketConfig.Bucket is empty.
const DefaultBucket = "zoner-allocations"

const (
	defaultReplicas   = 1
	defaultMaxRetries = 3
	baseBackoff       = 10 * time.Millisecond
)

// BucketConfig configures the KV bucket backing a JetStream allocation store.
type BucketConfig struct {
	// Bucket is the KV bucket name (default: "zoner-allocations").
	Bucket string `yaml:"bucket"`

	// TTL expires stored allocations; zero keeps them forever.
	TTL time.Duration `yaml:"ttl"`

	// Replicas is the bucket replication factor (default: 1).
	Replicas int `yaml:"replicas"`

	// MaxRetries bounds bucket open attempts (default: 3).
	MaxRetries int `yaml:"maxRetries"`
}

// WithDefaults returns a copy of cfg with empty fields filled in.
func (cfg BucketConfig) WithDefaults() BucketConfig {
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.Replicas <= 0 {
		cfg.Replicas = defaultReplicas
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	return cfg
}

// keyValueConfig keeps a single revision per key: an allocation is only ever
// read at its latest value.
func (cfg BucketConfig) keyValueConfig() jetstream.KeyValueConfig {
	return jetstream.KeyValueConfig{
		Bucket:      cfg.Bucket,
		Description: "zoner precomputed allocations",
		History:     1,
		TTL:         cfg.TTL,
		Replicas:    cfg.Replicas,
	}
}

// OpenBucket creates the allocation bucket, or opens it when it already exists.
//
// Several processes may precompute different categories into the same bucket at
// once, so losing the creation race is expected: the existing bucket is opened
// as is, keeping the TTL it was created with. Transient failures are retried
// with exponential backoff (10ms, 20ms, 40ms, ...).
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - cfg: Bucket configuration (empty fields take defaults)
//
// Returns:
//   - jetstream.KeyValue: The bucket
//   - error: Last error after all attempts, or the context error
func OpenBucket(ctx context.Context, js jetstream.JetStream, cfg BucketConfig) (jetstream.KeyValue, error) {
	cfg = cfg.WithDefaults()

	var lastErr error
	for attempt := range cfg.MaxRetries {
		kv, err := openOnce(ctx, js, cfg)
		if err == nil {
			return kv, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, fmt.Errorf("open bucket %s: %w", cfg.Bucket, ctx.Err())
		}
		if attempt == cfg.MaxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("open bucket %s: %w", cfg.Bucket, ctx.Err())
		case <-time.After(baseBackoff << attempt):
		}
	}

	return nil, fmt.Errorf("open bucket %s after %d attempts: %w", cfg.Bucket, cfg.MaxRetries, lastErr)
}

func openOnce(ctx context.Context, js jetstream.JetStream, cfg BucketConfig) (jetstream.KeyValue, error) {
	kv, err := js.CreateKeyValue(ctx, cfg.keyValueConfig())
	if errors.Is(err, jetstream.ErrBucketExists) {
		return js.KeyValue(ctx, cfg.Bucket)
	}

	return kv, err
}
