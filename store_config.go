package zoner

import (
	"context"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/zoner/store"
)

// NewJetStream opens the configured JetStream KV bucket as a Store.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - js: JetStream context
//
// Returns:
//   - *store.JetStream: Store backed by StoreConfig.Bucket with StoreConfig.TTL
//   - error: Bucket creation error
//
// Example:
//
//	st, err := cfg.Store.NewJetStream(ctx, js)
//	if err != nil {
//	    return err
//	}
//	err = alloc.Precompute(ctx, st)
func (c StoreConfig) NewJetStream(ctx context.Context, js jetstream.JetStream) (*store.JetStream, error) {
	return store.NewJetStream(ctx, js, store.JetStreamConfig{Bucket: c.Bucket, TTL: c.TTL})
}

// NewDynamoDB returns a Store on the configured table with StoreConfig.TTL.
//
// Parameters:
//   - client: DynamoDB client (usually *dynamodb.Client)
//
// Returns:
//   - *store.DynamoDB: Store backed by StoreConfig.Table
func (c StoreConfig) NewDynamoDB(client store.DynamoDBAPI) *store.DynamoDB {
	return store.NewDynamoDB(client, c.Table, c.TTL)
}
