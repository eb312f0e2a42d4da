// Package store provides built-in persistence backends for precomputed allocations.
//
// Every backend satisfies types.Store and returns an error wrapping
// types.ErrKeyNotFound for absent keys. The package includes:
//
//   - Memory: Process-local map, useful for tests and single-process simulations
//   - JetStream: NATS JetStream KeyValue bucket
//   - DynamoDB: Single-table DynamoDB storage
//
// Custom backends can be implemented by satisfying the types.Store interface.
package store
