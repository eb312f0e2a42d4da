package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/zoner/types"
)

// Memory implements types.Store over a concurrent in-process map.
type Memory struct {
	entries *xsync.Map[string, []byte]
}

var _ types.Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
//
// Example:
//
//	st := store.NewMemory()
//	err := alloc.Precompute(ctx, st)
func NewMemory() *Memory {
	return &Memory{entries: xsync.NewMap[string, []byte]()}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := m.entries.Load(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrKeyNotFound, key)
	}

	return slices.Clone(value), nil
}

// Put stores a copy of value under key.
func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.entries.Store(key, slices.Clone(value))

	return nil
}

// Delete removes key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.entries.Delete(key)

	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	return m.entries.Size()
}

// Keys returns every stored key in ascending order.
func (m *Memory) Keys() []string {
	keys := make([]string, 0, m.entries.Size())
	m.entries.Range(func(key string, _ []byte) bool {
		keys = append(keys, key)
		return true
	})
	slices.Sort(keys)

	return keys
}
