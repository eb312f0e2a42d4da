// Package hooks provides default lifecycle hook implementations.
package hooks

import (
	"context"

	"github.com/arloliu/zoner/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, types.Category, map[types.EntityID]int) error = (*NopHooks)(nil).OnAllocated
	_ func(context.Context, types.State, types.State) error               = (*NopHooks)(nil).OnStateChanged
	_ func(context.Context, error) error                                  = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnAllocated:    h.OnAllocated,
		OnStateChanged: h.OnStateChanged,
		OnError:        h.OnError,
	}
}

// Fill returns h with every nil callback replaced by its no-op counterpart.
func Fill(h *types.Hooks) types.Hooks {
	nop := NewNop()
	if h == nil {
		return nop
	}

	filled := *h
	if filled.OnAllocated == nil {
		filled.OnAllocated = nop.OnAllocated
	}
	if filled.OnStateChanged == nil {
		filled.OnStateChanged = nop.OnStateChanged
	}
	if filled.OnError == nil {
		filled.OnError = nop.OnError
	}

	return filled
}

// OnAllocated is a no-op implementation.
func (h *NopHooks) OnAllocated(ctx context.Context, category types.Category, assignment map[types.EntityID]int) error {
	return nil
}

// OnStateChanged is a no-op implementation.
func (h *NopHooks) OnStateChanged(ctx context.Context, from, to types.State) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(ctx context.Context, err error) error {
	return nil
}
