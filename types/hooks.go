package types

import "context"

// Hooks defines callbacks for allocator lifecycle events.
//
// All hooks are optional. They are called synchronously on the goroutine running
// the lifecycle call, after the result has been committed. Hook errors are logged
// and never fail the call.
//
// Example:
//
//	hooks := &zoner.Hooks{
//	    OnAllocated: func(ctx context.Context, category zoner.Category, assignment map[zoner.EntityID]int) error {
//	        log.Printf("%s: %d agents allocated", category, len(assignment))
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnAllocated is called once an assignment is available (computed or resumed).
	// The map is a copy owned by the callee.
	OnAllocated func(ctx context.Context, category Category, assignment map[EntityID]int) error

	// OnStateChanged is called when the allocator state transitions.
	OnStateChanged func(ctx context.Context, from, to State) error

	// OnError is called when a lifecycle call fails.
	OnError func(ctx context.Context, err error) error
}
