package types

import "context"

// Hooks defines callbacks for board lifecycle events.
//
// All hooks are optional and called asynchronously in background goroutines
// so a slow consumer cannot stall a user gesture. Hook errors are logged but
// never fail the operation that triggered them.
//
// Best practices for hook implementations:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Make hooks idempotent (may run for coalesced cycles)
type Hooks struct {
	// OnAssignmentChanged is called after the store mutates a day's
	// employee list. employees is the day's list after the mutation.
	OnAssignmentChanged func(ctx context.Context, date string, employees []string) error

	// OnViolationsChanged is called when a check cycle applies a violation
	// set different from the previously applied one.
	OnViolationsChanged func(ctx context.Context, previous, current []Violation) error

	// OnOpStateChanged is called when the event move/copy controller
	// transitions state.
	OnOpStateChanged func(ctx context.Context, from, to OpState) error

	// OnError is called for recoverable errors handled fail-soft.
	OnError func(ctx context.Context, err error) error
}
