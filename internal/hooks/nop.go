package hooks

import (
	"context"

	"github.com/calendario/shiftboard/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default when no custom hooks are provided, eliminating nil
// checks throughout the codebase.
type NopHooks struct{}

// NewNop creates a new no-op hooks implementation.
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnAssignmentChanged: h.OnAssignmentChanged,
		OnViolationsChanged: h.OnViolationsChanged,
		OnOpStateChanged:    h.OnOpStateChanged,
		OnError:             h.OnError,
	}
}

// OnAssignmentChanged is a no-op implementation.
func (h *NopHooks) OnAssignmentChanged(_ context.Context, _ string, _ []string) error {
	return nil
}

// OnViolationsChanged is a no-op implementation.
func (h *NopHooks) OnViolationsChanged(_ context.Context, _, _ []types.Violation) error {
	return nil
}

// OnOpStateChanged is a no-op implementation.
func (h *NopHooks) OnOpStateChanged(_ context.Context, _, _ types.OpState) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
