// Package dragdrop implements the shift-board drag gesture: picking up one
// or more employee tokens from a day cell (or the unassigned pool), dropping
// them on a target day, and the click-to-remove shortcut.
//
// The controller owns no assignment state of its own. Every drop is applied
// through the store's Move, which already guarantees the mirror invariant
// and makes re-dropping onto the origin a no-op; the controller's job is the
// gesture state machine, the multi-select token set, and triggering exactly
// one reconciliation per mutating drop.
package dragdrop
