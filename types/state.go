package types

// DragState is the per-gesture state of the shift-board drag controller.
//
// A gesture follows the progression:
//
//	DragIdle → DragActive → DragIdle
//
// A drop and a cancellation both land back in DragIdle; the distinction is
// whether the store was mutated on the way.
type DragState int

const (
	// DragIdle means no token is being carried.
	DragIdle DragState = iota

	// DragActive means a token (one or more employee names plus an origin
	// cell) has been picked up and not yet dropped or discarded.
	DragActive
)

// String returns the string representation of the drag state.
func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "Idle"
	case DragActive:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// OpState is the state of the calendar-board event move/copy controller.
//
// States follow a defined progression per gesture:
//
//	OpIdle → OpPendingConfirmation → OpCommitting → OpIdle
//
// An explicit cancel short-circuits from OpPendingConfirmation back to
// OpIdle without a network call. While the controller is anywhere other than
// OpIdle, new drag/drop gestures are rejected (the single-flight guard).
type OpState int

const (
	// OpIdle means no move/copy gesture is outstanding.
	OpIdle OpState = iota

	// OpPendingConfirmation means a drop (or button flow) captured an event
	// and target date and is waiting for the user to confirm move or copy.
	OpPendingConfirmation

	// OpCommitting means the confirmation request is in flight.
	OpCommitting
)

// String returns the string representation of the operation state.
func (s OpState) String() string {
	switch s {
	case OpIdle:
		return "Idle"
	case OpPendingConfirmation:
		return "PendingConfirmation"
	case OpCommitting:
		return "Committing"
	default:
		return "Unknown"
	}
}
