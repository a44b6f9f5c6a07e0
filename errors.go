package shiftboard

import "github.com/calendario/shiftboard/types"

// Sentinel errors, re-exported from the types subpackage so callers can
// match them without a second import.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrViewRequired is returned when the board view is nil.
	ErrViewRequired = types.ErrViewRequired

	// ErrOperationInFlight is returned when a gesture is rejected by the
	// single-flight guard.
	ErrOperationInFlight = types.ErrOperationInFlight

	// ErrNoPendingOperation is returned when confirm or cancel is called
	// with no gesture pending.
	ErrNoPendingOperation = types.ErrNoPendingOperation

	// ErrInvalidDayKey is returned for a malformed "YYYY-MM-DD" day key.
	ErrInvalidDayKey = types.ErrInvalidDayKey

	// ErrInvalidOperation is returned for an event operation that is
	// neither move nor copy.
	ErrInvalidOperation = types.ErrInvalidOperation

	// ErrCellNotBound is returned when binding rejects a day cell.
	ErrCellNotBound = types.ErrCellNotBound
)
