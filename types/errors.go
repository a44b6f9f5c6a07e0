package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the shiftboard library.
//
// These provide type-safe error checking via errors.Is() and errors.As().
// Components use the sentinels for known conditions and wrap external errors
// with context using fmt.Errorf("...: %w", err).

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrViewRequired is returned when a board view is nil.
	ErrViewRequired = errors.New("board view is required")

	// ErrOperationInFlight is returned when a gesture is rejected by the
	// single-flight guard because a move/copy is still outstanding.
	ErrOperationInFlight = errors.New("operation already in progress")

	// ErrNoPendingOperation is returned when confirm or cancel is called
	// with no captured gesture to act on.
	ErrNoPendingOperation = errors.New("no pending operation")

	// ErrInvalidDayKey is returned for a malformed "YYYY-MM-DD" day key.
	ErrInvalidDayKey = errors.New("invalid day key")

	// ErrInvalidOperation is returned for an event operation that is
	// neither "move" nor "copy".
	ErrInvalidOperation = errors.New("invalid event operation")

	// ErrCellNotBound is returned when an operation names a day the board
	// has no bound cell for.
	ErrCellNotBound = errors.New("day cell not bound")
)

// TransportError is a network-level failure reaching a rule-engine or
// calendar endpoint: connection refused, DNS failure, timeout. The request
// may or may not have reached the server.
type TransportError struct {
	Op  string // operation name, e.g. "recalculate"
	URL string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure for %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a request that reached the server but came back unusable:
// a non-2xx status, a success:false payload, or a success payload missing a
// required field (e.g. new_event_id on a copy).
type ProtocolError struct {
	Op         string
	StatusCode int    // 0 when the failure is payload-level, not HTTP-level
	Reason     string // server-provided error string or a local description
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: protocol error (HTTP %d): %s", e.Op, e.StatusCode, e.Reason)
	}

	return fmt.Sprintf("%s: protocol error: %s", e.Op, e.Reason)
}

// UserInputError is a gesture rejected before any state mutation because the
// user's input is incomplete (e.g. no date chosen in the date-selection
// flow). Always surfaced as a blocking alert at the gesture site.
type UserInputError struct {
	Reason string
}

// Error implements the error interface.
func (e *UserInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// IsFailSoft reports whether err belongs to the advisory (fail-soft) class:
// transport and protocol failures from the recalc/check endpoints are logged
// and leave prior displayed state intact rather than interrupting the user.
func IsFailSoft(err error) bool {
	var te *TransportError
	var pe *ProtocolError

	return errors.As(err, &te) || errors.As(err, &pe)
}
