// Package eventdrop implements the calendar-board event move/copy gesture: a
// drop (or the button-driven flow) captures an event and target date, the
// user confirms move or copy, and the controller commits the operation to
// the server and applies the result to the board.
//
// Exactly one gesture may be in flight at a time. The single-flight guard
// rejects new drops from the moment a gesture is captured until its commit
// finalizes, which is what keeps a double-drop from committing twice. The
// commit itself is never retried: a drop mutates server state, and resending
// a request whose outcome is unknown could apply it twice.
package eventdrop
