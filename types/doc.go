// Package types contains the core types and interfaces shared across the
// shiftboard library.
//
// This package exists so that internal packages (store, remote, render,
// eventdrop, ...) can share definitions without importing the root shiftboard
// package, which would create an import cycle. The root package re-exports
// everything here via type aliases, so library consumers normally write
// shiftboard.Violation, shiftboard.Logger, etc.
//
// The package defines:
//   - Snapshot and the day/month key formats used on the wire
//   - Violation, the tagged union delivered by the rule-check endpoint
//   - ConsecutiveWorkInfo and EventDetails payload types
//   - The drag-gesture and event-operation state machines
//   - View interfaces the embedding surface implements (DayCell, BoardView)
//   - Optional dependency interfaces (Logger, MetricsCollector, Hooks,
//     Publisher)
//   - Sentinel errors and the transport/protocol/user-input error taxonomy
package types
