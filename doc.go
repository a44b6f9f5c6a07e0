// Package shiftboard is the client-side core of a calendar scheduling board:
// a local assignment store kept in lockstep with the rendered page, drag and
// drop controllers for shift tokens and calendar events, and a reconciliation
// loop that ships every change to the server-side rule engine and draws the
// returned counters and violations back onto the board.
//
// # Quick Start
//
//	cfg := shiftboard.Config{
//	    BaseURL: "https://intranet.example.com",
//	    Month:   "2024-06",
//	}
//
//	board, err := shiftboard.NewBoard(&cfg, view)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := board.Bind(cells...); err != nil {
//	    log.Fatal(err)
//	}
//	if err := board.Init(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The view is the embedder's bridge to the actual page: the board never
// touches presentation directly, it drives the BoardView interfaces and
// keeps each day cell's hidden field and chip list mirroring its in-memory
// assignment state.
//
// # Key Behaviors
//
//   - Local-first editing: drops and removals mutate the store immediately,
//     then one coalesced server round trip refreshes counters and violations
//   - The server owns validity: violations are re-fetched and fully replaced
//     on every check, never merged
//   - Fail-soft display: a failed refresh logs and keeps the last applied
//     annotations; a result the board cannot trust forces an alert and reload
//   - Single-flight event gestures: one calendar move/copy may be in flight
//     at a time, and its commit is never retried
//
// # Advanced Usage
//
// Optional dependencies follow the functional options pattern:
//
//	board, err := shiftboard.NewBoard(&cfg, view,
//	    shiftboard.WithLogger(myLogger),
//	    shiftboard.WithMetrics(myCollector),
//	    shiftboard.WithHooks(&shiftboard.Hooks{
//	        OnViolationsChanged: func(ctx context.Context, prev, cur []shiftboard.Violation) error {
//	            return notifyPlanners(cur)
//	        },
//	    }),
//	)
package shiftboard
