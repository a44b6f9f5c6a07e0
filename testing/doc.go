// Package testing provides test utilities for the shiftboard library:
// a logger that routes to testing.T and in-memory fakes for the view
// interfaces the board drives.
//
// Import with an alias to avoid clashing with the standard library:
//
//	boardtesting "github.com/calendario/shiftboard/testing"
package testing
