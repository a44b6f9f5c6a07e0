// Package store implements the assignment store: the single source of truth
// for the day-to-employees mapping shown on the shift board.
//
// Every mutation updates three things atomically under one lock: the
// in-memory ordered employee list, the day's hidden form field, and the
// day's visible chip list. Business logic never touches the view except
// through this package, which is the one place the mirror invariant is
// enforced.
package store
