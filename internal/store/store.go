package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/calendario/shiftboard/types"
)

// Store maintains the in-memory day-to-employees mapping and mirrors every
// mutation into the day's hidden field and chip list.
//
// Invariants:
//   - The hidden-field value for day d always equals the comma-join of the
//     in-memory list for d, in insertion order.
//   - An employee appears at most once per day.
//
// Thread safety: all methods are safe for concurrent use. Mutations to one
// day's triple (list, field, chips) are atomic with respect to each other.
type Store struct {
	logger  types.Logger
	metrics types.MetricsCollector
	hooks   types.Hooks

	mu    sync.Mutex
	days  map[string][]string
	cells *xsync.Map[string, types.DayCell]
}

// New creates an empty assignment store.
//
// Dependencies are never nil by the time the board constructs a store; the
// root package substitutes nop implementations for anything the caller
// omitted.
func New(logger types.Logger, metrics types.MetricsCollector, hooks types.Hooks) *Store {
	return &Store{
		logger:  logger,
		metrics: metrics,
		hooks:   hooks,
		days:    make(map[string][]string),
		cells:   xsync.NewMap[string, types.DayCell](),
	}
}

// Bind registers a day cell and seeds the day's list from the cell's
// server-rendered hidden-field value. Binding does not write back to the
// cell: at page load the field and the chips are already consistent.
//
// Returns:
//   - error: types.ErrInvalidDayKey for a malformed date
func (s *Store) Bind(cell types.DayCell) error {
	if cell == nil {
		return fmt.Errorf("bind: %w", types.ErrCellNotBound)
	}

	date := cell.Date()
	if !types.ValidDayKey(date) {
		return fmt.Errorf("bind %q: %w", date, types.ErrInvalidDayKey)
	}

	employees := types.ParseEmployees(cell.FieldValue())

	s.mu.Lock()
	s.days[date] = employees
	s.mu.Unlock()
	s.cells.Store(date, cell)

	s.logger.Debug("day cell bound", "date", date, "employees", len(employees))

	return nil
}

// BindAll registers every cell, stopping at the first error.
func (s *Store) BindAll(cells ...types.DayCell) error {
	for _, cell := range cells {
		if err := s.Bind(cell); err != nil {
			return err
		}
	}

	return nil
}

// Add appends an employee to a day and mirrors the change. No-op (returns
// false) when the employee is already assigned that day, when the name is
// empty after trimming, or when the day has no bound cell.
func (s *Store) Add(date, employee string) bool {
	employee = strings.TrimSpace(employee)
	if employee == "" {
		return false
	}

	cell, ok := s.cells.Load(date)
	if !ok {
		s.logger.Warn("add rejected: no cell bound for day", "date", date, "employee", employee)
		return false
	}

	s.mu.Lock()
	current := s.days[date]
	if contains(current, employee) {
		s.mu.Unlock()
		return false
	}

	updated := append(current, employee)
	s.days[date] = updated

	// Mirror: list, field, chip never diverge within a call.
	cell.AddChip(employee)
	cell.SetFieldValue(types.SerializeEmployees(updated))
	after := cloneList(updated)
	s.mu.Unlock()

	s.metrics.RecordStoreMutation("add")
	s.notifyAssignmentChanged(date, after)

	return true
}

// Remove deletes an employee from a day and mirrors the change. Idempotent:
// removing an absent employee returns false and changes nothing.
func (s *Store) Remove(date, employee string) bool {
	employee = strings.TrimSpace(employee)
	if employee == "" {
		return false
	}

	cell, ok := s.cells.Load(date)
	if !ok {
		s.logger.Warn("remove rejected: no cell bound for day", "date", date, "employee", employee)
		return false
	}

	s.mu.Lock()
	current := s.days[date]
	idx := index(current, employee)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	updated := append(append([]string{}, current[:idx]...), current[idx+1:]...)
	s.days[date] = updated

	cell.RemoveChip(employee)
	cell.SetFieldValue(types.SerializeEmployees(updated))
	after := cloneList(updated)
	s.mu.Unlock()

	s.metrics.RecordStoreMutation("remove")
	s.notifyAssignmentChanged(date, after)

	return true
}

// Move places an employee on toDate and, when the move crosses cells,
// removes them from fromDate. fromDate == "" means the token came from the
// unassigned pool (no removal leg). Dropping back onto the origin cell is a
// no-op: the add is duplicate-guarded and the removal is skipped, so the
// employee stays present exactly once.
//
// The add runs first so that a duplicate at the destination never suppresses
// it into a bare removal. Returns whether anything changed.
func (s *Store) Move(employee, fromDate, toDate string) bool {
	if _, ok := s.cells.Load(toDate); !ok {
		s.logger.Warn("move rejected: no cell bound for destination", "date", toDate, "employee", employee)
		return false
	}

	added := s.Add(toDate, employee)

	removed := false
	if fromDate != "" && fromDate != toDate {
		removed = s.Remove(fromDate, employee)
	}

	if added || removed {
		s.metrics.RecordStoreMutation("move")
		return true
	}

	return false
}

// Employees returns a copy of the day's list in display order.
func (s *Store) Employees(date string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneList(s.days[date])
}

// Snapshot produces the full board state for a server round-trip: one entry
// per bound day cell, employee names trimmed and empty-filtered at entry so
// the lists are clean by construction. Days with no assignments carry an
// empty (non-nil) list so they serialize as [] rather than null.
func (s *Store) Snapshot() types.Snapshot {
	snap := make(types.Snapshot)

	s.cells.Range(func(date string, _ types.DayCell) bool {
		s.mu.Lock()
		emps := s.days[date]
		out := make([]string, 0, len(emps))
		out = append(out, emps...)
		s.mu.Unlock()

		snap[date] = out

		return true
	})

	return snap
}

func (s *Store) notifyAssignmentChanged(date string, employees []string) {
	if s.hooks.OnAssignmentChanged == nil {
		return
	}

	// Run hooks in the background so a slow consumer cannot stall a gesture.
	go func() {
		if err := s.hooks.OnAssignmentChanged(context.Background(), date, employees); err != nil {
			s.logger.Error("assignment change hook error", "date", date, "error", err)
		}
	}()
}

func contains(list []string, s string) bool {
	return index(list, s) >= 0
}

func index(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}

	return -1
}

func cloneList(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)

	return out
}
