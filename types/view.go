package types

// View interfaces implemented by the embedding surface (the actual page,
// widget toolkit, or a test fake). The library never touches presentation
// directly: every DOM-equivalent mutation goes through one of these, which is
// also where the mirror invariants are enforced from.

// DayCell is one calendar day on the shift board: a hidden form field holding
// the comma-joined employee list plus a visible list of assignment chips.
//
// The store keeps the field value and the chip list in lockstep with its
// in-memory state; implementations only need to apply what they are told.
type DayCell interface {
	// Date returns the cell's day key ("YYYY-MM-DD").
	Date() string

	// FieldValue returns the current hidden-field value. Read once at bind
	// time to seed the store from the server-rendered page.
	FieldValue() string

	// SetFieldValue replaces the hidden-field value.
	SetFieldValue(value string)

	// AddChip appends a visible assignment chip for the employee.
	AddChip(employee string)

	// RemoveChip removes the employee's assignment chip.
	RemoveChip(employee string)
}

// CounterView exposes the per-employee work/off day counters.
//
// Both setters report whether a matching counter exists; a missing counter is
// skipped silently by the caller (logged, not fatal), matching the board's
// fail-soft policy for advisory displays.
type CounterView interface {
	SetWorkCount(employee string, days int) bool
	SetOffCount(employee string, days int) bool
}

// IconKind classifies a violation icon by the rule family it represents.
// Unknown rule types map to IconGeneric.
type IconKind string

const (
	IconConsecutive IconKind = "consecutive"
	IconStaffing    IconKind = "staffing"
	IconPair        IconKind = "pair"
	IconAttribute   IconKind = "attribute"
	IconSpecialized IconKind = "specialized"
	IconGeneric     IconKind = "generic"
)

// ViolationIcon is one rendered violation marker. The full violation payload
// rides along so the surface can open the detail view on click.
type ViolationIcon struct {
	Kind      IconKind
	Violation Violation
}

// AnnotationView exposes the violation-icon containers and the per-chip
// consecutive-day badges. Rendering is always a full replace: clear first,
// then add.
type AnnotationView interface {
	// ClearViolationIcons empties every violation-icon container.
	ClearViolationIcons()

	// AddViolationIcon appends an icon to the day cell's icon container,
	// creating the container on demand.
	AddViolationIcon(date string, icon ViolationIcon)

	// ClearDayCountBadges removes all consecutive-day annotations.
	ClearDayCountBadges()

	// SetDayCountBadge annotates the employee's chip on the given day with a
	// consecutive-day count. Returns false when no such chip is rendered,
	// which the caller treats as a skip, not an error.
	SetDayCountBadge(employee, date string, count int) bool
}

// EventNode is a draggable calendar-event element on the calendar board.
type EventNode interface {
	// EventID returns the event's server-side id.
	EventID() int

	// SetDimmed toggles the in-flight visual affordance (opacity).
	SetDimmed(dimmed bool)
}

// EventSurface applies confirmed move/copy results to the calendar board.
type EventSurface interface {
	// RelocateEvent moves the existing node into the target day cell.
	RelocateEvent(node EventNode, toDate string)

	// InsertEventCopy clones the node into the target day cell, rewriting
	// its identity-bearing attributes to the server-assigned new id.
	InsertEventCopy(node EventNode, newEventID int, toDate string)
}

// Notifier surfaces fail-loud conditions to the user.
type Notifier interface {
	// Alert shows a blocking notification.
	Alert(message string)

	// Reload forces a full page reload. Last resort for states where the
	// client can no longer trust that it matches the server.
	Reload()
}

// BoardView aggregates every surface the board drives. Embedders implement
// this once per page; testing.FakeView provides an in-memory implementation.
type BoardView interface {
	CounterView
	AnnotationView
	EventSurface
	Notifier
}
