package testing

import (
	"fmt"
	"sync"

	"github.com/calendario/shiftboard/types"
)

// FakeDayCell is an in-memory types.DayCell: a hidden-field string plus an
// ordered chip list, with no rendering behind them.
type FakeDayCell struct {
	mu    sync.Mutex
	date  string
	field string
	chips []string
}

var _ types.DayCell = (*FakeDayCell)(nil)

// NewFakeDayCell creates a cell for the given day key with a server-rendered
// initial field value; the chip list is seeded to match.
func NewFakeDayCell(date, initialValue string) *FakeDayCell {
	return &FakeDayCell{
		date:  date,
		field: initialValue,
		chips: types.ParseEmployees(initialValue),
	}
}

// Date returns the cell's day key.
func (c *FakeDayCell) Date() string { return c.date }

// FieldValue returns the current hidden-field string.
func (c *FakeDayCell) FieldValue() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.field
}

// SetFieldValue replaces the hidden-field string.
func (c *FakeDayCell) SetFieldValue(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.field = value
}

// AddChip appends a chip.
func (c *FakeDayCell) AddChip(employee string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chips = append(c.chips, employee)
}

// RemoveChip removes the employee's chip.
func (c *FakeDayCell) RemoveChip(employee string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, chip := range c.chips {
		if chip == employee {
			c.chips = append(c.chips[:i], c.chips[i+1:]...)
			return
		}
	}
}

// Chips returns a copy of the chip list in display order.
func (c *FakeDayCell) Chips() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.chips))
	copy(out, c.chips)

	return out
}

// HasChip reports whether the employee's chip is rendered.
func (c *FakeDayCell) HasChip(employee string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, chip := range c.chips {
		if chip == employee {
			return true
		}
	}

	return false
}

// FakeEventNode is an in-memory types.EventNode.
type FakeEventNode struct {
	mu     sync.Mutex
	id     int
	dimmed bool
}

var _ types.EventNode = (*FakeEventNode)(nil)

// NewFakeEventNode creates a node for the given event id.
func NewFakeEventNode(id int) *FakeEventNode {
	return &FakeEventNode{id: id}
}

// EventID returns the event's id.
func (n *FakeEventNode) EventID() int { return n.id }

// SetDimmed records the in-flight affordance state.
func (n *FakeEventNode) SetDimmed(dimmed bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dimmed = dimmed
}

// Dimmed reports the current affordance state.
func (n *FakeEventNode) Dimmed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.dimmed
}

// Relocation records one applied move on the fake view.
type Relocation struct {
	EventID int
	Date    string
}

// Insertion records one applied copy on the fake view.
type Insertion struct {
	SourceID int
	NewID    int
	Date     string
}

// FakeView is an in-memory types.BoardView recording everything the board
// does to it. Counters exist only for registered employees so tests can
// exercise the missing-counter skip path; day-count badges attach only where
// an attached cell actually renders the chip.
type FakeView struct {
	mu sync.Mutex

	workCounts map[string]int
	offCounts  map[string]int

	cells  map[string]*FakeDayCell
	icons  map[string][]types.ViolationIcon
	badges map[string]int

	Relocations []Relocation
	Insertions  []Insertion
	Alerts      []string
	Reloads     int
}

var _ types.BoardView = (*FakeView)(nil)

// NewFakeView creates an empty fake view.
func NewFakeView() *FakeView {
	return &FakeView{
		workCounts: make(map[string]int),
		offCounts:  make(map[string]int),
		cells:      make(map[string]*FakeDayCell),
		icons:      make(map[string][]types.ViolationIcon),
		badges:     make(map[string]int),
	}
}

// RegisterCounter declares that the page renders work/off counter nodes for
// the given employees.
func (v *FakeView) RegisterCounter(employees ...string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, emp := range employees {
		v.workCounts[emp] = 0
		v.offCounts[emp] = 0
	}
}

// AttachCell makes the view aware of a day cell so badge placement can check
// for rendered chips.
func (v *FakeView) AttachCell(cell *FakeDayCell) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cells[cell.Date()] = cell
}

// SetWorkCount implements types.CounterView.
func (v *FakeView) SetWorkCount(employee string, days int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.workCounts[employee]; !ok {
		return false
	}
	v.workCounts[employee] = days

	return true
}

// SetOffCount implements types.CounterView.
func (v *FakeView) SetOffCount(employee string, days int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.offCounts[employee]; !ok {
		return false
	}
	v.offCounts[employee] = days

	return true
}

// WorkCount returns the displayed work count for an employee.
func (v *FakeView) WorkCount(employee string) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.workCounts[employee]
}

// OffCount returns the displayed off count for an employee.
func (v *FakeView) OffCount(employee string) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.offCounts[employee]
}

// ClearViolationIcons implements types.AnnotationView.
func (v *FakeView) ClearViolationIcons() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.icons = make(map[string][]types.ViolationIcon)
}

// AddViolationIcon implements types.AnnotationView.
func (v *FakeView) AddViolationIcon(date string, icon types.ViolationIcon) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.icons[date] = append(v.icons[date], icon)
}

// Icons returns the icons currently shown on a day.
func (v *FakeView) Icons(date string) []types.ViolationIcon {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]types.ViolationIcon, len(v.icons[date]))
	copy(out, v.icons[date])

	return out
}

// IconDates returns every day currently showing at least one icon.
func (v *FakeView) IconDates() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]string, 0, len(v.icons))
	for date, icons := range v.icons {
		if len(icons) > 0 {
			out = append(out, date)
		}
	}

	return out
}

// ClearDayCountBadges implements types.AnnotationView.
func (v *FakeView) ClearDayCountBadges() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.badges = make(map[string]int)
}

// SetDayCountBadge implements types.AnnotationView.
func (v *FakeView) SetDayCountBadge(employee, date string, count int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	cell, ok := v.cells[date]
	if !ok || !cell.HasChip(employee) {
		return false
	}
	v.badges[badgeKey(employee, date)] = count

	return true
}

// Badge returns the badge for an employee's chip, with ok=false when none is
// shown.
func (v *FakeView) Badge(employee, date string) (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	n, ok := v.badges[badgeKey(employee, date)]

	return n, ok
}

// RelocateEvent implements types.EventSurface.
func (v *FakeView) RelocateEvent(node types.EventNode, toDate string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Relocations = append(v.Relocations, Relocation{EventID: node.EventID(), Date: toDate})
}

// InsertEventCopy implements types.EventSurface.
func (v *FakeView) InsertEventCopy(node types.EventNode, newEventID int, toDate string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Insertions = append(v.Insertions, Insertion{SourceID: node.EventID(), NewID: newEventID, Date: toDate})
}

// Alert implements types.Notifier.
func (v *FakeView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Alerts = append(v.Alerts, message)
}

// Reload implements types.Notifier.
func (v *FakeView) Reload() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Reloads++
}

func badgeKey(employee, date string) string {
	return fmt.Sprintf("%s|%s", employee, date)
}
