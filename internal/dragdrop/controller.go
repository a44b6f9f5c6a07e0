package dragdrop

import (
	"context"
	"sync"

	"github.com/calendario/shiftboard/types"
)

// Assignments is the slice of the store the controller mutates through.
type Assignments interface {
	// Move reports whether anything changed.
	Move(employee, fromDate, toDate string) bool

	// Remove reports whether the employee was assigned.
	Remove(date, employee string) bool
}

// Syncer requests a server reconciliation cycle.
type Syncer interface {
	Trigger(ctx context.Context)
}

// Controller is the shift-board drag state machine. All methods are safe for
// concurrent use; the gesture state and selection live under one mutex.
type Controller struct {
	store  Assignments
	syncer Syncer
	logger types.Logger

	mu        sync.Mutex
	state     types.DragState
	selOrigin string
	selection []string
	carried   []string
	origin    string
}

// New creates a drag controller over the given store.
func New(store Assignments, syncer Syncer, logger types.Logger) *Controller {
	return &Controller{
		store:  store,
		syncer: syncer,
		logger: logger,
		state:  types.DragIdle,
	}
}

// State returns the current gesture state.
func (c *Controller) State() types.DragState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Selection returns the currently selected employees and their origin day.
// The slice is a copy.
func (c *Controller) Selection() (origin string, employees []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selOrigin, cloneList(c.selection)
}

// ToggleSelect adds or removes an employee token from the multi-select set.
// The set is scoped to one origin day: selecting a token from a different
// day discards the previous set and starts over with just that token.
func (c *Controller) ToggleSelect(origin, employee string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if origin != c.selOrigin {
		c.selOrigin = origin
		c.selection = []string{employee}
		return
	}

	for i, e := range c.selection {
		if e == employee {
			c.selection = append(c.selection[:i], c.selection[i+1:]...)
			if len(c.selection) == 0 {
				c.selOrigin = ""
			}
			return
		}
	}
	c.selection = append(c.selection, employee)
}

// ClearSelection empties the multi-select set.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selOrigin = ""
	c.selection = nil
}

// BeginDrag picks up the employee's token from the origin day (empty origin
// means the unassigned pool). If the token belongs to the current selection
// the whole selection is carried; otherwise the selection collapses to just
// this token. Returns false when a gesture is already active.
func (c *Controller) BeginDrag(origin, employee string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != types.DragIdle {
		c.logger.Debug("drag rejected, gesture already active",
			"origin", origin, "employee", employee)
		return false
	}

	carried := []string{employee}
	if origin == c.selOrigin && containsEmployee(c.selection, employee) {
		carried = cloneList(c.selection)
	} else {
		c.selOrigin = origin
		c.selection = []string{employee}
	}

	c.state = types.DragActive
	c.origin = origin
	c.carried = carried
	c.logger.Debug("drag started",
		"origin", origin, "employees", len(carried))

	return true
}

// Drop releases the carried tokens onto the target day. Every carried
// employee is moved through the store; if any move changed state, exactly
// one reconciliation cycle is triggered. The gesture and selection always
// end cleared, even when nothing changed (the drop-onto-origin no-op).
func (c *Controller) Drop(ctx context.Context, toDate string) bool {
	c.mu.Lock()
	if c.state != types.DragActive {
		c.mu.Unlock()
		return false
	}
	origin := c.origin
	carried := c.carried
	c.finishLocked()
	c.mu.Unlock()

	changed := false
	for _, employee := range carried {
		if c.store.Move(employee, origin, toDate) {
			changed = true
		}
	}

	if changed {
		c.syncer.Trigger(ctx)
	} else {
		c.logger.Debug("drop changed nothing",
			"origin", origin, "target", toDate)
	}

	return changed
}

// Cancel abandons the active gesture without touching the store. The
// multi-select set survives so the user can retry the drag.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != types.DragActive {
		return
	}
	c.state = types.DragIdle
	c.origin = ""
	c.carried = nil
}

// ClickRemove unassigns the employee from the day, the non-drag removal
// shortcut. Triggers a reconciliation only when the store actually changed.
func (c *Controller) ClickRemove(ctx context.Context, date, employee string) bool {
	if !c.store.Remove(date, employee) {
		return false
	}
	c.syncer.Trigger(ctx)

	return true
}

// finishLocked resets gesture and selection state. Caller holds c.mu.
func (c *Controller) finishLocked() {
	c.state = types.DragIdle
	c.origin = ""
	c.carried = nil
	c.selOrigin = ""
	c.selection = nil
}

func containsEmployee(list []string, employee string) bool {
	for _, e := range list {
		if e == employee {
			return true
		}
	}
	return false
}

func cloneList(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
