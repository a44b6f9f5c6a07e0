package eventdrop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/calendario/shiftboard/internal/api"
	"github.com/calendario/shiftboard/types"
)

// Gesture results recorded per finished gesture.
const (
	resultCommitted = "committed"
	resultFailed    = "failed"
	resultCancelled = "cancelled"
	resultRejected  = "rejected"
)

// Committer is the slice of the API client that commits a confirmed drop.
type Committer interface {
	DropEvent(ctx context.Context, eventID int, newDate string, op types.EventOperation) (*api.DropResult, error)
}

// Surface is the slice of the view the controller drives: applying confirmed
// results and surfacing fail-loud conditions.
type Surface interface {
	types.EventSurface
	types.Notifier
}

// gesture is one captured drop, alive from capture to finalization.
type gesture struct {
	id      string
	eventID int
	newDate string
	op      types.EventOperation

	// node is nil in the button-driven flow, where no draggable element
	// exists and a successful commit resolves with a reload instead.
	node types.EventNode

	// cancelled marks a gesture abandoned while its commit was in flight.
	// The commit still completes server-side; the flag only suppresses
	// applying the result to a board the user has navigated away from.
	cancelled atomic.Bool

	// finalize guards the cleanup so a cancel racing a commit cannot undim
	// or reset twice.
	finalize sync.Once
}

// Controller is the event move/copy state machine.
type Controller struct {
	client  Committer
	view    Surface
	logger  types.Logger
	metrics types.MetricsCollector
	hooks   types.Hooks

	mu      sync.Mutex
	state   types.OpState
	current *gesture
}

// New creates an event-drop controller.
func New(client Committer, view Surface, logger types.Logger,
	metrics types.MetricsCollector, hooks types.Hooks,
) *Controller {
	return &Controller{
		client:  client,
		view:    view,
		logger:  logger,
		metrics: metrics,
		hooks:   hooks,
		state:   types.OpIdle,
	}
}

// State returns the current operation state.
func (c *Controller) State() types.OpState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Drop captures a drag-and-drop gesture: the event node was released over
// the target date and now awaits the user's move/copy choice. Rejected with
// ErrOperationInFlight while another gesture is anywhere in flight.
func (c *Controller) Drop(node types.EventNode, newDate string) error {
	if node == nil {
		return fmt.Errorf("%w: nil event node", types.ErrInvalidOperation)
	}
	if !types.ValidDayKey(newDate) {
		return fmt.Errorf("%w: %q", types.ErrInvalidDayKey, newDate)
	}

	c.mu.Lock()
	if c.state != types.OpIdle {
		state := c.state
		c.mu.Unlock()
		c.metrics.RecordDropGesture("", resultRejected)
		c.logger.Debug("event drop rejected, gesture in flight",
			"event_id", node.EventID(), "state", state)
		return types.ErrOperationInFlight
	}

	g := &gesture{
		id:      uuid.NewString(),
		eventID: node.EventID(),
		newDate: newDate,
		node:    node,
	}
	c.current = g
	c.setStateLocked(types.OpPendingConfirmation)
	// Dim while still holding the lock: once Unlock returns a Cancel may
	// run its undim, and dimming after that would strand the node dimmed
	// with no gesture left to restore it.
	node.SetDimmed(true)
	c.mu.Unlock()

	c.logger.Debug("event drop captured",
		"gesture_id", g.id, "event_id", g.eventID, "new_date", newDate)

	return nil
}

// BeginButtonFlow starts the non-drag variant: the user picked an event and
// an operation from a menu and will be asked for the target date next.
func (c *Controller) BeginButtonFlow(eventID int, op types.EventOperation) error {
	if !op.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidOperation, op)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != types.OpIdle {
		c.metrics.RecordDropGesture(string(op), resultRejected)
		return types.ErrOperationInFlight
	}

	c.current = &gesture{
		id:      uuid.NewString(),
		eventID: eventID,
		op:      op,
	}
	c.setStateLocked(types.OpPendingConfirmation)

	return nil
}

// ConfirmDate supplies the target date for a button flow and commits. An
// empty date is a user-input error and leaves the gesture pending so the
// prompt can be retried.
func (c *Controller) ConfirmDate(ctx context.Context, newDate string) error {
	c.mu.Lock()
	if c.state != types.OpPendingConfirmation || c.current == nil {
		c.mu.Unlock()
		return types.ErrNoPendingOperation
	}
	if newDate == "" {
		c.mu.Unlock()
		return &types.UserInputError{Reason: "no date entered"}
	}
	if !types.ValidDayKey(newDate) {
		c.mu.Unlock()
		return &types.UserInputError{Reason: fmt.Sprintf("not a valid date: %q", newDate)}
	}
	g := c.current
	g.newDate = newDate
	c.setStateLocked(types.OpCommitting)
	c.mu.Unlock()

	return c.commit(ctx, g)
}

// ConfirmMove commits the pending gesture as a move.
func (c *Controller) ConfirmMove(ctx context.Context) error {
	return c.confirm(ctx, types.OpMove)
}

// ConfirmCopy commits the pending gesture as a copy.
func (c *Controller) ConfirmCopy(ctx context.Context) error {
	return c.confirm(ctx, types.OpCopy)
}

func (c *Controller) confirm(ctx context.Context, op types.EventOperation) error {
	c.mu.Lock()
	if c.state != types.OpPendingConfirmation || c.current == nil {
		c.mu.Unlock()
		return types.ErrNoPendingOperation
	}
	g := c.current
	if g.newDate == "" {
		c.mu.Unlock()
		return &types.UserInputError{Reason: "no target date captured"}
	}
	g.op = op
	c.setStateLocked(types.OpCommitting)
	c.mu.Unlock()

	return c.commit(ctx, g)
}

// Cancel abandons the pending gesture without a network call. Cancelling
// while the commit is already in flight cannot unsend it; the gesture is
// marked so its result is not applied, and the board reloads on completion.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case types.OpIdle:
		return types.ErrNoPendingOperation

	case types.OpCommitting:
		c.current.cancelled.Store(true)
		return nil

	default: // OpPendingConfirmation
		g := c.current
		g.finalize.Do(func() {
			if g.node != nil {
				g.node.SetDimmed(false)
			}
		})
		c.current = nil
		c.setStateLocked(types.OpIdle)
		c.metrics.RecordDropGesture(string(g.op), resultCancelled)
		c.logger.Debug("event gesture cancelled", "gesture_id", g.id)
		return nil
	}
}

// commit sends the drop to the server and applies the outcome. Called with
// the state already at OpCommitting; always finalizes back to OpIdle.
func (c *Controller) commit(ctx context.Context, g *gesture) error {
	res, err := c.client.DropEvent(ctx, g.eventID, g.newDate, g.op)

	defer c.finish(g)

	if err != nil {
		c.logger.Error("event drop commit failed",
			"gesture_id", g.id, "event_id", g.eventID,
			"operation", g.op, "error", err)
		c.fireError(err)
		c.metrics.RecordDropGesture(string(g.op), resultFailed)
		if !g.cancelled.Load() {
			c.view.Alert(dropFailureMessage(err))
		}
		return err
	}

	if g.cancelled.Load() {
		// The server applied the drop after the user walked away; only a
		// reload brings the board back in step.
		c.logger.Warn("commit finished after cancel, reloading",
			"gesture_id", g.id, "event_id", g.eventID)
		c.metrics.RecordDropGesture(string(g.op), resultCancelled)
		c.view.Reload()
		return nil
	}

	if err := c.apply(g, res); err != nil {
		c.metrics.RecordDropGesture(string(g.op), resultFailed)
		return err
	}

	c.metrics.RecordDropGesture(string(g.op), resultCommitted)
	c.logger.Info("event drop committed",
		"gesture_id", g.id, "event_id", g.eventID,
		"operation", g.op, "new_date", g.newDate)

	return nil
}

// apply reflects a successful commit onto the board.
func (c *Controller) apply(g *gesture, res *api.DropResult) error {
	// The button flow has no node to manipulate; the reload redraws the
	// server's state wholesale.
	if g.node == nil {
		c.view.Reload()
		return nil
	}

	switch g.op {
	case types.OpMove:
		c.view.RelocateEvent(g.node, g.newDate)

	case types.OpCopy:
		if res.NewEventID == nil {
			// Without the new id the clone would answer clicks and drags
			// as the original. Refusing to render it and reloading is the
			// only state the board can still vouch for.
			err := &types.ProtocolError{
				Op:     "event_drop",
				Reason: "copy confirmed without new event id",
			}
			c.logger.Error("copy result unusable, forcing reload",
				"gesture_id", g.id, "event_id", g.eventID)
			c.view.Alert("The copy could not be displayed. The page will reload.")
			c.view.Reload()
			return err
		}
		c.view.InsertEventCopy(g.node, *res.NewEventID, g.newDate)
	}

	return nil
}

// finish releases the single-flight guard and restores the node exactly
// once, whatever path the commit took.
func (c *Controller) finish(g *gesture) {
	g.finalize.Do(func() {
		if g.node != nil && !g.cancelled.Load() {
			g.node.SetDimmed(false)
		}
	})

	c.mu.Lock()
	if c.current == g {
		c.current = nil
		c.setStateLocked(types.OpIdle)
	}
	c.mu.Unlock()
}

// setStateLocked transitions the state and fires the hook. Caller holds c.mu.
// The hook runs in the background so a consumer that calls back into the
// controller cannot deadlock on c.mu.
func (c *Controller) setStateLocked(to types.OpState) {
	from := c.state
	if from == to {
		return
	}
	c.state = to

	if c.hooks.OnOpStateChanged != nil {
		go func() {
			if err := c.hooks.OnOpStateChanged(context.Background(), from, to); err != nil {
				c.logger.Warn("op-state hook failed",
					"from", from, "to", to, "error", err)
			}
		}()
	}
}

func (c *Controller) fireError(err error) {
	if c.hooks.OnError == nil {
		return
	}
	go func() {
		if herr := c.hooks.OnError(context.Background(), err); herr != nil {
			c.logger.Warn("error hook failed", "error", herr)
		}
	}()
}

func dropFailureMessage(err error) string {
	var pe *types.ProtocolError
	if errors.As(err, &pe) && pe.Reason != "" {
		return "The operation failed: " + pe.Reason
	}
	return "The operation could not be completed. Please try again."
}
