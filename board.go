package shiftboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/calendario/shiftboard/internal/api"
	"github.com/calendario/shiftboard/internal/dragdrop"
	"github.com/calendario/shiftboard/internal/eventdrop"
	"github.com/calendario/shiftboard/internal/hooks"
	"github.com/calendario/shiftboard/internal/logging"
	"github.com/calendario/shiftboard/internal/metrics"
	"github.com/calendario/shiftboard/internal/remote"
	"github.com/calendario/shiftboard/internal/render"
	"github.com/calendario/shiftboard/internal/store"
)

// Board is the assembled scheduling-board core: the assignment store, both
// gesture controllers, and the server reconciliation loop, all driving one
// BoardView.
type Board struct {
	cfg    Config
	view   BoardView
	logger Logger

	client *api.Client
	store  *store.Store
	sync   *remote.Sync
	drag   *dragdrop.Controller
	events *eventdrop.Controller
}

// NewBoard creates a Board over the given view. The configuration is
// defaulted and validated; the view is required.
func NewBoard(cfg *Config, view BoardView, opts ...Option) (*Board, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if view == nil {
		return nil, ErrViewRequired
	}

	options := boardOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = logging.NewNop()
	}
	if options.metrics == nil {
		options.metrics = metrics.NewNop()
	}
	boardHooks := hooks.NewNop()
	if options.hooks != nil {
		boardHooks = *options.hooks
	}

	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.ValidateWithWarnings(options.logger)

	httpc := options.httpc
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.RequestTimeout}
	}

	client := api.New(cfg.apiConfig(), httpc, options.logger)
	assignments := store.New(options.logger, options.metrics, boardHooks)
	renderer := render.New(view, options.logger, options.metrics)
	sync := remote.New(client, assignments, view, renderer, remote.Options{
		Month:     cfg.Month,
		Subject:   cfg.ViolationSubject,
		Publisher: options.publisher,
	}, options.logger, options.metrics, boardHooks)

	return &Board{
		cfg:    *cfg,
		view:   view,
		logger: options.logger,
		client: client,
		store:  assignments,
		sync:   sync,
		drag:   dragdrop.New(assignments, sync, options.logger),
		events: eventdrop.New(client, view, options.logger, options.metrics, boardHooks),
	}, nil
}

// Bind registers the board's day cells and seeds the store from their
// current field values, the server-rendered page state.
func (b *Board) Bind(cells ...DayCell) error {
	return b.store.BindAll(cells...)
}

// Init runs the initial reconciliation: the freshly bound board is checked
// against the server so counters and violations reflect reality before the
// first gesture. Returns the check's error; the caller decides whether an
// unchecked board should be interactive.
func (b *Board) Init(ctx context.Context) error {
	return b.sync.InitialSync(ctx)
}

// Refresh requests a background reconciliation cycle, coalesced with any
// cycle already running.
func (b *Board) Refresh(ctx context.Context) {
	b.sync.Trigger(ctx)
}

// Employees returns the employees assigned to the day.
func (b *Board) Employees(date string) []string {
	return b.store.Employees(date)
}

// Snapshot returns the full current assignment state.
func (b *Board) Snapshot() Snapshot {
	return b.store.Snapshot()
}

// ToggleSelect adds or removes an employee token from the drag multi-select.
func (b *Board) ToggleSelect(origin, employee string) {
	b.drag.ToggleSelect(origin, employee)
}

// BeginDrag picks up an employee token (empty origin means the unassigned
// pool). Reports whether the gesture was accepted.
func (b *Board) BeginDrag(origin, employee string) bool {
	return b.drag.BeginDrag(origin, employee)
}

// Drop releases the carried tokens onto the target day and triggers a
// reconciliation when anything changed.
func (b *Board) Drop(ctx context.Context, toDate string) bool {
	return b.drag.Drop(ctx, toDate)
}

// CancelDrag abandons the active drag gesture.
func (b *Board) CancelDrag() {
	b.drag.Cancel()
}

// ClickRemove unassigns the employee from the day.
func (b *Board) ClickRemove(ctx context.Context, date, employee string) bool {
	return b.drag.ClickRemove(ctx, date, employee)
}

// DragState returns the shift-drag gesture state.
func (b *Board) DragState() DragState {
	return b.drag.State()
}

// DropEvent captures a calendar-event drop awaiting move/copy confirmation.
func (b *Board) DropEvent(node EventNode, newDate string) error {
	return b.events.Drop(node, newDate)
}

// ConfirmMove commits the pending event gesture as a move.
func (b *Board) ConfirmMove(ctx context.Context) error {
	return b.events.ConfirmMove(ctx)
}

// ConfirmCopy commits the pending event gesture as a copy.
func (b *Board) ConfirmCopy(ctx context.Context) error {
	return b.events.ConfirmCopy(ctx)
}

// CancelEvent abandons the pending event gesture.
func (b *Board) CancelEvent() error {
	return b.events.Cancel()
}

// BeginEventFlow starts the button-driven move/copy variant for an event.
func (b *Board) BeginEventFlow(eventID int, op EventOperation) error {
	return b.events.BeginButtonFlow(eventID, op)
}

// ConfirmEventDate supplies the target date for a button-driven gesture and
// commits it.
func (b *Board) ConfirmEventDate(ctx context.Context, newDate string) error {
	return b.events.ConfirmDate(ctx, newDate)
}

// EventState returns the event move/copy gesture state.
func (b *Board) EventState() OpState {
	return b.events.State()
}

// EventDetails fetches the detail payload for one calendar event.
func (b *Board) EventDetails(ctx context.Context, eventID int) (*EventDetails, error) {
	return b.client.EventDetails(ctx, eventID)
}
