package eventdrop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendario/shiftboard/internal/api"
	"github.com/calendario/shiftboard/internal/metrics"
	boardtesting "github.com/calendario/shiftboard/testing"
	"github.com/calendario/shiftboard/types"
)

type fakeCommitter struct {
	mu    sync.Mutex
	calls []commitCall

	res *api.DropResult
	err error

	// gate, when set, blocks DropEvent until closed; entered is signalled
	// once per blocked call.
	gate    chan struct{}
	entered chan struct{}
}

type commitCall struct {
	eventID int
	newDate string
	op      types.EventOperation
}

func (f *fakeCommitter) DropEvent(_ context.Context, eventID int, newDate string, op types.EventOperation) (*api.DropResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, commitCall{eventID: eventID, newDate: newDate, op: op})
	res, err := f.res, f.err
	gate, entered := f.gate, f.entered
	f.mu.Unlock()

	if gate != nil {
		entered <- struct{}{}
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &api.DropResult{}
	}
	return res, nil
}

func (f *fakeCommitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestEventController(t *testing.T, committer *fakeCommitter, hooks types.Hooks,
) (*Controller, *boardtesting.FakeView) {
	t.Helper()
	view := boardtesting.NewFakeView()
	c := New(committer, view, boardtesting.NewTestLogger(t), metrics.NewNop(), hooks)

	return c, view
}

func TestDropAndConfirmMove(t *testing.T) {
	committer := &fakeCommitter{}
	c, view := newTestEventController(t, committer, types.Hooks{})
	node := boardtesting.NewFakeEventNode(42)

	require.NoError(t, c.Drop(node, "2024-06-05"))
	assert.Equal(t, types.OpPendingConfirmation, c.State())
	assert.True(t, node.Dimmed())

	require.NoError(t, c.ConfirmMove(context.Background()))

	require.Len(t, committer.calls, 1)
	assert.Equal(t, commitCall{eventID: 42, newDate: "2024-06-05", op: types.OpMove}, committer.calls[0])

	require.Len(t, view.Relocations, 1)
	assert.Equal(t, "2024-06-05", view.Relocations[0].Date)
	assert.False(t, node.Dimmed())
	assert.Equal(t, types.OpIdle, c.State())
}

func TestConfirmCopy(t *testing.T) {
	newID := 99
	committer := &fakeCommitter{res: &api.DropResult{NewEventID: &newID}}
	c, view := newTestEventController(t, committer, types.Hooks{})
	node := boardtesting.NewFakeEventNode(42)

	require.NoError(t, c.Drop(node, "2024-06-05"))
	require.NoError(t, c.ConfirmCopy(context.Background()))

	require.Len(t, view.Insertions, 1)
	assert.Equal(t, 99, view.Insertions[0].NewID)
	assert.Equal(t, "2024-06-05", view.Insertions[0].Date)
	assert.Empty(t, view.Relocations)
	assert.Equal(t, types.OpIdle, c.State())
}

func TestConfirmCopy_MissingNewID(t *testing.T) {
	committer := &fakeCommitter{res: &api.DropResult{Message: "copied"}}
	c, view := newTestEventController(t, committer, types.Hooks{})
	node := boardtesting.NewFakeEventNode(42)

	require.NoError(t, c.Drop(node, "2024-06-05"))
	err := c.ConfirmCopy(context.Background())

	var pe *types.ProtocolError
	require.ErrorAs(t, err, &pe)

	// The clone is never rendered with a borrowed identity.
	assert.Empty(t, view.Insertions)
	require.Len(t, view.Alerts, 1)
	assert.Equal(t, 1, view.Reloads)
	assert.Equal(t, types.OpIdle, c.State())
}

func TestCommitFailureAlertsAndRestores(t *testing.T) {
	committer := &fakeCommitter{err: &types.ProtocolError{
		Op: "event_drop", StatusCode: 409, Reason: "event locked",
	}}
	c, view := newTestEventController(t, committer, types.Hooks{})
	node := boardtesting.NewFakeEventNode(42)

	require.NoError(t, c.Drop(node, "2024-06-05"))
	err := c.ConfirmMove(context.Background())
	require.Error(t, err)

	require.Len(t, view.Alerts, 1)
	assert.Contains(t, view.Alerts[0], "event locked")
	assert.Empty(t, view.Relocations)
	assert.False(t, node.Dimmed())
	assert.Equal(t, types.OpIdle, c.State())

	// The guard released: a fresh gesture is accepted.
	require.NoError(t, c.Drop(boardtesting.NewFakeEventNode(7), "2024-06-06"))
}

func TestDrop_SingleFlight(t *testing.T) {
	committer := &fakeCommitter{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	c, _ := newTestEventController(t, committer, types.Hooks{})
	node := boardtesting.NewFakeEventNode(42)

	require.NoError(t, c.Drop(node, "2024-06-05"))

	// Rejected while awaiting confirmation.
	err := c.Drop(boardtesting.NewFakeEventNode(7), "2024-06-06")
	require.ErrorIs(t, err, types.ErrOperationInFlight)

	done := make(chan error, 1)
	go func() { done <- c.ConfirmMove(context.Background()) }()
	<-committer.entered

	// Rejected while the commit is in flight.
	err = c.Drop(boardtesting.NewFakeEventNode(8), "2024-06-07")
	require.ErrorIs(t, err, types.ErrOperationInFlight)

	close(committer.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, committer.callCount())

	// And accepted again once finalized.
	require.NoError(t, c.Drop(boardtesting.NewFakeEventNode(9), "2024-06-08"))
}

func TestCancelPending(t *testing.T) {
	committer := &fakeCommitter{}
	c, _ := newTestEventController(t, committer, types.Hooks{})
	node := boardtesting.NewFakeEventNode(42)

	require.NoError(t, c.Drop(node, "2024-06-05"))
	require.NoError(t, c.Cancel())

	assert.False(t, node.Dimmed())
	assert.Equal(t, types.OpIdle, c.State())
	assert.Zero(t, committer.callCount())
}

func TestCancelDuringCommitSuppressesResult(t *testing.T) {
	committer := &fakeCommitter{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	c, view := newTestEventController(t, committer, types.Hooks{})
	node := boardtesting.NewFakeEventNode(42)

	require.NoError(t, c.Drop(node, "2024-06-05"))

	done := make(chan error, 1)
	go func() { done <- c.ConfirmMove(context.Background()) }()
	<-committer.entered

	require.NoError(t, c.Cancel())
	close(committer.gate)
	require.NoError(t, <-done)

	// The server applied the move anyway; the board reloads rather than
	// pretending nothing happened.
	assert.Empty(t, view.Relocations)
	assert.Equal(t, 1, view.Reloads)
	assert.Equal(t, types.OpIdle, c.State())
}

func TestConfirmWithoutPending(t *testing.T) {
	c, _ := newTestEventController(t, &fakeCommitter{}, types.Hooks{})

	require.ErrorIs(t, c.ConfirmMove(context.Background()), types.ErrNoPendingOperation)
	require.ErrorIs(t, c.ConfirmCopy(context.Background()), types.ErrNoPendingOperation)
	require.ErrorIs(t, c.Cancel(), types.ErrNoPendingOperation)
}

func TestDrop_InvalidInputs(t *testing.T) {
	c, _ := newTestEventController(t, &fakeCommitter{}, types.Hooks{})

	require.ErrorIs(t, c.Drop(nil, "2024-06-05"), types.ErrInvalidOperation)
	require.ErrorIs(t, c.Drop(boardtesting.NewFakeEventNode(1), "June 5th"), types.ErrInvalidDayKey)
	assert.Equal(t, types.OpIdle, c.State())
}

func TestButtonFlow(t *testing.T) {
	committer := &fakeCommitter{}
	c, view := newTestEventController(t, committer, types.Hooks{})

	require.NoError(t, c.BeginButtonFlow(42, types.OpMove))
	assert.Equal(t, types.OpPendingConfirmation, c.State())

	// A blank prompt answer keeps the gesture alive for a retry.
	err := c.ConfirmDate(context.Background(), "")
	var uie *types.UserInputError
	require.ErrorAs(t, err, &uie)
	assert.Equal(t, types.OpPendingConfirmation, c.State())

	err = c.ConfirmDate(context.Background(), "not-a-date")
	require.ErrorAs(t, err, &uie)
	assert.Equal(t, types.OpPendingConfirmation, c.State())

	require.NoError(t, c.ConfirmDate(context.Background(), "2024-06-09"))
	require.Len(t, committer.calls, 1)
	assert.Equal(t, commitCall{eventID: 42, newDate: "2024-06-09", op: types.OpMove}, committer.calls[0])

	// No node to relocate: the reload draws the server's state.
	assert.Empty(t, view.Relocations)
	assert.Equal(t, 1, view.Reloads)
	assert.Equal(t, types.OpIdle, c.State())
}

func TestButtonFlow_InvalidOperation(t *testing.T) {
	c, _ := newTestEventController(t, &fakeCommitter{}, types.Hooks{})

	require.ErrorIs(t, c.BeginButtonFlow(42, "duplicate"), types.ErrInvalidOperation)
}

func TestOpStateHookSeesFullProgression(t *testing.T) {
	var mu sync.Mutex
	var transitions []string
	hooks := types.Hooks{
		OnOpStateChanged: func(_ context.Context, from, to types.OpState) error {
			mu.Lock()
			defer mu.Unlock()
			transitions = append(transitions, from.String()+">"+to.String())
			return nil
		},
	}
	c, _ := newTestEventController(t, &fakeCommitter{}, hooks)
	node := boardtesting.NewFakeEventNode(42)

	require.NoError(t, c.Drop(node, "2024-06-05"))
	require.NoError(t, c.ConfirmMove(context.Background()))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(transitions) == 3
	}, time.Second, 5*time.Millisecond)

	// Hooks run on background goroutines, so arrival order across rapid
	// transitions is not guaranteed.
	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{
		"Idle>PendingConfirmation",
		"PendingConfirmation>Committing",
		"Committing>Idle",
	}, transitions)
}

// A hook that calls back into the controller must not deadlock the gesture
// that fired it.
func TestOpStateHookMayReenterController(t *testing.T) {
	var c *Controller
	var mu sync.Mutex
	var observed []types.OpState
	hooks := types.Hooks{
		OnOpStateChanged: func(_ context.Context, _, _ types.OpState) error {
			mu.Lock()
			observed = append(observed, c.State())
			mu.Unlock()
			return nil
		},
	}
	c, view := newTestEventController(t, &fakeCommitter{}, hooks)
	node := boardtesting.NewFakeEventNode(42)

	done := make(chan error, 1)
	go func() {
		if err := c.Drop(node, "2024-06-05"); err != nil {
			done <- err
			return
		}
		done <- c.ConfirmMove(context.Background())
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("gesture stalled behind its own state hook")
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(observed) == 3
	}, time.Second, 5*time.Millisecond)
	require.Len(t, view.Relocations, 1)
	assert.Equal(t, types.OpIdle, c.State())
}

func TestConfirmMove_TransportError(t *testing.T) {
	committer := &fakeCommitter{err: &types.TransportError{
		Op: "event_drop", URL: "http://x", Err: errors.New("connection refused"),
	}}
	c, view := newTestEventController(t, committer, types.Hooks{})
	node := boardtesting.NewFakeEventNode(42)

	require.NoError(t, c.Drop(node, "2024-06-05"))
	err := c.ConfirmMove(context.Background())

	var te *types.TransportError
	require.ErrorAs(t, err, &te)
	require.Len(t, view.Alerts, 1)
	// A single commit attempt, never a retry.
	assert.Equal(t, 1, committer.callCount())
}

// gestureMetrics records drop-gesture results and discards everything else.
type gestureMetrics struct {
	mu      sync.Mutex
	results []string
}

func (g *gestureMetrics) RecordStoreMutation(_ string)        {}
func (g *gestureMetrics) RecordSyncCycle(_ float64, _ string) {}
func (g *gestureMetrics) RecordViolationCount(_ int)          {}
func (g *gestureMetrics) RecordDropGesture(_ string, result string) {
	g.mu.Lock()
	g.results = append(g.results, result)
	g.mu.Unlock()
}

func (g *gestureMetrics) recorded() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.results...)
}

// Each terminal gesture outcome reports the result label the
// MetricsCollector contract names.
func TestDropGestureResultLabels(t *testing.T) {
	record := func(committer *fakeCommitter, drive func(c *Controller)) []string {
		rec := &gestureMetrics{}
		c := New(committer, boardtesting.NewFakeView(), boardtesting.NewTestLogger(t), rec, types.Hooks{})
		drive(c)
		return rec.recorded()
	}

	results := record(&fakeCommitter{}, func(c *Controller) {
		require.NoError(t, c.Drop(boardtesting.NewFakeEventNode(1), "2024-06-05"))
		require.NoError(t, c.ConfirmMove(context.Background()))
	})
	assert.Equal(t, []string{"committed"}, results)

	results = record(&fakeCommitter{err: errors.New("boom")}, func(c *Controller) {
		require.NoError(t, c.Drop(boardtesting.NewFakeEventNode(1), "2024-06-05"))
		require.Error(t, c.ConfirmMove(context.Background()))
	})
	assert.Equal(t, []string{"failed"}, results)

	results = record(&fakeCommitter{}, func(c *Controller) {
		require.NoError(t, c.Drop(boardtesting.NewFakeEventNode(1), "2024-06-05"))
		require.NoError(t, c.Cancel())
	})
	assert.Equal(t, []string{"cancelled"}, results)

	results = record(&fakeCommitter{}, func(c *Controller) {
		require.NoError(t, c.Drop(boardtesting.NewFakeEventNode(1), "2024-06-05"))
		require.ErrorIs(t, c.Drop(boardtesting.NewFakeEventNode(2), "2024-06-06"),
			types.ErrOperationInFlight)
	})
	assert.Equal(t, []string{"rejected"}, results)
}

// A Cancel racing the tail of Drop must never leave the node dimmed while
// the controller sits idle with no gesture to restore it.
func TestCancelRacingDropLeavesNodeRestored(t *testing.T) {
	c, _ := newTestEventController(t, &fakeCommitter{}, types.Hooks{})

	for i := 0; i < 200; i++ {
		node := boardtesting.NewFakeEventNode(i)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Cancel() // may land before, during, or after the drop
		}()
		require.NoError(t, c.Drop(node, "2024-06-05"))
		wg.Wait()

		if c.State() == types.OpIdle {
			assert.False(t, node.Dimmed(), "idle controller left node dimmed")
		}

		// Settle for the next round regardless of who won the race.
		if err := c.Cancel(); err != nil {
			require.ErrorIs(t, err, types.ErrNoPendingOperation)
		}
		require.Equal(t, types.OpIdle, c.State())
	}
}
