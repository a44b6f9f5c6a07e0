package remote

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/calendario/shiftboard/internal/api"
	"github.com/calendario/shiftboard/types"
)

// Sync cycle outcomes recorded per cycle.
const (
	outcomeApplied     = "applied"
	outcomeSkipped     = "skipped"
	outcomeRecalcError = "recalc_error"
	outcomeCheckError  = "check_error"
)

// DefaultViolationSubject is the subject violation-change events are
// published on when none is configured.
const DefaultViolationSubject = "calendario.violations"

// Engine is the slice of the API client the sync depends on: the two
// idempotent full-snapshot calls.
type Engine interface {
	Recalculate(ctx context.Context, month string, snap types.Snapshot) (*api.RecalcResult, error)
	CheckViolations(ctx context.Context, month string, snap types.Snapshot) (*api.CheckResult, error)
}

// SnapshotSource produces the current full assignment snapshot.
type SnapshotSource interface {
	Snapshot() types.Snapshot
}

// Renderer applies check results onto the board's annotation surfaces.
type Renderer interface {
	RenderViolations(violations []types.Violation)
	RenderConsecutive(info types.ConsecutiveWorkInfo)
	Clear()
}

// Options configures a Sync.
type Options struct {
	// Month is the board's month key ("YYYY-MM"), sent with every snapshot.
	Month string

	// Subject is the publish subject for violation-change events. Empty
	// falls back to DefaultViolationSubject. Ignored when Publisher is nil.
	Subject string

	// Publisher, when set, receives a JSON event each time the violation
	// set changes across applied cycles.
	Publisher types.Publisher
}

// Sync owns the reconciliation loop between the local store and the server.
type Sync struct {
	engine   Engine
	source   SnapshotSource
	counters types.CounterView
	renderer Renderer
	opts     Options

	logger  types.Logger
	metrics types.MetricsCollector
	hooks   types.Hooks

	// running/dirty implement the coalescing trigger.
	mu      sync.Mutex
	running bool
	dirty   bool

	// Cycle-local state. Only ever touched by the goroutine that owns the
	// running flag, so no extra locking.
	lastAppliedHash uint64
	hashValid       bool
	firstCheckDone  bool
	lastViolations  []types.Violation
	violationHash   uint64
	violationsSeen  bool
}

// New creates a Sync. The engine, source, counters and renderer are all
// required; Options tune the rest.
func New(engine Engine, source SnapshotSource, counters types.CounterView, renderer Renderer,
	opts Options, logger types.Logger, metrics types.MetricsCollector, hooks types.Hooks,
) *Sync {
	if opts.Subject == "" {
		opts.Subject = DefaultViolationSubject
	}

	return &Sync{
		engine:   engine,
		source:   source,
		counters: counters,
		renderer: renderer,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
		hooks:    hooks,
	}
}

// InitialSync runs one synchronous cycle to reconcile the freshly bound
// board with the server. Unlike background cycles its error is returned: the
// caller decides whether a board that never checked cleanly should load.
//
// If this very first check fails, existing annotations are cleared rather
// than left standing, since nothing has vouched for them yet.
func (s *Sync) InitialSync(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return types.ErrOperationInFlight
	}
	s.running = true
	s.mu.Unlock()

	err := s.runLoop(ctx)

	return err
}

// Trigger requests a reconciliation cycle. Returns immediately: if no cycle
// is running one starts in the background, otherwise the running loop is
// marked dirty and reruns when its current cycle finishes. Coalescing means
// any burst of triggers costs at most one extra cycle.
func (s *Sync) Trigger(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.dirty = true
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		_ = s.runLoop(ctx)
	}()
}

// runLoop runs cycles until no trigger arrived during the last one, then
// releases the running flag. Returns the last cycle's error.
func (s *Sync) runLoop(ctx context.Context) error {
	var err error
	for {
		err = s.cycle(ctx)

		s.mu.Lock()
		if !s.dirty || ctx.Err() != nil {
			s.running = false
			s.mu.Unlock()
			return err
		}
		s.dirty = false
		s.mu.Unlock()
	}
}

// cycle performs one full reconciliation round trip.
func (s *Sync) cycle(ctx context.Context) error {
	cycleID := uuid.NewString()
	start := time.Now()

	snap := s.source.Snapshot()
	hash := xxh3.HashString(snap.Canonical())

	// Identical to what the server last confirmed: nothing to do. Only
	// valid once at least one check has been applied.
	if s.firstCheckDone && s.hashValid && hash == s.lastAppliedHash {
		s.logger.Debug("sync cycle skipped, snapshot unchanged",
			"cycle_id", cycleID, "hash", hash)
		s.metrics.RecordSyncCycle(time.Since(start).Seconds(), outcomeSkipped)
		return nil
	}

	outcome := outcomeApplied

	// The two calls are independent; a failed recalculation must not block
	// the violation check, counters are advisory.
	recalc, err := s.engine.Recalculate(ctx, s.opts.Month, snap)
	if err != nil {
		outcome = outcomeRecalcError
		s.logger.Warn("shift count recalculation failed",
			"cycle_id", cycleID, "month", s.opts.Month, "error", err)
		s.fireError(err)
	} else {
		s.applyCounts(recalc)
	}

	check, err := s.engine.CheckViolations(ctx, s.opts.Month, snap)
	if err != nil {
		s.logger.Warn("violation check failed",
			"cycle_id", cycleID, "month", s.opts.Month, "error", err)
		s.fireError(err)
		if !s.firstCheckDone {
			// Nothing ever vouched for the pre-rendered annotations.
			s.renderer.Clear()
		}
		s.metrics.RecordSyncCycle(time.Since(start).Seconds(), outcomeCheckError)
		return err
	}

	s.renderer.RenderViolations(check.Violations)
	s.renderer.RenderConsecutive(check.ConsecutiveWorkInfo)
	s.firstCheckDone = true
	s.lastAppliedHash = hash
	s.hashValid = true

	s.notifyViolations(check.Violations)

	s.logger.Debug("sync cycle applied",
		"cycle_id", cycleID,
		"month", s.opts.Month,
		"violations", len(check.Violations),
		"elapsed", time.Since(start))
	s.metrics.RecordSyncCycle(time.Since(start).Seconds(), outcome)

	return nil
}

// applyCounts pushes the per-employee totals onto the counter view. Missing
// counters are skipped; the totals are advisory.
func (s *Sync) applyCounts(res *api.RecalcResult) {
	for employee, days := range res.Counts {
		if !s.counters.SetWorkCount(employee, days) {
			s.logger.Debug("no work counter for employee", "employee", employee)
		}
	}
	for employee, days := range res.OffCounts {
		if !s.counters.SetOffCount(employee, days) {
			s.logger.Debug("no off counter for employee", "employee", employee)
		}
	}
}

// notifyViolations fires the change hook and publishes an event when the
// applied violation set differs from the previously applied one.
func (s *Sync) notifyViolations(current []types.Violation) {
	payload, err := json.Marshal(current)
	if err != nil {
		s.logger.Error("encode violations for change detection", "error", err)
		return
	}

	hash := xxh3.Hash(payload)
	if s.violationsSeen && hash == s.violationHash {
		return
	}

	previous := s.lastViolations
	s.lastViolations = current
	s.violationHash = hash
	s.violationsSeen = true

	if s.hooks.OnViolationsChanged != nil {
		// Background dispatch: a slow consumer must not hold up the
		// coalescing loop, and a consumer that calls Trigger from the
		// hook must not deadlock on s.mu.
		go func() {
			if herr := s.hooks.OnViolationsChanged(context.Background(), previous, current); herr != nil {
				s.logger.Warn("violations-changed hook failed", "error", herr)
			}
		}()
	}

	if s.opts.Publisher == nil {
		return
	}

	event, err := json.Marshal(violationEvent{
		Month:      s.opts.Month,
		Count:      len(current),
		Violations: current,
	})
	if err != nil {
		s.logger.Error("encode violation event", "error", err)
		return
	}
	if perr := s.opts.Publisher.Publish(s.opts.Subject, event); perr != nil {
		s.logger.Warn("publish violation event failed",
			"subject", s.opts.Subject, "error", perr)
	}
}

func (s *Sync) fireError(err error) {
	if s.hooks.OnError == nil {
		return
	}
	go func() {
		if herr := s.hooks.OnError(context.Background(), err); herr != nil {
			s.logger.Warn("error hook failed", "error", herr)
		}
	}()
}

// violationEvent is the published violation-change payload.
type violationEvent struct {
	Month      string            `json:"month"`
	Count      int               `json:"count"`
	Violations []types.Violation `json:"violations"`
}
