// Package daemon runs sync passes over the profile set, on demand and on a
// periodic trigger, and exposes the result over HTTP.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	ferrors "git.home.luguber.info/inful/filesync/internal/errors"
	"git.home.luguber.info/inful/filesync/internal/logfields"
	"git.home.luguber.info/inful/filesync/internal/metrics"
	"git.home.luguber.info/inful/filesync/internal/profile"
	"git.home.luguber.info/inful/filesync/internal/state"
	"git.home.luguber.info/inful/filesync/internal/syncer"
)

// Status is the coordinator's arming state.
type Status string

const (
	StatusIdle           Status = "idle"
	StatusAutoSyncActive Status = "auto_sync_active"
)

const autoSyncJobName = "auto-sync"

// errDisarmed is returned by passes of a trigger that was disarmed while they
// waited for the running pass.
var errDisarmed = errors.New("auto-sync trigger disarmed")

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock replaces the real clock, for the scheduler and pass timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(co *Coordinator) { co.clock = c }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(co *Coordinator) {
		if r != nil {
			co.recorder = r
		}
	}
}

// WithInterval sets the initial interval in minutes.
func WithInterval(minutes int) Option {
	return func(co *Coordinator) { co.interval = state.ClampInterval(minutes) }
}

// Coordinator triggers passes over every profile and never lets two passes
// run at the same time.
type Coordinator struct {
	profiles *profile.Set
	exec     *syncer.Executor
	clock    clockwork.Clock
	recorder metrics.Recorder
	sched    *Scheduler

	// busy holds one token while a pass runs.
	busy chan struct{}

	mu        sync.Mutex
	status    Status
	interval  int
	gen       uint64
	jobID     uuid.UUID
	closed    bool
	listeners []func(Summary)
	last      *Summary
}

// NewCoordinator creates a coordinator with its own scheduler.
func NewCoordinator(profiles *profile.Set, exec *syncer.Executor, opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		profiles: profiles,
		exec:     exec,
		clock:    clockwork.NewRealClock(),
		recorder: metrics.NoopRecorder{},
		busy:     make(chan struct{}, 1),
		status:   StatusIdle,
		interval: state.DefaultIntervalMinutes,
	}
	for _, opt := range opts {
		opt(c)
	}
	sched, err := NewScheduler(c.clock)
	if err != nil {
		return nil, ferrors.ScheduleFailed("create", err)
	}
	c.sched = sched
	return c, nil
}

// Profiles returns the profile set the coordinator syncs.
func (c *Coordinator) Profiles() *profile.Set { return c.profiles }

// OnPass registers fn to receive every completed pass.
func (c *Coordinator) OnPass(fn func(Summary)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Status returns the current arming state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Interval returns the interval in minutes used by the next StartAutoSync.
func (c *Coordinator) Interval() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// Schedule returns the shared schedule for persistence.
func (c *Coordinator) Schedule() state.Schedule {
	c.mu.Lock()
	defer c.mu.Unlock()
	return state.Schedule{IntervalMinutes: c.interval, AutoSync: c.status == StatusAutoSyncActive}
}

// LastSummary returns the most recent pass, if any.
func (c *Coordinator) LastSummary() (Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Summary{}, false
	}
	return *c.last, true
}

// SetInterval records the interval for the next StartAutoSync. An armed
// trigger keeps its current period.
func (c *Coordinator) SetInterval(minutes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = state.ClampInterval(minutes)
}

// SyncAllNow runs one pass over every profile and returns its summary. When
// another pass is running it waits for it first.
func (c *Coordinator) SyncAllNow(ctx context.Context) (Summary, error) {
	return c.runPass(ctx, TriggerManual, nil)
}

// SyncAllNowAsync runs a pass in the background and delivers the result on the
// returned channel, which is closed afterwards.
func (c *Coordinator) SyncAllNowAsync(ctx context.Context) <-chan PassResult {
	ch := make(chan PassResult, 1)
	go func() {
		defer close(ch)
		sum, err := c.runPass(ctx, TriggerManual, nil)
		ch <- PassResult{Summary: sum, Err: err}
	}()
	return ch
}

// StartAutoSync arms the periodic trigger: one pass right away, then one every
// interval. Any previous trigger is disarmed first.
func (c *Coordinator) StartAutoSync(minutes int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ferrors.CoordinatorClosed()
	}

	c.disarmLocked()
	c.interval = state.ClampInterval(minutes)
	gen := c.gen
	sched := state.Schedule{IntervalMinutes: c.interval}

	id, err := c.sched.ScheduleEvery(autoSyncJobName, sched.Interval(), func() { c.scheduledTick(gen) })
	if err != nil {
		return ferrors.ScheduleFailed("start", err)
	}
	c.jobID = id
	c.status = StatusAutoSyncActive
	c.recorder.SetAutoSyncActive(true)
	slog.Info("Auto-sync started",
		logfields.IntervalMinutes(c.interval),
		logfields.ScheduleID(id.String()))
	return nil
}

// StopAutoSync disarms the periodic trigger. A pass already running completes.
func (c *Coordinator) StopAutoSync() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusAutoSyncActive {
		return
	}
	c.disarmLocked()
	slog.Info("Auto-sync stopped")
}

// Close disarms the trigger and shuts the scheduler down. Running passes
// finish unless ctx ends first.
func (c *Coordinator) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.disarmLocked()
	c.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- c.sched.Stop() }()
	select {
	case err := <-done:
		if err != nil {
			return ferrors.ScheduleFailed("shutdown", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler shutdown: %w", ctx.Err())
	}
}

// disarmLocked removes the job and invalidates callbacks of the old arming.
func (c *Coordinator) disarmLocked() {
	c.gen++
	if c.jobID != uuid.Nil {
		if err := c.sched.Remove(c.jobID); err != nil {
			slog.Warn("Failed to remove auto-sync job", logfields.Error(err))
		}
		c.jobID = uuid.Nil
	}
	if c.status == StatusAutoSyncActive {
		c.recorder.SetAutoSyncActive(false)
	}
	c.status = StatusIdle
}

func (c *Coordinator) scheduledTick(gen uint64) {
	armed := func() bool { return c.gen == gen && c.status == StatusAutoSyncActive }
	_, err := c.runPass(context.Background(), TriggerScheduled, armed)
	switch {
	case err == nil:
	case errors.Is(err, errDisarmed):
		slog.Debug("Ignoring tick from disarmed trigger")
	default:
		slog.Warn("Scheduled pass failed", logfields.Error(err))
	}
}

// admit reports whether a pass may run. armed, when set, is called with mu
// held and must hold for scheduled passes.
func (c *Coordinator) admit(armed func() bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if armed != nil {
		if c.closed || !armed() {
			return errDisarmed
		}
		return nil
	}
	if c.closed {
		return ferrors.CoordinatorClosed()
	}
	return nil
}

func (c *Coordinator) runPass(ctx context.Context, trigger Trigger, armed func() bool) (Summary, error) {
	if err := c.admit(armed); err != nil {
		return Summary{}, err
	}

	select {
	case c.busy <- struct{}{}:
	case <-ctx.Done():
		return Summary{}, fmt.Errorf("waiting for running pass: %w", ctx.Err())
	}
	// Stop or Close may have happened while waiting.
	if err := c.admit(armed); err != nil {
		<-c.busy
		return Summary{}, err
	}

	passID := uuid.NewString()
	started := c.clock.Now()
	slog.Debug("Sync pass started", logfields.PassID(passID), logfields.Trigger(string(trigger)))

	snaps := c.profiles.Snapshots()
	outcomes := make([]syncer.Outcome, 0, len(snaps))
	for i, snap := range snaps {
		outcomes = append(outcomes, c.exec.Sync(i+1, snap))
	}
	sum := newSummary(passID, trigger, started, c.clock.Now(), outcomes)
	<-c.busy

	c.recorder.ObservePassDuration(string(trigger), sum.Duration())
	c.recorder.IncPassOutcome(string(trigger), metrics.ClassifyPass(sum.Attempted, sum.Copied))
	c.recorder.SetLastPassCounts(sum.Attempted, sum.Copied)
	slog.Info("Sync pass finished",
		logfields.PassID(passID),
		logfields.Trigger(string(trigger)),
		logfields.Attempted(sum.Attempted),
		logfields.Copied(sum.Copied),
		logfields.Failed(sum.Failed()),
		logfields.DurationMS(float64(sum.Duration().Microseconds())/1000))

	c.mu.Lock()
	c.last = &sum
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(sum)
	}
	return sum, nil
}
