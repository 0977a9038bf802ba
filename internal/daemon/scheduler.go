package daemon

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/filesync/internal/logfields"
)

// Scheduler wraps gocron scheduler for managing periodic tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates and starts a scheduler driven by clock. A nil clock
// means the real clock.
func NewScheduler(clock clockwork.Clock) (*Scheduler, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	s.Start()
	return &Scheduler{scheduler: s}, nil
}

// ScheduleEvery runs fn immediately and then every interval. Runs of the same
// job never overlap: a tick that arrives while fn is still running is dropped
// and the job is rescheduled.
func (s *Scheduler) ScheduleEvery(name string, interval time.Duration, fn func()) (uuid.UUID, error) {
	if interval <= 0 {
		return uuid.Nil, fmt.Errorf("interval must be positive, got %s", interval)
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName(name),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create periodic job: %w", err)
	}
	slog.Debug("Scheduled periodic job",
		logfields.ScheduleID(job.ID().String()),
		slog.String("name", name),
		slog.Duration("interval", interval))
	return job.ID(), nil
}

// Remove deletes a job. Runs already in progress finish normally.
func (s *Scheduler) Remove(id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	if err := s.scheduler.RemoveJob(id); err != nil {
		return fmt.Errorf("failed to remove job %s: %w", id, err)
	}
	return nil
}

// Jobs returns the number of scheduled jobs.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	slog.Debug("Stopping scheduler")
	return s.scheduler.Shutdown()
}
