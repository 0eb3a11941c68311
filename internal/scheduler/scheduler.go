package scheduler

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/septivank/danube-levels-bot/tools/timeparser"
	"go.uber.org/zap"
)

// Job is one scheduled invocation. It handles its own errors.
type Job func(ctx context.Context)

// Scheduler fires a job daily at a fixed time of day
type Scheduler struct {
	clock    clockwork.Clock
	at       timeparser.Clock
	location *time.Location
	interval time.Duration
	job      Job
	logger   *zap.Logger
}

// Config holds scheduler settings
type Config struct {
	Clock    clockwork.Clock
	At       timeparser.Clock
	Location *time.Location
	Interval time.Duration
	Job      Job
	Logger   *zap.Logger
}

// New creates a new scheduler
func New(cfg Config) *Scheduler {
	return &Scheduler{
		clock:    cfg.Clock,
		at:       cfg.At,
		location: cfg.Location,
		interval: cfg.Interval,
		job:      cfg.Job,
		logger:   cfg.Logger,
	}
}

// FirstFire returns the first fire instant for a process started at now
func (s *Scheduler) FirstFire(now time.Time) time.Time {
	return timeparser.NextAt(now.In(s.location), s.at)
}

// Run waits for each fire instant and runs the job, until ctx is cancelled.
// The job runs on the calling goroutine, so invocations never overlap, and it
// gets a context that is not cancelled with ctx: a started invocation always
// runs to completion. Each fire is exactly one interval after the previous one.
func (s *Scheduler) Run(ctx context.Context) error {
	next := s.FirstFire(s.clock.Now())

	for {
		s.logger.Info("next update scheduled", zap.Time("at", next))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(next.Sub(s.clock.Now())):
		}

		s.logger.Info("firing scheduled update", zap.Time("scheduled_at", next))
		s.job(context.WithoutCancel(ctx))

		next = next.Add(s.interval)
	}
}
