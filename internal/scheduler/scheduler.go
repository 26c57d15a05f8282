package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"gamerent-backend/internal/jobs"
	"gamerent-backend/internal/logger"
)

// Scheduler manages the recurring sweep. The sweep itself knows nothing
// about cron; this wrapper is the only place the timer mechanism lives.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler registers the sweep at the given cron expression (seconds
// precision, UTC).
func NewScheduler(jobRunner *jobs.JobRunner, sweepSpec string) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	_, err := c.AddFunc(sweepSpec, func() {
		s.jobs.RunScheduledSweep(context.Background())
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Sweep registered", "schedule", sweepSpec)
	return s, nil
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Cron scheduler started")
}

// Stop gracefully stops the cron scheduler, waiting for a running sweep to
// finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
