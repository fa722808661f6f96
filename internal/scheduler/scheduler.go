package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"gamehub-backend/internal/jobs"
	"gamehub-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. Cron
// expressions run with seconds precision in the shop's local timezone so the
// digest fires after local closing, not after UTC midnight.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	loc, err := time.LoadLocation(jobRunner.Config().Billing.Timezone)
	if err != nil {
		logger.Error("Invalid billing timezone, falling back to UTC", "error", err)
		loc = time.UTC
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.EarningsDigest, s.jobs.SendEarningsDigest)
	if err != nil {
		logger.Error("Failed to register SendEarningsDigest job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.LongRentalSweep, s.jobs.SweepLongRunningRentals)
	if err != nil {
		logger.Error("Failed to register SweepLongRunningRentals job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
