package jobs

import (
	"gamehub-backend/internal/config"
	"gamehub-backend/internal/logger"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	userRepo repository.UserRepository
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email  service.EmailService
	Rental service.RentalService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(userRepo repository.UserRepository, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		userRepo: userRepo,
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	log := logger.WithJob(jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	log.Info("Starting job")
	jobFunc()
	log.Info("Job completed")
}

// RunAllDailyJobs runs all daily jobs (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendEarningsDigest()
	jr.SweepLongRunningRentals()
}
