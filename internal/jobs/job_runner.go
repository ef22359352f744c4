package jobs

import (
	"propertydesk-backend/internal/config"
	"propertydesk-backend/internal/logger"
	"propertydesk-backend/internal/repository"
	"propertydesk-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookings   repository.BookingRepository
	properties repository.PropertyRepository
	email      service.EmailService
	config     *config.Config
}

// NewJobRunner creates a new job runner with all dependencies. email may be
// nil when outgoing mail is disabled.
func NewJobRunner(bookings repository.BookingRepository, properties repository.PropertyRepository, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		bookings:   bookings,
		properties: properties,
		email:      email,
		config:     cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkNoShowBookings()
	jr.SendCheckInReminders()
}
