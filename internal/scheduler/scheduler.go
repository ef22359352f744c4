package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"propertydesk-backend/internal/jobs"
	"propertydesk-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
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

	// Mark overdue check-ins as no-shows
	_, err := s.cron.AddFunc(cfg.NoShowCron, s.jobs.MarkNoShowBookings)
	if err != nil {
		logger.Error("Failed to register MarkNoShowBookings job", "error", err)
	}

	// Remind guests arriving tomorrow
	_, err = s.cron.AddFunc(cfg.CheckInReminderCron, s.jobs.SendCheckInReminders)
	if err != nil {
		logger.Error("Failed to register SendCheckInReminders job", "error", err)
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
