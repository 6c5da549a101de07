// Package jobs provides the scheduled background tasks of the marketplace,
// built on github.com/robfig/cron/v3 with second-level schedules. All jobs
// are coordinated through JobManager: start all on boot, stop all on
// shutdown.
package jobs

import (
	"fmt"

	"parcelmatch/internal/core/application/usecases/commands"

	"github.com/rs/zerolog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	deadlineExpiryJob *DeadlineExpiryJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	expireBidsHandler commands.ExpireBidsCommandHandler,
	logger zerolog.Logger,
) *JobManager {
	return &JobManager{
		deadlineExpiryJob: NewDeadlineExpiryJob(expireBidsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.deadlineExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start deadline expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deadlineExpiryJob.Stop()
}
