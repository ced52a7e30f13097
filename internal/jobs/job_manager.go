package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchJob *DispatchJob
}

// NewJobManager creates a job manager. The schedule is parsed up front so that a
// malformed value fails at startup.
func NewJobManager(handler dispatchHandler, dispatchSchedule string, logger *slog.Logger) (*JobManager, error) {
	job := NewDispatchJob(handler, dispatchSchedule, logger)

	if _, err := scheduleParser.Parse(job.schedule); err != nil {
		return nil, fmt.Errorf("invalid dispatch schedule %q: %w", job.schedule, err)
	}

	return &JobManager{dispatchJob: job}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dispatchJob.Stop()
}
