package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"commerce/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleOrderJob *StaleOrderCancellationJob
}

// NewJobManager creates a new job manager with all required jobs.
// A non-positive staleOrderTTL disables the stale order sweep entirely.
func NewJobManager(
	cancelStaleOrdersHandler commands.CancelStaleOrdersCommandHandler,
	staleOrderTTL time.Duration,
	logger *slog.Logger,
) *JobManager {
	manager := &JobManager{}

	if staleOrderTTL > 0 {
		manager.staleOrderJob = NewStaleOrderCancellationJob(cancelStaleOrdersHandler, staleOrderTTL, logger)
	}

	return manager
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.staleOrderJob != nil {
		if err := jm.staleOrderJob.Start(); err != nil {
			return fmt.Errorf("failed to start stale order sweep: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.staleOrderJob != nil {
		jm.staleOrderJob.Stop()
	}
}
