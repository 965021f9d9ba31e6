package jobs

import (
	"fmt"

	"dispatch/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob      *OutboxRelayJob
	handoffCodeSweepJob *HandoffCodeSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	relayOutboxHandler commands.RelayOutboxCommandHandler,
	sweepExpiredCodesHandler commands.SweepExpiredCodesCommandHandler,
	relayBatchSize int,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob:      NewOutboxRelayJob(relayOutboxHandler, relayBatchSize, logger),
		handoffCodeSweepJob: NewHandoffCodeSweepJob(sweepExpiredCodesHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.handoffCodeSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start handoff code sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.handoffCodeSweepJob.Stop()
	jm.outboxRelayJob.Stop()
}
