// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to drain queued outbox messages to the broker
// 2. HandoffCodeSweepJob - Runs every minute to clear handoff codes whose delivery window lapsed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(relayOutboxHandler, sweepExpiredCodesHandler, relayBatchSize, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The relay job uses the cron expression "* * * * * *" and runs every second,
// keeping the delay between a committed state change and its customer
// notification short. The sweep job runs at second zero of every minute,
// which is frequent enough for code windows measured in hours.
//
// # Error Handling
//
// - Both jobs log failures and count them in the operation error metric
// - A failed pass never stops the schedule, the next tick retries
// - Failed job starts will stop any already running jobs
package jobs
