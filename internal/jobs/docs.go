// Package jobs provides scheduled background tasks for the fulfilment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfilment service.
//
// # Available Jobs
//
// 1. NotificationDispatchJob - Drains the notification outbox and delivers
// queued customer messages through the configured gateway, retrying transient
// failures with exponential backoff
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, "*/5 * * * * *", logger)
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
// The dispatch job's schedule is configurable and uses the six-field cron
// format with a seconds column. The default "*/5 * * * * *" runs every five
// seconds, which keeps customer messages near-realtime without hammering the
// gateway.
//
// # Error Handling
//
// Per-notification failures are recorded against the notification row and
// retried on later runs; the job itself only fails when the outbox cannot be
// read at all. Failed job starts will stop any already running jobs.
package jobs
