package jobs

import (
	"context"
	"log/slog"

	"fulfilment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationDispatchJob drains the outbox on a schedule. Each run picks up
// due notifications and pushes them through the message gateway; transient
// failures are retried on later runs with backoff.
type NotificationDispatchJob struct {
	handler  commands.DispatchNotificationsCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewNotificationDispatchJob creates a job that dispatches queued
// notifications on the given cron schedule (with seconds field).
func NewNotificationDispatchJob(
	handler commands.DispatchNotificationsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "notification_dispatch_job"),
	}
}

// Start begins the notification dispatch job on its schedule.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewDispatchNotificationsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Notification dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the notification dispatch job.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
