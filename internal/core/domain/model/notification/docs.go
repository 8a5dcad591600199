// Package notification contains the NotificationEvent aggregate and the closed
// set of customer-facing event types.
//
// A NotificationEvent is created exactly once per (order, event type) pair when
// an order or delivery state transition fires. Its dedupe key makes customer
// messaging at-most-once under webhook replays and transition retries: the
// persistence layer rejects a second event with the same key, and a sent event
// is immutable. Undelivered events carry their own retry schedule.
package notification
