package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "communitypulse_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// NotificationsDispatched counts outbound messages by type, channel and outcome.
	NotificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "communitypulse_notifications_dispatched_total",
		Help: "Total number of dispatched notifications by type, channel and outcome",
	}, []string{"type", "channel", "outcome"})

	// NotificationQueueOverflows counts dispatch tasks that bypassed the worker queue.
	NotificationQueueOverflows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "communitypulse_notification_queue_overflows_total",
		Help: "Total number of dispatch tasks run outside the worker pool because the queue was full",
	})

	// ReminderRuns counts reminder scheduler scans by outcome.
	ReminderRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "communitypulse_reminder_runs_total",
		Help: "Total number of reminder scheduler runs by outcome",
	}, []string{"outcome"})

	// ReminderEventsProcessed counts events handled by reminder scans.
	ReminderEventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "communitypulse_reminder_events_processed_total",
		Help: "Total number of events processed by the reminder scheduler",
	})

	// GeocodeLookups counts geocoding lookups by result (hit, miss, error).
	GeocodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "communitypulse_geocode_lookups_total",
		Help: "Total number of geocoding lookups by result",
	}, []string{"result"})
)
