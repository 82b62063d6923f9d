// Package scheduler runs the recurring next-day event reminder scan.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"communitypulse/internal/middleware"
	"communitypulse/internal/observability"
	"communitypulse/internal/repository"
	"communitypulse/internal/service"
)

// ReminderScheduler scans once per day for approved events happening
// tomorrow and hands each batch of registrants to the notifier. It runs
// in a single process; re-running within the same window re-sends.
type ReminderScheduler struct {
	eventRepo    repository.EventRepository
	interestRepo repository.InterestRepository
	notifier     service.EventNotifier
	now          func() time.Time
}

func NewReminderScheduler(
	eventRepo repository.EventRepository,
	interestRepo repository.InterestRepository,
	notifier service.EventNotifier,
) *ReminderScheduler {
	return &ReminderScheduler{
		eventRepo:    eventRepo,
		interestRepo: interestRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Start runs the daily loop until ctx is cancelled. Each cycle fires at
// the next UTC midnight.
func (s *ReminderScheduler) Start(ctx context.Context) {
	go func() {
		for {
			next := s.nextMidnight()
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				if _, err := s.RunOnce(ctx); err != nil {
					middleware.Logger.ErrorContext(ctx, "reminder scan failed", slog.String("error", err.Error()))
				}
			}
		}
	}()
}

func (s *ReminderScheduler) nextMidnight() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

// RunOnce performs one scan over the window [tomorrow 00:00, +24h) in
// UTC and returns the number of events processed. One event's failure
// never aborts the rest of the scan.
func (s *ReminderScheduler) RunOnce(ctx context.Context) (int, error) {
	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	events, err := s.eventRepo.ListApprovedInWindow(ctx, from, to)
	if err != nil {
		observability.ReminderRuns.WithLabelValues("error").Inc()
		return 0, err
	}

	processed := 0
	for _, event := range events {
		interests, listErr := s.interestRepo.ListForEvent(ctx, event.ID)
		if listErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to load registrants for reminder",
				slog.Uint64("event_id", uint64(event.ID)),
				slog.String("error", listErr.Error()),
			)
			continue
		}
		if len(interests) == 0 {
			continue
		}
		s.notifier.EventReminder(event, interests)
		processed++
		observability.ReminderEventsProcessed.Inc()
	}

	observability.ReminderRuns.WithLabelValues("ok").Inc()
	middleware.Logger.InfoContext(ctx, "reminder scan completed",
		slog.Int("events_in_window", len(events)),
		slog.Int("events_notified", processed),
		slog.Time("window_start", from),
	)
	return processed, nil
}
