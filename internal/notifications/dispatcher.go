package notifications

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"communitypulse/internal/middleware"
	"communitypulse/internal/models"
	"communitypulse/internal/observability"
	"communitypulse/internal/repository"
)

const jobTimeout = 30 * time.Second

// Dispatcher fans event lifecycle notifications out to recipients on a
// bounded worker pool. Every delivery attempt leaves an audit row; a
// delivery failure never propagates back to the API request that
// triggered it.
type Dispatcher struct {
	repo      repository.NotificationRepository
	messenger Messenger
	jobs      chan func(context.Context)
	workers   sync.WaitGroup
	inflight  sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher creates a dispatcher with the given pool size and queue
// depth. Zero or negative values fall back to defaults.
func NewDispatcher(repo repository.NotificationRepository, messenger Messenger, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		repo:      repo,
		messenger: messenger,
		jobs:      make(chan func(context.Context), queueSize),
	}
	for i := 0; i < workers; i++ {
		d.workers.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.workers.Done()
	for job := range d.jobs {
		d.run(job)
	}
}

func (d *Dispatcher) run(job func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			middleware.Logger.Error("PANIC in notification job",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	job(ctx)
}

// enqueue hands the job to the pool. A full queue never blocks the
// caller; the job runs on a detached goroutine instead.
func (d *Dispatcher) enqueue(job func(context.Context)) {
	d.inflight.Add(1)
	wrapped := func(ctx context.Context) {
		defer d.inflight.Done()
		job(ctx)
	}
	select {
	case d.jobs <- wrapped:
	default:
		observability.NotificationQueueOverflows.Inc()
		go d.run(wrapped)
	}
}

// Close drains in-flight work and stops the pool.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.inflight.Wait()
		close(d.jobs)
		d.workers.Wait()
	})
}

// EventInterest tells the event's creator about a new registration.
func (d *Dispatcher) EventInterest(event *models.Event, interest *models.Interest, creator *models.User) {
	if event == nil || interest == nil || creator == nil {
		return
	}
	msg := InterestMessage(event, interest, creator.Name)
	d.enqueue(func(ctx context.Context) {
		d.deliver(ctx, models.NotificationInterest, event.ID, &creator.ID, creator.Email, "", msg)
	})
}

// EventModerated tells the event's creator the moderation outcome.
func (d *Dispatcher) EventModerated(event *models.Event, creator *models.User, approved bool) {
	if event == nil || creator == nil {
		return
	}
	typ := models.NotificationApproval
	if !approved {
		typ = models.NotificationRejection
	}
	msg := ModerationMessage(event, creator.Name, approved)
	d.enqueue(func(ctx context.Context) {
		d.deliver(ctx, typ, event.ID, &creator.ID, creator.Email, "", msg)
	})
}

// EventUpdated tells every registrant that the event changed.
func (d *Dispatcher) EventUpdated(event *models.Event, interests []*models.Interest, changes []string) {
	d.fanOut(event, interests, func(i *models.Interest) (models.NotificationType, Message) {
		return models.NotificationUpdate, UpdateMessage(event, i.UserName, changes)
	})
}

// EventCancelled tells every registrant that the event was cancelled.
func (d *Dispatcher) EventCancelled(event *models.Event, interests []*models.Interest) {
	d.fanOut(event, interests, func(i *models.Interest) (models.NotificationType, Message) {
		return models.NotificationCancellation, CancellationMessage(event, i.UserName)
	})
}

// EventReminder tells every registrant the event happens tomorrow.
func (d *Dispatcher) EventReminder(event *models.Event, interests []*models.Interest) {
	d.fanOut(event, interests, func(i *models.Interest) (models.NotificationType, Message) {
		return models.NotificationReminder, ReminderMessage(event, i.UserName)
	})
}

func (d *Dispatcher) fanOut(event *models.Event, interests []*models.Interest, render func(*models.Interest) (models.NotificationType, Message)) {
	if event == nil {
		return
	}
	for _, interest := range interests {
		if interest == nil {
			continue
		}
		typ, msg := render(interest)
		i := interest
		d.enqueue(func(ctx context.Context) {
			d.deliver(ctx, typ, event.ID, i.UserID, i.Email, i.Phone, msg)
		})
	}
}

// deliver sends the rendered message on each applicable channel, one
// audit row per attempt. SMS goes out only when the recipient left a
// phone number and the message has an SMS rendering.
func (d *Dispatcher) deliver(ctx context.Context, typ models.NotificationType, eventID uint, userID *uint, email, phone string, msg Message) {
	d.attempt(ctx, &models.Notification{
		UserID:  userID,
		EventID: eventID,
		Email:   email,
		Type:    typ,
		Content: msg.Body,
	}, "email", func(ctx context.Context) error {
		return d.messenger.SendEmail(ctx, email, msg.Subject, msg.Body)
	})

	if phone == "" || msg.SMSBody == "" {
		return
	}
	d.attempt(ctx, &models.Notification{
		UserID:  userID,
		EventID: eventID,
		Email:   email,
		Phone:   phone,
		Type:    typ,
		Content: msg.SMSBody,
	}, "sms", func(ctx context.Context) error {
		return d.messenger.SendSMS(ctx, phone, msg.SMSBody)
	})
}

func (d *Dispatcher) attempt(ctx context.Context, record *models.Notification, channel string, send func(context.Context) error) {
	audited := true
	if err := d.repo.Create(ctx, record); err != nil {
		// Sending still proceeds; the audit trail is best effort.
		audited = false
		middleware.Logger.ErrorContext(ctx, "failed to record notification",
			slog.String("type", string(record.Type)),
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
	}

	if err := send(ctx); err != nil {
		observability.NotificationsDispatched.WithLabelValues(string(record.Type), channel, "failed").Inc()
		middleware.Logger.ErrorContext(ctx, "notification delivery failed",
			slog.String("type", string(record.Type)),
			slog.String("channel", channel),
			slog.Uint64("event_id", uint64(record.EventID)),
			slog.String("error", err.Error()),
		)
		if audited {
			if markErr := d.repo.MarkFailed(ctx, record.ID); markErr != nil {
				middleware.Logger.ErrorContext(ctx, "failed to mark notification failed", slog.String("error", markErr.Error()))
			}
		}
		return
	}

	observability.NotificationsDispatched.WithLabelValues(string(record.Type), channel, "sent").Inc()
	if audited {
		if markErr := d.repo.MarkSent(ctx, record.ID); markErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to mark notification sent", slog.String("error", markErr.Error()))
		}
	}
}
