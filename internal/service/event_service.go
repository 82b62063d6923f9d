// Package service implements the application's business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"communitypulse/internal/geo"
	"communitypulse/internal/middleware"
	"communitypulse/internal/models"
	"communitypulse/internal/repository"
	"communitypulse/internal/validation"

	"gorm.io/gorm"
)

// EventNotifier receives lifecycle facts and fans messages out without
// blocking the triggering operation.
type EventNotifier interface {
	EventInterest(event *models.Event, interest *models.Interest, creator *models.User)
	EventModerated(event *models.Event, creator *models.User, approved bool)
	EventUpdated(event *models.Event, interests []*models.Interest, changes []string)
	EventCancelled(event *models.Event, interests []*models.Interest)
	EventReminder(event *models.Event, interests []*models.Interest)
}

type EventService struct {
	eventRepo    repository.EventRepository
	interestRepo repository.InterestRepository
	userRepo     repository.UserRepository
	geocoder     geo.Geocoder
	notifier     EventNotifier
}

type CreateEventInput struct {
	UserID       uint
	Title        string
	Description  string
	Category     models.EventCategory
	Location     string
	Date         time.Time
	MaxAttendees *int
	ImageURL     string
}

// UpdateEventInput carries the editable fields. Nil pointers mean
// "leave unchanged" so a partial edit does not clobber the rest.
type UpdateEventInput struct {
	UserID       uint
	EventID      uint
	Title        *string
	Description  *string
	Category     *models.EventCategory
	Location     *string
	Date         *time.Time
	MaxAttendees *int
	ImageURL     *string
}

// EventWithDistance pairs an event with its distance from a search origin.
type EventWithDistance struct {
	*models.Event
	DistanceKm float64 `json:"distance_km"`
}

func NewEventService(
	eventRepo repository.EventRepository,
	interestRepo repository.InterestRepository,
	userRepo repository.UserRepository,
	geocoder geo.Geocoder,
	notifier EventNotifier,
) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		interestRepo: interestRepo,
		userRepo:     userRepo,
		geocoder:     geocoder,
		notifier:     notifier,
	}
}

// CreateEvent stores a new event awaiting moderation. Geocoding is best
// effort: a failed lookup logs and the event is created without
// coordinates.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	if err := validation.ValidateEventInput(in.Title, in.Category, in.Date, in.MaxAttendees); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	event := &models.Event{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     in.Category,
		Location:     strings.TrimSpace(in.Location),
		Date:         in.Date.UTC(),
		CreatedBy:    in.UserID,
		Approved:     false,
		Flagged:      false,
		MaxAttendees: in.MaxAttendees,
		ImageURL:     in.ImageURL,
	}

	s.geocodeInto(ctx, event)

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, models.NewInternalError(err)
	}
	return event, nil
}

func (s *EventService) geocodeInto(ctx context.Context, event *models.Event) {
	if s.geocoder == nil || event.Location == "" {
		return
	}
	coords, err := s.geocoder.Geocode(ctx, event.Location)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "geocoding failed",
			slog.String("location", event.Location),
			slog.String("error", err.Error()),
		)
		return
	}
	event.Latitude = &coords.Latitude
	event.Longitude = &coords.Longitude
}

// GetEvent returns the event if it is approved, or if the viewer is its
// creator or an admin. Anyone else gets not-found so that pending
// events do not leak.
func (s *EventService) GetEvent(ctx context.Context, id uint, viewerID uint, viewerIsAdmin bool) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	if !event.Approved && event.CreatedBy != viewerID && !viewerIsAdmin {
		return nil, models.NewNotFoundError("Event", id)
	}
	return event, nil
}

// ListEvents returns the public listing: approved events only, soonest
// first, optionally narrowed by category and location substring.
func (s *EventService) ListEvents(ctx context.Context, filter repository.EventFilter) ([]*models.Event, error) {
	if filter.Category != "" && !models.EventCategory(filter.Category).Valid() {
		return nil, models.NewValidationError("Invalid category filter")
	}
	events, err := s.eventRepo.ListApproved(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// ListMyEvents returns the caller's own events regardless of approval state.
func (s *EventService) ListMyEvents(ctx context.Context, userID uint, limit, offset int) ([]*models.Event, error) {
	events, err := s.eventRepo.ListByCreator(ctx, userID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// ListNearby returns approved events within radiusKm of the origin,
// closest first. Events without coordinates are skipped.
func (s *EventService) ListNearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]EventWithDistance, error) {
	if radiusKm <= 0 {
		return nil, models.NewValidationError("radius must be positive")
	}
	if limit <= 0 {
		limit = 50
	}
	// The candidate set is every approved upcoming event; distance is
	// computed in process since listings are small.
	events, err := s.eventRepo.ListApproved(ctx, repository.EventFilter{Limit: 1000})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	nearby := make([]EventWithDistance, 0)
	for _, event := range events {
		if event.Latitude == nil || event.Longitude == nil {
			continue
		}
		d := geo.Haversine(lat, lon, *event.Latitude, *event.Longitude)
		if d <= radiusKm {
			nearby = append(nearby, EventWithDistance{Event: event, DistanceKm: d})
		}
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].DistanceKm < nearby[j].DistanceKm })
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// UpdateEvent applies an edit by the creator. Admins moderate through
// approve, reject, and flag; they do not author edits. Changing the
// title, date, or location drops the event back to pending and tells
// current registrants what changed.
func (s *EventService) UpdateEvent(ctx context.Context, in UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", in.EventID)
		}
		return nil, models.NewInternalError(err)
	}
	if event.CreatedBy != in.UserID {
		return nil, models.NewForbiddenError("Only the event creator can edit this event")
	}

	var changes []string

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title != event.Title {
			changes = append(changes, fmt.Sprintf("Title changed to %q", title))
			event.Title = title
		}
	}
	if in.Date != nil {
		date := in.Date.UTC()
		if !date.Equal(event.Date) {
			changes = append(changes, fmt.Sprintf("Date changed to %s", date.Format(time.RFC3339)))
			event.Date = date
		}
	}
	locationChanged := false
	if in.Location != nil {
		location := strings.TrimSpace(*in.Location)
		if location != event.Location {
			changes = append(changes, fmt.Sprintf("Location changed to %s", location))
			event.Location = location
			locationChanged = true
		}
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, models.NewValidationError("Invalid category")
		}
		event.Category = *in.Category
	}
	if in.MaxAttendees != nil {
		if *in.MaxAttendees < 1 {
			return nil, models.NewValidationError("max_attendees must be at least 1")
		}
		event.MaxAttendees = in.MaxAttendees
	}
	if in.ImageURL != nil {
		event.ImageURL = *in.ImageURL
	}

	if err := validation.ValidateEventInput(event.Title, event.Category, event.Date, event.MaxAttendees); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if locationChanged {
		event.Latitude = nil
		event.Longitude = nil
		s.geocodeInto(ctx, event)
	}

	// A material change voids the earlier moderation decision.
	if len(changes) > 0 {
		event.Approved = false
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, models.NewInternalError(err)
	}

	if len(changes) > 0 && s.notifier != nil {
		interests, listErr := s.interestRepo.ListForEvent(ctx, event.ID)
		if listErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to load registrants for update notice",
				slog.Uint64("event_id", uint64(event.ID)),
				slog.String("error", listErr.Error()),
			)
		} else {
			s.notifier.EventUpdated(event, interests, changes)
		}
	}
	return event, nil
}

// DeleteEvent removes the event and its registrations, then tells
// registrants it was cancelled.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, userID uint, isAdmin bool) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Event", eventID)
		}
		return models.NewInternalError(err)
	}
	if event.CreatedBy != userID && !isAdmin {
		return models.NewForbiddenError("Only the event creator can delete this event")
	}

	// Snapshot registrants before the cascade removes them.
	interests, listErr := s.interestRepo.ListForEvent(ctx, eventID)
	if listErr != nil {
		middleware.Logger.ErrorContext(ctx, "failed to load registrants for cancellation notice",
			slog.Uint64("event_id", uint64(eventID)),
			slog.String("error", listErr.Error()),
		)
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return models.NewInternalError(err)
	}

	if s.notifier != nil && len(interests) > 0 {
		s.notifier.EventCancelled(event, interests)
	}
	return nil
}

// ApproveEvent makes the event publicly visible and clears any flag.
func (s *EventService) ApproveEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	return s.moderate(ctx, eventID, true)
}

// RejectEvent sends the event back to pending.
func (s *EventService) RejectEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	return s.moderate(ctx, eventID, false)
}

func (s *EventService) moderate(ctx context.Context, eventID uint, approve bool) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", eventID)
		}
		return nil, models.NewInternalError(err)
	}

	if approve {
		event.Approved = true
		event.Flagged = false
	} else {
		event.Approved = false
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, models.NewInternalError(err)
	}

	if s.notifier != nil {
		creator, userErr := s.userRepo.GetByID(ctx, event.CreatedBy)
		if userErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to load creator for moderation notice",
				slog.Uint64("event_id", uint64(eventID)),
				slog.String("error", userErr.Error()),
			)
		} else {
			s.notifier.EventModerated(event, creator, approve)
		}
	}
	return event, nil
}

// FlagEvent marks the event for review. Visibility is untouched; flag
// and approve are independent.
func (s *EventService) FlagEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", eventID)
		}
		return nil, models.NewInternalError(err)
	}
	event.Flagged = true
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, models.NewInternalError(err)
	}
	return event, nil
}
