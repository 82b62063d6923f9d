package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"communitypulse/internal/middleware"
	"communitypulse/internal/models"
	"communitypulse/internal/repository"
	"communitypulse/internal/validation"

	"gorm.io/gorm"
)

type InterestService struct {
	interestRepo repository.InterestRepository
	eventRepo    repository.EventRepository
	userRepo     repository.UserRepository
	notifier     EventNotifier
	now          func() time.Time
}

type RegisterInterestInput struct {
	EventID   uint
	UserName  string
	Email     string
	Phone     string
	Attendees int
	// CallerUserID is nil for anonymous registrations.
	CallerUserID *uint
}

// EventInterests is the creator/admin view of an event's registrations.
type EventInterests struct {
	Interests      []*models.Interest `json:"interests"`
	TotalCount     int64              `json:"total_count"`
	TotalAttendees int64              `json:"total_attendees"`
}

func NewInterestService(
	interestRepo repository.InterestRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier EventNotifier,
) *InterestService {
	return &InterestService{
		interestRepo: interestRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

// RegisterInterest records intent to attend. Checks run in a fixed
// order: approval, past date, capacity, field validation, duplicate.
// Capacity and duplicate are enforced again inside the insert itself so
// concurrent submissions cannot slip past the preliminary reads.
func (s *InterestService) RegisterInterest(ctx context.Context, in RegisterInterestInput) (*models.Interest, error) {
	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotRegistrableError()
		}
		return nil, models.NewInternalError(err)
	}
	if !event.Approved {
		return nil, models.NewNotRegistrableError()
	}
	if event.Date.Before(s.now().UTC()) {
		return nil, models.NewEventPassedError()
	}
	if event.MaxAttendees != nil {
		count, countErr := s.interestRepo.CountForEvent(ctx, in.EventID)
		if countErr != nil {
			return nil, models.NewInternalError(countErr)
		}
		if count >= int64(*event.MaxAttendees) {
			return nil, models.NewCapacityExceededError()
		}
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.ValidateRegistrationInput(in.UserName, email, in.Attendees); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	interest := &models.Interest{
		UserName:  strings.TrimSpace(in.UserName),
		Email:     email,
		Phone:     in.Phone,
		Attendees: in.Attendees,
		EventID:   in.EventID,
		UserID:    in.CallerUserID,
	}

	if err := s.interestRepo.Register(ctx, interest, event.MaxAttendees); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateInterest):
			return nil, models.NewConflictError("This email is already registered for the event")
		case errors.Is(err, repository.ErrCapacityReached):
			return nil, models.NewCapacityExceededError()
		default:
			return nil, models.NewInternalError(err)
		}
	}

	if s.notifier != nil {
		creator, userErr := s.userRepo.GetByID(ctx, event.CreatedBy)
		if userErr != nil {
			middleware.Logger.ErrorContext(ctx, "failed to load creator for interest notice",
				slog.Uint64("event_id", uint64(event.ID)),
				slog.String("error", userErr.Error()),
			)
		} else {
			s.notifier.EventInterest(event, interest, creator)
		}
	}
	return interest, nil
}

// CancelInterest deletes a registration. Only the registrant who made
// it while logged in, or an admin, may cancel.
func (s *InterestService) CancelInterest(ctx context.Context, interestID uint, callerUserID uint, callerIsAdmin bool) error {
	interest, err := s.interestRepo.GetByID(ctx, interestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Interest", interestID)
		}
		return models.NewInternalError(err)
	}

	owns := interest.UserID != nil && *interest.UserID == callerUserID
	if !owns && !callerIsAdmin {
		return models.NewForbiddenError("Only the registrant can cancel this registration")
	}

	if err := s.interestRepo.Delete(ctx, interestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Interest", interestID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// ListForEvent returns an event's registrations with totals. Restricted
// to the event's creator and admins.
func (s *InterestService) ListForEvent(ctx context.Context, eventID uint, callerUserID uint, callerIsAdmin bool) (*EventInterests, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", eventID)
		}
		return nil, models.NewInternalError(err)
	}
	if event.CreatedBy != callerUserID && !callerIsAdmin {
		return nil, models.NewForbiddenError("Only the event creator can view registrations")
	}

	interests, err := s.interestRepo.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	totalAttendees, err := s.interestRepo.SumAttendeesForEvent(ctx, eventID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &EventInterests{
		Interests:      interests,
		TotalCount:     int64(len(interests)),
		TotalAttendees: totalAttendees,
	}, nil
}

// ListForUser returns the caller's registrations joined with event details.
func (s *InterestService) ListForUser(ctx context.Context, userID uint) ([]models.InterestSummary, error) {
	summaries, err := s.interestRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return summaries, nil
}
