package service

import (
	"context"
	"errors"
	"time"

	"communitypulse/internal/models"
	"communitypulse/internal/repository"

	"gorm.io/gorm"
)

type AdminService struct {
	userRepo         repository.UserRepository
	eventRepo        repository.EventRepository
	notificationRepo repository.NotificationRepository
}

// Analytics is the admin dashboard summary.
type Analytics struct {
	Events              *repository.EventTotals    `json:"events"`
	EventsByCategory    []repository.CategoryCount `json:"events_by_category"`
	TotalUsers          int64                      `json:"total_users"`
	RecentEvents        []*models.Event            `json:"recent_events"`
	TopCreators         []repository.CreatorCount  `json:"top_creators"`
	NotificationsFailed int64                      `json:"notifications_failed"`
}

func NewAdminService(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	notificationRepo repository.NotificationRepository,
) *AdminService {
	return &AdminService{
		userRepo:         userRepo,
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
	}
}

// ListPendingEvents returns events awaiting moderation, newest first.
func (s *AdminService) ListPendingEvents(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	events, err := s.eventRepo.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// ListFlaggedEvents returns events marked for review, newest first.
func (s *AdminService) ListFlaggedEvents(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	events, err := s.eventRepo.ListFlagged(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// ListUsers returns registered accounts, newest first.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// VerifyUser grants the verified organizer flag.
func (s *AdminService) VerifyUser(ctx context.Context, userID uint) error {
	if err := s.userRepo.SetVerified(ctx, userID, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// UnverifyUser revokes the verified organizer flag.
func (s *AdminService) UnverifyUser(ctx context.Context, userID uint) error {
	if err := s.userRepo.SetVerified(ctx, userID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// ListUserEvents returns every event a user has created, including
// pending and flagged ones.
func (s *AdminService) ListUserEvents(ctx context.Context, userID uint, limit, offset int) ([]*models.Event, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, models.NewInternalError(err)
	}
	events, err := s.eventRepo.ListByCreator(ctx, userID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// ListEventNotifications returns the notification audit trail for an
// event, newest first.
func (s *AdminService) ListEventNotifications(ctx context.Context, eventID uint, limit, offset int) ([]*models.Notification, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", eventID)
		}
		return nil, models.NewInternalError(err)
	}
	notifications, err := s.notificationRepo.ListForEvent(ctx, eventID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

// BanUser blocks an account from logging in and from authenticated
// mutations. Administrators cannot be banned.
func (s *AdminService) BanUser(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		return models.NewInternalError(err)
	}
	if user.IsAdmin {
		return models.NewValidationError("Cannot ban an administrator")
	}
	if err := s.userRepo.SetBanned(ctx, userID, true); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// UnbanUser lifts a ban.
func (s *AdminService) UnbanUser(ctx context.Context, userID uint) error {
	if err := s.userRepo.SetBanned(ctx, userID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetAnalytics assembles the dashboard summary.
func (s *AdminService) GetAnalytics(ctx context.Context) (*Analytics, error) {
	totals, err := s.eventRepo.Totals(ctx, time.Now().UTC())
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	byCategory, err := s.eventRepo.CountByCategory(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	recent, err := s.eventRepo.Recent(ctx, 10)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	topCreators, err := s.eventRepo.TopCreators(ctx, 5)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	failed, err := s.notificationRepo.CountByStatus(ctx, models.NotificationFailed)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &Analytics{
		Events:              totals,
		EventsByCategory:    byCategory,
		TotalUsers:          totalUsers,
		RecentEvents:        recent,
		TopCreators:         topCreators,
		NotificationsFailed: failed,
	}, nil
}
