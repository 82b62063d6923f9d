package repository

import (
	"context"
	"errors"
	"time"

	"communitypulse/internal/models"

	"gorm.io/gorm"
)

// Registration outcomes the service layer maps onto API errors.
var (
	ErrDuplicateInterest = errors.New("interest already registered for this email")
	ErrCapacityReached   = errors.New("event has reached its registration capacity")
)

// InterestRepository defines the interface for registration data operations
type InterestRepository interface {
	Register(ctx context.Context, interest *models.Interest, maxAttendees *int) error
	GetByID(ctx context.Context, id uint) (*models.Interest, error)
	Delete(ctx context.Context, id uint) error
	CountForEvent(ctx context.Context, eventID uint) (int64, error)
	SumAttendeesForEvent(ctx context.Context, eventID uint) (int64, error)
	ListForEvent(ctx context.Context, eventID uint) ([]*models.Interest, error)
	ListForUser(ctx context.Context, userID uint) ([]models.InterestSummary, error)
}

// interestRepository implements InterestRepository
type interestRepository struct {
	db *gorm.DB
}

// NewInterestRepository creates a new interest repository
func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

// Register inserts the registration only while the event still has room
// and the email has not registered yet. Both checks run inside the
// INSERT itself, and on PostgreSQL the event row is locked first:
// under READ COMMITTED each statement sees its own snapshot, so two
// concurrent inserts for the last seat would otherwise both pass the
// COUNT subquery. The unique index on (event_id, email) backstops the
// duplicate check; the row lock is the capacity backstop.
func (r *interestRepository) Register(ctx context.Context, interest *models.Interest, maxAttendees *int) error {
	unlimited := 0
	maxValue := 0
	if maxAttendees == nil {
		unlimited = 1
	} else {
		maxValue = *maxAttendees
	}

	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SQLite serializes writers on its own; the explicit lock is
		// postgres-only. Unlimited events skip it, the unique index
		// alone covers them.
		if maxAttendees != nil && tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(
				"SELECT id FROM events WHERE id = ? FOR UPDATE", interest.EventID,
			).Error; err != nil {
				return err
			}
		}

		result := tx.Exec(
			`INSERT INTO interests (user_name, email, phone, attendees, event_id, user_id, created_at)
			 SELECT ?, ?, ?, ?, ?, ?, ?
			 WHERE NOT EXISTS (
			     SELECT 1 FROM interests WHERE event_id = ? AND LOWER(email) = LOWER(?)
			 )
			 AND (? = 1 OR (SELECT COUNT(*) FROM interests WHERE event_id = ?) < ?)`,
			interest.UserName, interest.Email, interest.Phone, interest.Attendees,
			interest.EventID, interest.UserID, now,
			interest.EventID, interest.Email,
			unlimited, interest.EventID, maxValue,
		)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.
				Model(&models.Interest{}).
				Where("event_id = ? AND LOWER(email) = LOWER(?)", interest.EventID, interest.Email).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateInterest
			}
			return ErrCapacityReached
		}

		// Raw INSERT does not populate the struct; read the row back.
		return tx.
			Where("event_id = ? AND LOWER(email) = LOWER(?)", interest.EventID, interest.Email).
			First(interest).Error
	})
}

func (r *interestRepository) GetByID(ctx context.Context, id uint) (*models.Interest, error) {
	var interest models.Interest
	if err := r.db.WithContext(ctx).Preload("Event").First(&interest, id).Error; err != nil {
		return nil, err
	}
	return &interest, nil
}

// Delete removes the registration permanently so the same email can
// register again later.
func (r *interestRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Interest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *interestRepository) CountForEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *interestRepository) SumAttendeesForEvent(ctx context.Context, eventID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(SUM(attendees), 0)").
		Scan(&total).Error
	return total, err
}

func (r *interestRepository) ListForEvent(ctx context.Context, eventID uint) ([]*models.Interest, error) {
	var interests []*models.Interest
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&interests).Error
	return interests, err
}

// ListForUser returns every registration made by the authenticated user
// joined with its event, newest first.
func (r *interestRepository) ListForUser(ctx context.Context, userID uint) ([]models.InterestSummary, error) {
	var summaries []models.InterestSummary
	err := r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Select(`interests.id as interest_id, interests.event_id, interests.attendees,
			interests.created_at as registered_at, events.title as event_title,
			events.category as event_category, events.location as event_location,
			events.date as event_date`).
		Joins("JOIN events ON events.id = interests.event_id").
		Where("interests.user_id = ?", userID).
		Order("interests.created_at DESC").
		Scan(&summaries).Error
	return summaries, err
}
