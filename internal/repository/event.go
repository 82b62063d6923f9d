package repository

import (
	"context"
	"time"

	"communitypulse/internal/cache"
	"communitypulse/internal/models"

	"gorm.io/gorm"
)

// EventFilter narrows the public event listing.
type EventFilter struct {
	Category string
	Location string
	Limit    int
	Offset   int
}

// CategoryCount is an aggregate of events per category.
type CategoryCount struct {
	Category models.EventCategory `json:"category"`
	Count    int64                `json:"count"`
}

// CreatorCount is an aggregate of events per creating user.
type CreatorCount struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}

// EventTotals summarizes the moderation pipeline for the admin dashboard.
type EventTotals struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Flagged  int64 `json:"flagged"`
	Upcoming int64 `json:"upcoming"`
}

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
	ListApproved(ctx context.Context, filter EventFilter) ([]*models.Event, error)
	ListApprovedInWindow(ctx context.Context, from, to time.Time) ([]*models.Event, error)
	ListPending(ctx context.Context, limit, offset int) ([]*models.Event, error)
	ListFlagged(ctx context.Context, limit, offset int) ([]*models.Event, error)
	ListByCreator(ctx context.Context, userID uint, limit, offset int) ([]*models.Event, error)
	Totals(ctx context.Context, now time.Time) (*EventTotals, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	Recent(ctx context.Context, limit int) ([]*models.Event, error)
	TopCreators(ctx context.Context, limit int) ([]CreatorCount, error)
}

// eventRepository implements EventRepository
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// withInterestsCount adds a subquery so every listing carries its
// registration count in a single query.
func (r *eventRepository) withInterestsCount(db *gorm.DB) *gorm.DB {
	return db.Select("events.*, (SELECT COUNT(*) FROM interests WHERE interests.event_id = events.id) as interests_count")
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	err := r.db.WithContext(ctx).Create(event).Error
	if err == nil {
		cache.InvalidateEventsList(ctx)
	}
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.withInterestsCount(r.db.WithContext(ctx)).
		Preload("Creator").
		First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.EventKey(event.ID))
	cache.InvalidateEventsList(ctx)
	return nil
}

// Delete removes the event together with its registrations and queued
// notification records in one transaction.
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Interest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ? AND status = ?", id, models.NotificationPending).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.EventKey(id))
	cache.InvalidateEventsList(ctx)
	return nil
}

func (r *eventRepository) ListApproved(ctx context.Context, filter EventFilter) ([]*models.Event, error) {
	key := cache.EventsListKey(filter.Category, filter.Location, filter.Limit, filter.Offset)
	return cache.Aside(ctx, key, cache.EventsListTTL, func(ctx context.Context) ([]*models.Event, error) {
		var events []*models.Event
		query := r.withInterestsCount(r.db.WithContext(ctx)).
			Where("approved = ?", true)
		if filter.Category != "" {
			query = query.Where("category = ?", filter.Category)
		}
		if filter.Location != "" {
			query = query.Where("LOWER(location) LIKE LOWER(?)", "%"+filter.Location+"%")
		}
		err := query.
			Order("date ASC").
			Limit(filter.Limit).
			Offset(filter.Offset).
			Find(&events).Error
		return events, err
	})
}

// ListApprovedInWindow returns approved events whose date falls in
// [from, to). Used by the reminder scan.
func (r *eventRepository) ListApprovedInWindow(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).
		Where("approved = ? AND date >= ? AND date < ?", true, from, to).
		Order("date ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) ListPending(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	return r.listByFlags(ctx, "approved = ?", []interface{}{false}, limit, offset)
}

func (r *eventRepository) ListFlagged(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	return r.listByFlags(ctx, "flagged = ?", []interface{}{true}, limit, offset)
}

func (r *eventRepository) listByFlags(ctx context.Context, cond string, args []interface{}, limit, offset int) ([]*models.Event, error) {
	var events []*models.Event
	err := r.withInterestsCount(r.db.WithContext(ctx)).
		Preload("Creator").
		Where(cond, args...).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) ListByCreator(ctx context.Context, userID uint, limit, offset int) ([]*models.Event, error) {
	var events []*models.Event
	err := r.withInterestsCount(r.db.WithContext(ctx)).
		Where("created_by = ?", userID).
		Order("date ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Totals(ctx context.Context, now time.Time) (*EventTotals, error) {
	totals := &EventTotals{}
	db := r.db.WithContext(ctx).Model(&models.Event{})

	type pair struct {
		dest *int64
		cond *gorm.DB
	}
	counts := []pair{
		{&totals.Total, db.Session(&gorm.Session{})},
		{&totals.Approved, db.Session(&gorm.Session{}).Where("approved = ?", true)},
		{&totals.Pending, db.Session(&gorm.Session{}).Where("approved = ?", false)},
		{&totals.Flagged, db.Session(&gorm.Session{}).Where("flagged = ?", true)},
		{&totals.Upcoming, db.Session(&gorm.Session{}).Where("approved = ? AND date >= ?", true, now)},
	}
	for _, c := range counts {
		if err := c.cond.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return totals, nil
}

func (r *eventRepository) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var counts []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

func (r *eventRepository) Recent(ctx context.Context, limit int) ([]*models.Event, error) {
	var events []*models.Event
	err := r.withInterestsCount(r.db.WithContext(ctx)).
		Preload("Creator").
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) TopCreators(ctx context.Context, limit int) ([]CreatorCount, error) {
	var counts []CreatorCount
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Select("events.created_by as user_id, users.name as name, COUNT(*) as count").
		Joins("JOIN users ON users.id = events.created_by").
		Group("events.created_by, users.name").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error
	return counts, err
}
