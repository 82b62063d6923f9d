package repository

import (
	"context"
	"time"

	"communitypulse/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification audit records
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	MarkSent(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint) error
	ListForEvent(ctx context.Context, eventID uint, limit, offset int) ([]*models.Notification, error)
	CountByStatus(ctx context.Context, status models.NotificationStatus) (int64, error)
}

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.Status == "" {
		notification.Status = models.NotificationPending
	}
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) MarkSent(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.NotificationSent,
			"sent_at": &now,
		}).Error
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("status", models.NotificationFailed).Error
}

func (r *notificationRepository) ListForEvent(ctx context.Context, eventID uint, limit, offset int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountByStatus(ctx context.Context, status models.NotificationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
