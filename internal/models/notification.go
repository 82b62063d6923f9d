package models

import "time"

// NotificationType identifies which lifecycle fact produced a notification.
type NotificationType string

const (
	NotificationInterest     NotificationType = "interest"
	NotificationApproval     NotificationType = "approval"
	NotificationRejection    NotificationType = "rejection"
	NotificationUpdate       NotificationType = "update"
	NotificationCancellation NotificationType = "cancellation"
	NotificationReminder     NotificationType = "reminder"
)

// NotificationStatus tracks delivery state of a notification.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is an audit record of one outbound message. The dispatcher
// writes one row per recipient per channel; core correctness never depends
// on these rows existing.
type Notification struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    *uint              `gorm:"index" json:"user_id,omitempty"`
	EventID   uint               `gorm:"not null;index" json:"event_id"`
	Email     string             `gorm:"size:120;not null" json:"email"`
	Phone     string             `gorm:"size:15" json:"phone,omitempty"`
	Type      NotificationType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Status    NotificationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Content   string             `gorm:"type:text" json:"content,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
}
