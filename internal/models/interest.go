package models

import "time"

// Interest is a registration record expressing intent to attend an event.
// At most one interest may exist per (event, email) pair; the unique index
// makes that hold under concurrent submissions too.
type Interest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserName  string    `gorm:"size:100;not null" json:"user_name"`
	Email     string    `gorm:"size:120;not null;uniqueIndex:idx_interests_event_email" json:"email"`
	Phone     string    `gorm:"size:15" json:"phone"`
	Attendees int       `gorm:"not null" json:"attendees"`
	EventID   uint      `gorm:"not null;index;uniqueIndex:idx_interests_event_email" json:"event_id"`
	Event     *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InterestSummary is a caller's interest joined with its event details.
type InterestSummary struct {
	InterestID    uint          `json:"interest_id"`
	EventID       uint          `json:"event_id"`
	EventTitle    string        `json:"event_title"`
	EventCategory EventCategory `json:"event_category"`
	EventLocation string        `json:"event_location"`
	EventDate     time.Time     `json:"event_date"`
	Attendees     int           `json:"attendees"`
	RegisteredAt  time.Time     `json:"registered_at"`
}
