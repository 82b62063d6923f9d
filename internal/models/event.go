package models

import (
	"time"
)

// EventCategory is the wire representation of an event's category.
type EventCategory string

const (
	CategoryGarageSale     EventCategory = "garage_sale"
	CategorySports         EventCategory = "sports"
	CategoryCommunityClass EventCategory = "community_class"
	CategoryVolunteer      EventCategory = "volunteer"
	CategoryExhibition     EventCategory = "exhibition"
	CategoryFestival       EventCategory = "festival"
)

// EventCategories lists every valid category in wire order.
var EventCategories = []EventCategory{
	CategoryGarageSale,
	CategorySports,
	CategoryCommunityClass,
	CategoryVolunteer,
	CategoryExhibition,
	CategoryFestival,
}

var categoryLabels = map[EventCategory]string{
	CategoryGarageSale:     "Garage Sale",
	CategorySports:         "Sports Match",
	CategoryCommunityClass: "Community Class",
	CategoryVolunteer:      "Volunteer Opportunity",
	CategoryExhibition:     "Exhibition",
	CategoryFestival:       "Festival or Celebration",
}

// Valid reports whether the category is one of the supported values.
func (c EventCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human-readable name for the category.
func (c EventCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Event represents a community happening with moderated visibility.
// An event is publicly visible only while Approved is true; editing its
// title, date, or location drops it back to pending.
type Event struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Title        string        `gorm:"size:200;not null" json:"title"`
	Description  string        `gorm:"type:text" json:"description"`
	Category     EventCategory `gorm:"type:varchar(32);not null;index" json:"category"`
	Location     string        `gorm:"size:200" json:"location"`
	Latitude     *float64      `json:"latitude,omitempty"`
	Longitude    *float64      `json:"longitude,omitempty"`
	Date         time.Time     `gorm:"not null;index" json:"date"`
	CreatedBy    uint          `gorm:"not null;index" json:"created_by"`
	Creator      *User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Approved     bool          `gorm:"default:false;index" json:"approved"`
	Flagged      bool          `gorm:"default:false;index" json:"flagged"`
	MaxAttendees *int          `json:"max_attendees,omitempty"`
	ImageURL     string        `gorm:"size:500" json:"image_url,omitempty"`
	// InterestsCount is not persisted; computed at query time
	InterestsCount int        `gorm:"->" json:"interests_count"`
	Interests      []Interest `gorm:"foreignKey:EventID" json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
