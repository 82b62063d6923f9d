// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account on the platform.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Email      string         `gorm:"size:120;unique;not null" json:"email"`
	Phone      string         `gorm:"size:15" json:"phone"`
	Password   string         `gorm:"not null" json:"-"`
	IsAdmin    bool           `gorm:"default:false" json:"is_admin"`
	IsVerified bool           `gorm:"default:false" json:"is_verified"`
	IsBanned   bool           `gorm:"default:false;index" json:"is_banned"`
	Latitude   *float64       `json:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Events     []Event        `gorm:"foreignKey:CreatedBy" json:"events,omitempty"`
}
