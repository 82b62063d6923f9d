package validation

import (
	"strings"
	"testing"
	"time"

	"communitypulse/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateEventInput(t *testing.T) {
	t.Parallel()
	date := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)
	one := 1
	zero := 0

	tests := []struct {
		name         string
		title        string
		category     models.EventCategory
		date         time.Time
		maxAttendees *int
		wantErr      bool
	}{
		{"Valid", "Park Cleanup", models.CategoryVolunteer, date, nil, false},
		{"Valid With Capacity", "Park Cleanup", models.CategoryVolunteer, date, &one, false},
		{"Empty Title", "", models.CategoryVolunteer, date, nil, true},
		{"Whitespace Title", "   ", models.CategoryVolunteer, date, nil, true},
		{"Title Too Long", strings.Repeat("a", 201), models.CategoryVolunteer, date, nil, true},
		{"Unknown Category", "Park Cleanup", "karaoke", date, nil, true},
		{"Zero Date", "Park Cleanup", models.CategoryVolunteer, time.Time{}, nil, true},
		{"Zero Capacity", "Park Cleanup", models.CategoryVolunteer, date, &zero, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEventInput(tt.title, tt.category, tt.date, tt.maxAttendees)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRegistrationInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		userName  string
		email     string
		attendees int
		wantErr   bool
	}{
		{"Valid", "Jordan", "jordan@example.com", 1, false},
		{"Several Attendees", "Jordan", "jordan@example.com", 5, false},
		{"Empty Name", "", "jordan@example.com", 1, true},
		{"Bad Email", "Jordan", "not-an-email", 1, true},
		{"Zero Attendees", "Jordan", "jordan@example.com", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistrationInput(tt.userName, tt.email, tt.attendees)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
