package validation

import (
	"fmt"
	"strings"
	"time"

	"communitypulse/internal/models"
)

// ValidateEventInput checks the user-supplied fields of a new or edited event.
func ValidateEventInput(title string, category models.EventCategory, date time.Time, maxAttendees *int) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title must not exceed 200 characters")
	}
	if !category.Valid() {
		return fmt.Errorf("category must be one of: %s", joinCategories())
	}
	if date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if maxAttendees != nil && *maxAttendees < 1 {
		return fmt.Errorf("max_attendees must be at least 1")
	}
	return nil
}

// ValidateRegistrationInput checks the required fields of an interest registration.
func ValidateRegistrationInput(name, email string, attendees int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if attendees < 1 {
		return fmt.Errorf("attendees must be at least 1")
	}
	return nil
}

func joinCategories() string {
	names := make([]string, len(models.EventCategories))
	for i, c := range models.EventCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
