package notifications

import (
	"testing"
	"time"

	"communitypulse/internal/models"

	"github.com/stretchr/testify/assert"
)

func templateEvent() *models.Event {
	return &models.Event{
		ID:       1,
		Title:    "Summer Book Swap",
		Location: "Library Lawn",
		Date:     time.Date(2026, 7, 11, 14, 30, 0, 0, time.UTC),
	}
}

func TestInterestMessage(t *testing.T) {
	interest := &models.Interest{
		UserName:  "Jordan",
		Email:     "jordan@example.com",
		Phone:     "+15551234567",
		Attendees: 3,
	}
	msg := InterestMessage(templateEvent(), interest, "Casey")

	assert.Equal(t, "New interest in your event: Summer Book Swap", msg.Subject)
	assert.Contains(t, msg.Body, "Hello Casey")
	assert.Contains(t, msg.Body, "Jordan")
	assert.Contains(t, msg.Body, "Number of attendees: 3")
	assert.Empty(t, msg.SMSBody)
}

func TestModerationMessage(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		msg := ModerationMessage(templateEvent(), "Casey", true)
		assert.Equal(t, "Your event has been approved: Summer Book Swap", msg.Subject)
		assert.Contains(t, msg.Body, "visible to all users")
		assert.Contains(t, msg.Body, "Saturday, July 11, 2026 at 2:30 PM")
	})

	t.Run("rejected", func(t *testing.T) {
		msg := ModerationMessage(templateEvent(), "Casey", false)
		assert.Equal(t, "Your event has been rejected: Summer Book Swap", msg.Subject)
		assert.Contains(t, msg.Body, "community guidelines")
	})
}

func TestUpdateMessage(t *testing.T) {
	t.Run("lists the changes", func(t *testing.T) {
		msg := UpdateMessage(templateEvent(), "Jordan", []string{
			"Date changed to 2026-07-12T14:30:00Z",
			"Location changed to Community Hall",
		})
		assert.Contains(t, msg.Body, "- Date changed to 2026-07-12T14:30:00Z")
		assert.Contains(t, msg.Body, "- Location changed to Community Hall")
		assert.Contains(t, msg.SMSBody, "Summer Book Swap")
	})

	t.Run("falls back to a generic line without changes", func(t *testing.T) {
		msg := UpdateMessage(templateEvent(), "Jordan", nil)
		assert.Contains(t, msg.Body, "Please check the event page")
	})
}

func TestCancellationMessage(t *testing.T) {
	msg := CancellationMessage(templateEvent(), "Jordan")
	assert.Equal(t, "Event Cancelled: Summer Book Swap", msg.Subject)
	assert.Contains(t, msg.Body, "has been cancelled")
	assert.Contains(t, msg.SMSBody, "has been cancelled")
}

func TestReminderMessage(t *testing.T) {
	msg := ReminderMessage(templateEvent(), "Jordan")
	assert.Equal(t, "Reminder: Summer Book Swap is happening tomorrow", msg.Subject)
	assert.Contains(t, msg.Body, "Library Lawn")
	assert.Contains(t, msg.SMSBody, "2:30 PM")
	assert.Contains(t, msg.SMSBody, "Library Lawn")
}
