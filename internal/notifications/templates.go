package notifications

import (
	"fmt"
	"strings"

	"communitypulse/internal/models"
)

const (
	eventDateLayout = "Monday, January 2, 2006 at 3:04 PM"
	eventTimeLayout = "3:04 PM"
	signature       = "Community Pulse Team"
)

// Message is a rendered notification ready for delivery. SMSBody is
// empty for creator-facing messages, which are email only.
type Message struct {
	Subject string
	Body    string
	SMSBody string
}

// InterestMessage tells an event's creator about a new registration.
func InterestMessage(event *models.Event, interest *models.Interest, creatorName string) Message {
	body := fmt.Sprintf(`Hello %s,

Someone has shown interest in attending your event "%s".

Attendee details:
- Name: %s
- Email: %s
- Phone: %s
- Number of attendees: %d

You can view all interests for this event in your dashboard.

%s`,
		creatorName, event.Title,
		interest.UserName, interest.Email, interest.Phone, interest.Attendees,
		signature)
	return Message{
		Subject: fmt.Sprintf("New interest in your event: %s", event.Title),
		Body:    body,
	}
}

// ModerationMessage tells an event's creator about an approval or rejection.
func ModerationMessage(event *models.Event, creatorName string, approved bool) Message {
	status := "approved"
	advice := "It is now visible to all users and people can register their interest."
	if !approved {
		status = "rejected"
		advice = "Please review our community guidelines and consider making changes to resubmit the event."
	}
	body := fmt.Sprintf(`Hello %s,

Your event "%s" has been %s by our administrators.

%s

Event Details:
- Title: %s
- Date: %s
- Location: %s

%s`,
		creatorName, event.Title, status, advice,
		event.Title, event.Date.Format(eventDateLayout), event.Location,
		signature)
	return Message{
		Subject: fmt.Sprintf("Your event has been %s: %s", status, event.Title),
		Body:    body,
	}
}

// UpdateMessage tells a registrant that an event they follow changed.
func UpdateMessage(event *models.Event, recipientName string, changes []string) Message {
	detail := "Please check the event page for the latest details."
	if len(changes) > 0 {
		lines := make([]string, len(changes))
		for i, change := range changes {
			lines[i] = "- " + change
		}
		detail = strings.Join(lines, "\n")
	}
	body := fmt.Sprintf(`Hello %s,

The event "%s" that you're interested in has been updated.

%s

Updated Event Details:
- Title: %s
- Date: %s
- Location: %s

You can view the complete details on the Community Pulse platform.

%s`,
		recipientName, event.Title, detail,
		event.Title, event.Date.Format(eventDateLayout), event.Location,
		signature)
	return Message{
		Subject: fmt.Sprintf("Event Update: %s", event.Title),
		Body:    body,
		SMSBody: fmt.Sprintf("Event Update: %s has been updated. Please check your email for details.", event.Title),
	}
}

// CancellationMessage tells a registrant that an event was cancelled.
func CancellationMessage(event *models.Event, recipientName string) Message {
	body := fmt.Sprintf(`Hello %s,

We regret to inform you that the event "%s" has been cancelled.

Event Details:
- Title: %s
- Date: %s
- Location: %s

We apologize for any inconvenience this may cause.

%s`,
		recipientName, event.Title,
		event.Title, event.Date.Format(eventDateLayout), event.Location,
		signature)
	return Message{
		Subject: fmt.Sprintf("Event Cancelled: %s", event.Title),
		Body:    body,
		SMSBody: fmt.Sprintf("Event Cancelled: %s has been cancelled. Please check your email for details.", event.Title),
	}
}

// ReminderMessage tells a registrant their event happens tomorrow.
func ReminderMessage(event *models.Event, recipientName string) Message {
	body := fmt.Sprintf(`Hello %s,

This is a reminder that the event "%s" is happening tomorrow.

Event Details:
- Date: %s
- Location: %s

We're looking forward to seeing you there!

%s`,
		recipientName, event.Title,
		event.Date.Format(eventDateLayout), event.Location,
		signature)
	return Message{
		Subject: fmt.Sprintf("Reminder: %s is happening tomorrow", event.Title),
		Body:    body,
		SMSBody: fmt.Sprintf("Reminder: %s is happening tomorrow at %s. Location: %s",
			event.Title, event.Date.Format(eventTimeLayout), event.Location),
	}
}
