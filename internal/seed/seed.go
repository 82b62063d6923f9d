// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"communitypulse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control how much demo data gets generated.
type Options struct {
	Users             int
	EventsPerUser     int
	InterestsPerEvent int
	ApproveRatio      float64
	Password          string
}

// DefaultOptions returns a small but representative data set.
func DefaultOptions() Options {
	return Options{
		Users:             10,
		EventsPerUser:     3,
		InterestsPerEvent: 4,
		ApproveRatio:      0.7,
		Password:          "DemoPassword1!",
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a fake user. Overrides run before saving.
func (f *Factory) CreateUser(password string, overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Phone:    gofakeit.Numerify("+1##########"),
		Password: string(hashed),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateEvent persists a fake event owned by the user. Overrides run
// before saving.
func (f *Factory) CreateEvent(user *models.User, overrides ...func(*models.Event)) (*models.Event, error) {
	category := models.EventCategories[f.rng.Intn(len(models.EventCategories))]
	daysAhead := f.rng.Intn(30) + 1
	max := f.rng.Intn(40) + 10

	event := &models.Event{
		Title:        fmt.Sprintf("%s %s", gofakeit.City(), category.Label()),
		Description:  gofakeit.Paragraph(1, 3, 8, "\n"),
		Category:     category,
		Location:     fmt.Sprintf("%s, %s", gofakeit.Street(), gofakeit.City()),
		Date:         time.Now().UTC().AddDate(0, 0, daysAhead),
		CreatedBy:    user.ID,
		MaxAttendees: &max,
	}
	for _, override := range overrides {
		override(event)
	}
	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// CreateInterest persists a fake registration for the event.
func (f *Factory) CreateInterest(event *models.Event, overrides ...func(*models.Interest)) (*models.Interest, error) {
	interest := &models.Interest{
		UserName:  gofakeit.Name(),
		Email:     gofakeit.Email(),
		Phone:     gofakeit.Numerify("+1##########"),
		Attendees: f.rng.Intn(3) + 1,
		EventID:   event.ID,
	}
	for _, override := range overrides {
		override(interest)
	}
	if err := f.db.Create(interest).Error; err != nil {
		return nil, err
	}
	return interest, nil
}

// Run populates the database with demo users, events, and registrations.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db)

	for u := 0; u < opts.Users; u++ {
		user, err := f.CreateUser(opts.Password)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		for e := 0; e < opts.EventsPerUser; e++ {
			approved := f.rng.Float64() < opts.ApproveRatio
			event, err := f.CreateEvent(user, func(ev *models.Event) {
				ev.Approved = approved
			})
			if err != nil {
				return fmt.Errorf("seed event: %w", err)
			}
			if !approved {
				continue
			}
			for i := 0; i < opts.InterestsPerEvent; i++ {
				if _, err := f.CreateInterest(event); err != nil {
					return fmt.Errorf("seed interest: %w", err)
				}
			}
		}
	}

	log.Printf("seeded %d users with up to %d events each", opts.Users, opts.EventsPerUser)
	return nil
}
