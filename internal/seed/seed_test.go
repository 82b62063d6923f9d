package seed

import (
	"testing"

	"communitypulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Interest{},
	))
	return db
}

func TestFactoryCreateUser(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser("DemoPassword1!", func(u *models.User) {
		u.Email = "fixed@example.com"
		u.IsAdmin = true
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "fixed@example.com", user.Email)
	assert.True(t, user.IsAdmin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("DemoPassword1!")))
}

func TestFactoryCreateEvent(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser("DemoPassword1!")
	require.NoError(t, err)

	event, err := f.CreateEvent(user, func(e *models.Event) {
		e.Approved = true
	})
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.Equal(t, user.ID, event.CreatedBy)
	assert.True(t, event.Approved)
	assert.Contains(t, models.EventCategories, event.Category)
	require.NotNil(t, event.MaxAttendees)
	assert.Positive(t, *event.MaxAttendees)
}

func TestRunSeedsCounts(t *testing.T) {
	t.Run("all approved events get registrations", func(t *testing.T) {
		db := setupSeedDB(t)
		opts := Options{
			Users:             3,
			EventsPerUser:     2,
			InterestsPerEvent: 2,
			ApproveRatio:      1.0,
			Password:          "DemoPassword1!",
		}
		require.NoError(t, Run(db, opts))

		var users, events, interests int64
		require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
		require.NoError(t, db.Model(&models.Event{}).Count(&events).Error)
		require.NoError(t, db.Model(&models.Interest{}).Count(&interests).Error)
		assert.Equal(t, int64(3), users)
		assert.Equal(t, int64(6), events)
		assert.Equal(t, int64(12), interests)
	})

	t.Run("pending events get no registrations", func(t *testing.T) {
		db := setupSeedDB(t)
		opts := Options{
			Users:             2,
			EventsPerUser:     2,
			InterestsPerEvent: 3,
			ApproveRatio:      0,
			Password:          "DemoPassword1!",
		}
		require.NoError(t, Run(db, opts))

		var approved, interests int64
		require.NoError(t, db.Model(&models.Event{}).Where("approved = ?", true).Count(&approved).Error)
		require.NoError(t, db.Model(&models.Interest{}).Count(&interests).Error)
		assert.Zero(t, approved)
		assert.Zero(t, interests)
	})
}
