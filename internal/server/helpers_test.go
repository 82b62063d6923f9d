package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"communitypulse/internal/config"
	"communitypulse/internal/models"
	"communitypulse/internal/notifications"
	"communitypulse/internal/repository"
	"communitypulse/internal/scheduler"
	"communitypulse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against an in-memory sqlite database.
// The dispatcher uses the log-only gateway; there is no Redis.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Interest{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	gateway := notifications.NewGateway(notifications.SMTPConfig{})
	dispatcher := notifications.NewDispatcher(notificationRepo, gateway, 1, 8)
	t.Cleanup(dispatcher.Close)

	s := &Server{
		config:           &config.Config{JWTSecret: "test-secret-for-handlers"},
		db:               db,
		userRepo:         userRepo,
		eventRepo:        eventRepo,
		interestRepo:     interestRepo,
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
	}
	s.userService = service.NewUserService(userRepo)
	s.eventService = service.NewEventService(eventRepo, interestRepo, userRepo, nil, dispatcher)
	s.interestService = service.NewInterestService(interestRepo, eventRepo, userRepo, dispatcher)
	s.adminService = service.NewAdminService(userRepo, eventRepo, notificationRepo)
	s.reminders = scheduler.NewReminderScheduler(eventRepo, interestRepo, dispatcher)
	return s
}

// newTestApp builds a Fiber app with the full route table.
func newTestApp(s *Server) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func createUser(t *testing.T, s *Server, name, email string, admin bool) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("HandlerTest1!abc"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		IsAdmin:  admin,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func createEvent(t *testing.T, s *Server, creator *models.User, approved bool) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:     "Weekend Market",
		Category:  models.CategoryGarageSale,
		Location:  "Town Square",
		Date:      time.Now().UTC().Add(72 * time.Hour),
		CreatedBy: creator.ID,
		Approved:  approved,
	}
	require.NoError(t, s.db.Create(event).Error)
	return event
}

func tokenFor(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Name)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		name  string
		query string
		want  Pagination
	}{
		{"Defaults", "", Pagination{Limit: 20, Offset: 0}},
		{"Explicit", "?limit=5&offset=10", Pagination{Limit: 5, Offset: 10}},
		{"Capped", "?limit=500", Pagination{Limit: 100, Offset: 0}},
		{"Negative", "?limit=-1&offset=-5", Pagination{Limit: 20, Offset: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.want, got)
		})
	}
}
