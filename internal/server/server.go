// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"communitypulse/internal/bootstrap"
	"communitypulse/internal/config"
	"communitypulse/internal/geo"
	"communitypulse/internal/middleware"
	"communitypulse/internal/models"
	"communitypulse/internal/notifications"
	"communitypulse/internal/repository"
	"communitypulse/internal/scheduler"
	"communitypulse/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config           *config.Config
	db               *gorm.DB
	redis            *redis.Client
	app              *fiber.App
	promMiddleware   *fiberprometheus.FiberPrometheus
	shutdownCtx      context.Context
	shutdownFn       context.CancelFunc
	userRepo         repository.UserRepository
	eventRepo        repository.EventRepository
	interestRepo     repository.InterestRepository
	notificationRepo repository.NotificationRepository
	dispatcher       *notifications.Dispatcher
	reminders        *scheduler.ReminderScheduler
	userService      *service.UserService
	eventService     *service.EventService
	interestService  *service.InterestService
	adminService     *service.AdminService
}

// NewServer creates a new server instance with all dependencies. The
// configured admin account is ensured at startup outside production.
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{
		EnsureAdmin: cfg.Env != "production" && cfg.Env != "prod",
	})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("communitypulse-api")

	gateway := notifications.NewGateway(notifications.SMTPConfig{
		Host:   cfg.MailHost,
		Port:   cfg.MailPort,
		User:   cfg.MailUser,
		Pass:   cfg.MailPass,
		Sender: cfg.MailSender,
	})
	dispatcher := notifications.NewDispatcher(notificationRepo, gateway, 4, 64)

	var geocoder geo.Geocoder
	if cfg.GeocodeBaseURL != "" {
		geocoder = geo.NewNominatimGeocoder(cfg.GeocodeBaseURL, cfg.GeocodeUserAgent)
	}

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   prom,
		userRepo:         userRepo,
		eventRepo:        eventRepo,
		interestRepo:     interestRepo,
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
	}
	server.userService = service.NewUserService(userRepo)
	server.eventService = service.NewEventService(eventRepo, interestRepo, userRepo, geocoder, dispatcher)
	server.interestService = service.NewInterestService(interestRepo, eventRepo, userRepo, dispatcher)
	server.adminService = service.NewAdminService(userRepo, eventRepo, notificationRepo)
	server.reminders = scheduler.NewReminderScheduler(eventRepo, interestRepo, dispatcher)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Distributed tracing
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public event routes. Registration is public too: anyone may express
	// interest, with the caller linked when a valid token is present.
	events := api.Group("/events")
	events.Get("/", s.GetEvents)
	events.Get("/nearby", s.GetNearbyEvents)
	events.Post("/:id/interests", middleware.RateLimit(
		s.redis, 10, time.Minute, "register_interest"), s.RegisterInterest)
	// The int constraint keeps literal segments like /mine out of this
	// route; they fall through to the protected group below.
	events.Get("/:id<int>", s.GetEvent)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.NotBanned(), s.UpdateMyProfile)

	// Protected event routes
	myEvents := protected.Group("/events")
	myEvents.Get("/mine", s.GetMyEvents)
	myEvents.Post("/", s.NotBanned(), middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_event"), s.CreateEvent)
	myEvents.Get("/:id/interests", s.GetEventInterests)
	myEvents.Put("/:id", s.NotBanned(), s.UpdateEvent)
	myEvents.Delete("/:id", s.NotBanned(), s.DeleteEvent)

	// Interest routes
	interests := protected.Group("/interests")
	interests.Get("/me", s.GetMyInterests)
	interests.Delete("/:id", s.NotBanned(), s.CancelInterest)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/events/pending", s.GetPendingEvents)
	admin.Get("/events/flagged", s.GetFlaggedEvents)
	admin.Post("/events/:id/approve", s.ApproveEvent)
	admin.Post("/events/:id/reject", s.RejectEvent)
	admin.Post("/events/:id/flag", s.FlagEvent)
	admin.Get("/events/:id/notifications", s.GetEventNotifications)
	admin.Get("/users", s.GetUsers)
	admin.Get("/users/:id/events", s.GetUserEvents)
	admin.Post("/users/:id/verify", s.VerifyUser)
	admin.Post("/users/:id/unverify", s.UnverifyUser)
	admin.Post("/users/:id/ban", s.BanUser)
	admin.Post("/users/:id/unban", s.UnbanUser)
	admin.Get("/analytics", s.GetAnalytics)
	admin.Post("/reminders/run", s.RunReminders)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Cache is optional; the API serves without it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Community Pulse",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// NotBanned returns middleware that rejects banned users from mutating
// actions. Reads stay open so a banned account can still see its data.
// Must be placed after AuthRequired.
func (s *Server) NotBanned() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		banned, err := s.isBannedByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if banned {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("This account has been banned"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, claims, err := s.parseToken(c.Context(), tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(err.Error()))
		}

		// Store user ID and claims in context
		c.Locals("userID", userID)
		c.Locals("claims", claims)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// parseToken validates the JWT and returns the subject user ID.
func (s *Server) parseToken(ctx context.Context, tokenString string) (uint, jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, nil, fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, nil, fmt.Errorf("Invalid token claims")
	}

	// Validate issuer and audience
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "communitypulse-api" {
		return 0, nil, fmt.Errorf("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "communitypulse-client" {
		return 0, nil, fmt.Errorf("Invalid token audience")
	}

	// Extract user ID from subject claim
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, nil, fmt.Errorf("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, nil, fmt.Errorf("Invalid user ID in token")
	}

	// Check JTI for revocation
	if jti, exists := claims["jti"].(string); exists && jti != "" {
		if s.redis != nil {
			isBlacklisted, err := s.redis.Exists(ctx, "blacklist:"+jti).Result()
			if err == nil && isBlacklisted > 0 {
				return 0, nil, fmt.Errorf("Token has been revoked")
			}
		}
	}

	return uint(userID), claims, nil
}

// optionalUserID attempts to extract userID from Authorization header but does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	userID, _, err := s.parseToken(c.Context(), parts[1])
	if err != nil {
		return 0, false
	}
	return userID, true
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Community Pulse API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	if s.config.ReminderEnabled {
		s.reminders.Start(s.shutdownCtx)
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop the reminder loop
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Shutdown the HTTP server
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Drain queued notifications
	if s.dispatcher != nil {
		s.dispatcher.Close()
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
