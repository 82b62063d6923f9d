// Package bootstrap wires process-level dependencies at startup.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"communitypulse/internal/cache"
	"communitypulse/internal/config"
	"communitypulse/internal/database"
	"communitypulse/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	EnsureAdmin bool
}

// InitRuntime connects to DB and Redis and optionally ensures the
// bootstrap admin account exists.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	// Connect DB
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.EnsureAdmin {
		if err := EnsureAdmin(cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
		}
	}

	return db, r, nil
}

// EnsureAdmin creates or repairs the configured admin account. With no
// ADMIN_EMAIL configured it is a no-op.
func EnsureAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	email := strings.TrimSpace(strings.ToLower(cfg.AdminEmail))
	if email == "" {
		return nil
	}
	if cfg.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be set when ADMIN_EMAIL is configured")
	}
	name := strings.TrimSpace(cfg.AdminName)
	if name == "" {
		name = "Admin"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("LOWER(email) = ?", email).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				Name:       name,
				Email:      email,
				Password:   string(hashedPassword),
				IsAdmin:    true,
				IsVerified: true,
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.User{}).
				Where("id = ?", admin.ID).
				Updates(map[string]any{"is_admin": true, "is_banned": false}).Error
		}
	}); err != nil {
		return err
	}

	log.Printf("admin account ensured for %s", email)
	return nil
}
