package service

import (
	"context"
	"testing"

	"communitypulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func validSignup() RegisterUserInput {
	return RegisterUserInput{
		Name:     "Morgan Lane",
		Email:    "morgan@example.com",
		Phone:    "+15557654321",
		Password: "SuperSecret1!xyz",
	}
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and lowercases the email", func(t *testing.T) {
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		}
		var created *models.User
		users.createFn = func(_ context.Context, u *models.User) error {
			created = u
			return nil
		}
		svc := NewUserService(users)

		in := validSignup()
		in.Email = "Morgan@Example.COM"
		user, err := svc.RegisterUser(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "morgan@example.com", user.Email)
		assert.NotEqual(t, in.Password, created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(in.Password)))
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1}, nil
		}
		svc := NewUserService(users)

		_, err := svc.RegisterUser(ctx, validSignup())
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		in := validSignup()
		in.Password = "short"
		_, err := svc.RegisterUser(ctx, in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	password := "SuperSecret1!xyz"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	account := &models.User{ID: 3, Email: "morgan@example.com", Password: string(hashed)}

	t.Run("valid credentials", func(t *testing.T) {
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			u := *account
			return &u, nil
		}
		svc := NewUserService(users)

		user, err := svc.Authenticate(ctx, "Morgan@Example.com", password)
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			u := *account
			return &u, nil
		}
		svc := NewUserService(users)

		_, err := svc.Authenticate(ctx, account.Email, "WrongPassword1!")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewUserService(users)

		_, err := svc.Authenticate(ctx, "nobody@example.com", password)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})

	t.Run("banned account is forbidden even with valid credentials", func(t *testing.T) {
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			u := *account
			u.IsBanned = true
			return &u, nil
		}
		svc := NewUserService(users)

		_, err := svc.Authenticate(ctx, account.Email, password)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Morgan Lane", Phone: "+15557654321"}, nil
		}
		var updated *models.User
		users.updateFn = func(_ context.Context, u *models.User) error {
			updated = u
			return nil
		}
		svc := NewUserService(users)

		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID: 3,
			Name:   strPtr("Morgan L."),
		})
		require.NoError(t, err)
		assert.Equal(t, "Morgan L.", updated.Name)
		assert.Equal(t, "+15557654321", updated.Phone)
	})

	t.Run("password change stores a new hash", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Password: "old-hash"}, nil
		}
		var updated *models.User
		users.updateFn = func(_ context.Context, u *models.User) error {
			updated = u
			return nil
		}
		svc := NewUserService(users)

		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID:   3,
			Password: strPtr("FreshSecret1!xyz"),
		})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("FreshSecret1!xyz")))
	})

	t.Run("weak password rejected", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID:   3,
			Password: strPtr("short"),
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("invalid phone rejected", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID: 3,
			Phone:  strPtr("not a phone"),
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})
}
