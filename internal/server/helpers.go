package server

import (
	"context"
	"errors"

	"communitypulse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a helper already committed the HTTP
// response. Handlers seeing it must return nil so Fiber's ErrorHandler
// does not overwrite the body.
var errResponseWritten = errors.New("response already written")

const maxPageSize = 100

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	p := Pagination{
		Limit:  c.QueryInt("limit", defaultLimit),
		Offset: c.QueryInt("offset", 0),
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	} else if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// parseID reads a positive integer route parameter. On failure it writes
// the 400 response itself and returns errResponseWritten; callers then
// return nil.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// callerFlags resolves the role flags for an authenticated caller from
// the database rather than the token, so bans and admin grants take
// effect immediately.
func (s *Server) callerFlags(ctx context.Context, userID uint) (isAdmin, isBanned bool, err error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, false, err
	}
	return user.IsAdmin, user.IsBanned, nil
}

func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	isAdmin, _, err := s.callerFlags(ctx, userID)
	return isAdmin, err
}

func (s *Server) isBannedByUserID(ctx context.Context, userID uint) (bool, error) {
	_, isBanned, err := s.callerFlags(ctx, userID)
	return isBanned, err
}
