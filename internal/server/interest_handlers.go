package server

import (
	"communitypulse/internal/models"
	"communitypulse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterInterest handles POST /api/events/:id/interests. The route is
// public; a valid bearer token links the registration to the caller.
func (s *Server) RegisterInterest(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Attendees int    `json:"attendees"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	var callerUserID *uint
	if userID, ok := s.optionalUserID(c); ok {
		callerUserID = &userID
	}

	interest, svcErr := s.interestService.RegisterInterest(c.Context(), service.RegisterInterestInput{
		EventID:      eventID,
		UserName:     req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Attendees:    req.Attendees,
		CallerUserID: callerUserID,
	})
	if svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(interest)
}

// CancelInterest handles DELETE /api/interests/:id
func (s *Server) CancelInterest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	isAdmin, _ := s.isAdminByUserID(c.Context(), userID)
	if svcErr := s.interestService.CancelInterest(c.Context(), id, userID, isAdmin); svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Registration cancelled"})
}

// GetEventInterests handles GET /api/events/:id/interests. Restricted to
// the event's creator and admins.
func (s *Server) GetEventInterests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	isAdmin, _ := s.isAdminByUserID(c.Context(), userID)
	result, svcErr := s.interestService.ListForEvent(c.Context(), eventID, userID, isAdmin)
	if svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(result)
}

// GetMyInterests handles GET /api/interests/me
func (s *Server) GetMyInterests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	summaries, err := s.interestService.ListForUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"interests": summaries})
}
