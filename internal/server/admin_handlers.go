package server

import (
	"communitypulse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPendingEvents handles GET /api/admin/events/pending
func (s *Server) GetPendingEvents(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	events, err := s.adminService.ListPendingEvents(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

// GetFlaggedEvents handles GET /api/admin/events/flagged
func (s *Server) GetFlaggedEvents(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	events, err := s.adminService.ListFlaggedEvents(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

// ApproveEvent handles POST /api/admin/events/:id/approve
func (s *Server) ApproveEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	event, svcErr := s.eventService.ApproveEvent(c.Context(), id)
	if svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(event)
}

// RejectEvent handles POST /api/admin/events/:id/reject
func (s *Server) RejectEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	event, svcErr := s.eventService.RejectEvent(c.Context(), id)
	if svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(event)
}

// FlagEvent handles POST /api/admin/events/:id/flag
func (s *Server) FlagEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	event, svcErr := s.eventService.FlagEvent(c.Context(), id)
	if svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(event)
}

// GetEventNotifications handles GET /api/admin/events/:id/notifications,
// returning the reminder audit trail for an event.
func (s *Server) GetEventNotifications(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)
	notifications, svcErr := s.adminService.ListEventNotifications(c.Context(), id, p.Limit, p.Offset)
	if svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// GetUsers handles GET /api/admin/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	users, err := s.adminService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// VerifyUser handles POST /api/admin/users/:id/verify
func (s *Server) VerifyUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if svcErr := s.adminService.VerifyUser(c.Context(), id); svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "User verified"})
}

// UnverifyUser handles POST /api/admin/users/:id/unverify
func (s *Server) UnverifyUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if svcErr := s.adminService.UnverifyUser(c.Context(), id); svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "User verification removed"})
}

// GetUserEvents handles GET /api/admin/users/:id/events, returning the
// user's events regardless of moderation state.
func (s *Server) GetUserEvents(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)
	events, svcErr := s.adminService.ListUserEvents(c.Context(), id, p.Limit, p.Offset)
	if svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"events": events})
}

// BanUser handles POST /api/admin/users/:id/ban. Admin accounts cannot
// be banned.
func (s *Server) BanUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if svcErr := s.adminService.BanUser(c.Context(), id); svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "User banned"})
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if svcErr := s.adminService.UnbanUser(c.Context(), id); svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "User unbanned"})
}

// GetAnalytics handles GET /api/admin/analytics
func (s *Server) GetAnalytics(c *fiber.Ctx) error {
	analytics, err := s.adminService.GetAnalytics(c.Context())
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(analytics)
}

// RunReminders handles POST /api/admin/reminders/run, triggering one
// reminder scan outside the daily schedule.
func (s *Server) RunReminders(c *fiber.Ctx) error {
	processed, err := s.reminders.RunOnce(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"events_notified": processed})
}
