package server

import (
	"time"

	"communitypulse/internal/models"
	"communitypulse/internal/repository"
	"communitypulse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// eventDateLayouts are the accepted ISO-8601 shapes for the date field,
// tried in order. Layouts without an offset are taken as UTC.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseEventDate(value string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// GetEvents handles GET /api/events
func (s *Server) GetEvents(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	events, err := s.eventService.ListEvents(c.Context(), repository.EventFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

// GetNearbyEvents handles GET /api/events/nearby
func (s *Server) GetNearbyEvents(c *fiber.Ctx) error {
	lat := c.QueryFloat("lat", 0)
	lon := c.QueryFloat("lon", 0)
	if lat == 0 && lon == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lat and lon query parameters are required"))
	}
	radius := c.QueryFloat("radius_km", 10)
	p := parsePagination(c, 50)

	events, err := s.eventService.ListNearby(c.Context(), lat, lon, radius, p.Limit)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

// GetEvent handles GET /api/events/:id. Creators see their own pending
// events; everyone else only sees approved ones.
func (s *Server) GetEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	viewerIsAdmin := false
	if viewerID != 0 {
		viewerIsAdmin, _ = s.isAdminByUserID(c.Context(), viewerID)
	}

	event, svcErr := s.eventService.GetEvent(c.Context(), id, viewerID, viewerIsAdmin)
	if svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(event)
}

// GetMyEvents handles GET /api/events/mine
func (s *Server) GetMyEvents(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	events, err := s.eventService.ListMyEvents(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

// CreateEvent handles POST /api/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Category     string `json:"category"`
		Location     string `json:"location"`
		Date         string `json:"date"`
		MaxAttendees *int   `json:"max_attendees"`
		ImageURL     string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	date, ok := parseEventDate(req.Date)
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("date must be a valid ISO-8601 timestamp"))
	}

	event, err := s.eventService.CreateEvent(c.Context(), service.CreateEventInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     models.EventCategory(req.Category),
		Location:     req.Location,
		Date:         date,
		MaxAttendees: req.MaxAttendees,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent handles PUT /api/events/:id
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		Category     *string `json:"category"`
		Location     *string `json:"location"`
		Date         *string `json:"date"`
		MaxAttendees *int    `json:"max_attendees"`
		ImageURL     *string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateEventInput{
		UserID:       userID,
		EventID:      id,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
		ImageURL:     req.ImageURL,
	}
	if req.Category != nil {
		category := models.EventCategory(*req.Category)
		in.Category = &category
	}
	if req.Date != nil {
		date, ok := parseEventDate(*req.Date)
		if !ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("date must be a valid ISO-8601 timestamp"))
		}
		in.Date = &date
	}

	event, svcErr := s.eventService.UpdateEvent(c.Context(), in)
	if svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	isAdmin, _ := s.isAdminByUserID(c.Context(), userID)
	if svcErr := s.eventService.DeleteEvent(c.Context(), id, userID, isAdmin); svcErr != nil {
		return models.RespondWithServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}
