package web

import (
	"strconv"

	"github.com/Badsnus/cu-events-portal/internal/domain/dto"
	"github.com/Badsnus/cu-events-portal/internal/domain/service"
	"github.com/Badsnus/cu-events-portal/pkg/qr"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleAPIEvents(c *fiber.Ctx) error {
	identity := identityFrom(c)

	params := service.EventListParams{
		Search:  c.Query("search"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 10),
	}
	if status := c.QueryInt("status", 0); status > 0 {
		statusID := uint(status)
		params.StatusID = &statusID
	}
	if c.QueryBool("upcoming", false) {
		params.UpcomingOnly = true
	}

	events, total, err := s.eventService.List(c.Context(), identity, params)
	if err != nil {
		return s.apiError(c, err, "Failed to get events")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"events":     dto.NewEventsFromEntities(events),
		"pagination": dto.NewPagination(params.Page, params.PerPage, total),
	})
}

func (s *Server) handleAPIEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid event id",
		})
	}

	event, err := s.eventService.Get(c.Context(), uint(id), identityFrom(c))
	if err != nil {
		return s.apiError(c, err, "Failed to get event")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"event":   dto.NewEventFromEntity(*event),
	})
}

// handleAPIEventQR renders a QR code pointing at the event's detail page, so
// managers can put it on printed material.
func (s *Server) handleAPIEventQR(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid event id",
		})
	}

	event, err := s.eventService.Get(c.Context(), uint(id), identityFrom(c))
	if err != nil {
		return s.apiError(c, err, "Failed to get event")
	}

	png, err := qr.Generate(c.BaseURL()+"/events/"+strconv.Itoa(int(event.ID)), 256)
	if err != nil {
		return s.apiError(c, err, "Failed to generate QR code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
