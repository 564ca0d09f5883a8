package web

import (
	"errors"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleAPIDeleteEventManager(c *fiber.Ctx) error {
	if !requireAPIRole(c, entity.RoleAdmin, "Access denied. Only admins can delete event managers.") {
		return nil
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid event manager id",
		})
	}

	if err = s.userService.DeleteEventManager(c.Context(), uint(id)); err != nil {
		if errors.Is(err, errorz.HasDependents) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot delete event manager. They have events associated with them. Please reassign or delete those events first.",
			})
		}
		return s.apiError(c, err, "Failed to delete event manager")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event manager deleted successfully",
	})
}

func (s *Server) handleAPIDeleteParticipant(c *fiber.Ctx) error {
	if !requireAPIRole(c, entity.RoleAdmin, "Access denied. Only admins can delete participants.") {
		return nil
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid participant id",
		})
	}

	if err = s.userService.DeleteParticipant(c.Context(), uint(id)); err != nil {
		if errors.Is(err, errorz.HasDependents) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot delete participant. They have registrations associated with them. Please remove those registrations first.",
			})
		}
		return s.apiError(c, err, "Failed to delete participant")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Participant deleted successfully",
	})
}
