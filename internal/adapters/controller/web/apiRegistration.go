package web

import (
	"errors"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/dto"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleAPIRegister(c *fiber.Ctx) error {
	if !requireAPIRole(c, entity.RoleParticipant, "Only participants can register for events") {
		return nil
	}

	eventID, err := c.ParamsInt("event_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid event id",
		})
	}

	// The body is optional, a bare POST registers without extra info.
	var req dto.RegisterRequest
	if len(c.Body()) > 0 {
		if err = c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	registration, err := s.registrationService.Register(c.Context(), uint(eventID), identityFrom(c), req.AdditionalInfo)
	if err != nil {
		return s.apiError(c, err, "Registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Registration successful",
		"registration": dto.NewRegistrationFromEntity(*registration),
	})
}

func (s *Server) handleAPIMyRegistrations(c *fiber.Ctx) error {
	if !requireAPIRole(c, entity.RoleParticipant, "Only participants can view their registrations") {
		return nil
	}

	registrations, err := s.registrationService.ListByParticipant(c.Context(), identityFrom(c))
	if err != nil {
		return s.apiError(c, err, "Failed to get registrations")
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"registrations": dto.NewRegistrationsFromEntities(registrations),
	})
}

func (s *Server) handleAPIUpdateRegistrationStatus(c *fiber.Ctx) error {
	if !requireAPIRole(c, entity.RoleEventManager, "Access denied. Only event managers can update registration status.") {
		return nil
	}

	registrationID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid registration id",
		})
	}

	var req dto.UpdateRegistrationStatusRequest
	if err = c.BodyParser(&req); err != nil || req.RegistrationStatusID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Registration status ID is required",
		})
	}

	registration, err := s.registrationService.UpdateStatus(c.Context(), uint(registrationID), req.RegistrationStatusID, identityFrom(c))
	if err != nil {
		if errors.Is(err, errorz.Forbidden) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied. You can only update registrations for your own events.",
			})
		}
		return s.apiError(c, err, "Failed to update registration status")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Registration status updated successfully",
		"registration": dto.NewRegistrationFromEntity(*registration),
	})
}

func (s *Server) handleAPICancelRegistration(c *fiber.Ctx) error {
	if !requireAPIRole(c, entity.RoleParticipant, "Access denied. Only participants can cancel registrations.") {
		return nil
	}

	eventID, err := c.ParamsInt("event_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid event id",
		})
	}

	registration, err := s.registrationService.Cancel(c.Context(), uint(eventID), identityFrom(c))
	if err != nil {
		return s.apiError(c, err, "Failed to cancel registration")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Registration cancelled successfully",
		"registration": dto.NewRegistrationFromEntity(*registration),
	})
}
