package web

import (
	"errors"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/dto"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleAPIHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "API is healthy",
	})
}

func (s *Server) handleAPILogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	identity, err := s.authService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errorz.InvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		}
		return s.apiError(c, err, "Login failed")
	}

	token, err := s.sessions.Create(c.Context(), identity)
	if err != nil {
		return s.apiError(c, err, "Login failed")
	}
	s.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user": dto.SessionUser{
			ID:    identity.UserID,
			Type:  string(identity.Role),
			Email: identity.Email,
			Name:  identity.Name,
			Role:  string(identity.Role),
		},
	})
}

func (s *Server) handleAPILogout(c *fiber.Ctx) error {
	s.clearSession(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func (s *Server) handleAPIProfile(c *fiber.Ctx) error {
	identity := identityFrom(c)

	var profile dto.Profile
	switch identity.Role {
	case entity.RoleAdmin:
		admin, err := s.userService.GetAdmin(c.Context(), identity.UserID)
		if err != nil {
			return s.apiError(c, err, "Failed to get profile")
		}
		profile = dto.NewProfileFromAdmin(admin)
	case entity.RoleEventManager:
		manager, err := s.userService.GetEventManager(c.Context(), identity.UserID)
		if err != nil {
			return s.apiError(c, err, "Failed to get profile")
		}
		profile = dto.NewProfileFromEventManager(manager)
	default:
		participant, err := s.userService.GetParticipant(c.Context(), identity.UserID)
		if err != nil {
			return s.apiError(c, err, "Failed to get profile")
		}
		profile = dto.NewProfileFromParticipant(participant)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    profile,
	})
}
