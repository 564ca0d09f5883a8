package web

import (
	"errors"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/gofiber/fiber/v2"
)

// apiError maps a domain error to its HTTP status and writes the JSON error
// envelope. Unknown errors become a 500 with the fallback message and the
// error text in details.
func (s *Server) apiError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, errorz.AlreadyRegistered),
		errors.Is(err, errorz.DeadlineExpired),
		errors.Is(err, errorz.EventFull),
		errors.Is(err, errorz.AlreadyCancelled),
		errors.Is(err, errorz.InvalidStatus),
		errors.Is(err, errorz.HasDependents),
		errors.Is(err, errorz.EmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, errorz.InvalidCredentials),
		errors.Is(err, errorz.NotAuthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, errorz.Forbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	case errors.Is(err, errorz.EventNotFound),
		errors.Is(err, errorz.RegistrationNotFound),
		errors.Is(err, errorz.UserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, errorz.NoRegistrationStatuses):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Registration system error: No registration statuses found.",
		})
	default:
		s.logger.Errorf("%s: %v", fallback, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   fallback,
			"details": err.Error(),
		})
	}
}
