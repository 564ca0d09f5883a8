package web

import (
	"errors"
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

const (
	identityKey = "identity"
	cookieName  = "session_token"
)

// loadIdentity resolves the session cookie to an identity and stores it in
// the request locals. A missing or expired session is not an error here;
// the guards below decide what an anonymous request may do.
func (s *Server) loadIdentity(c *fiber.Ctx) error {
	token := c.Cookies(cookieName)
	if token == "" {
		return c.Next()
	}

	identity, err := s.sessions.Get(c.Context(), token)
	if err != nil {
		if !errors.Is(err, errorz.NotAuthorized) {
			s.logger.Errorf("failed to resolve session: %v", err)
		}
		return c.Next()
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// identityFrom returns the identity loaded for this request, zero when the
// request is anonymous.
func identityFrom(c *fiber.Ctx) entity.Identity {
	identity, _ := c.Locals(identityKey).(entity.Identity)
	return identity
}

func (s *Server) requireAPIAuth(c *fiber.Ctx) error {
	if identityFrom(c).IsZero() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}
	return c.Next()
}

// requireAPIRole guards a single API handler. The message matches the
// endpoint so clients see what role the operation expects.
func requireAPIRole(c *fiber.Ctx, role entity.Role, message string) bool {
	if identityFrom(c).Role != role {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": message,
		})
		return false
	}
	return true
}

func (s *Server) requirePageAuth(c *fiber.Ctx) error {
	if identityFrom(c).IsZero() {
		return c.Redirect("/")
	}
	return c.Next()
}

// setSessionCookie hands the opaque session token to the browser.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.SessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSession drops the server-side session and the cookie. Logging out an
// anonymous request is a no-op.
func (s *Server) clearSession(c *fiber.Ctx) {
	if token := c.Cookies(cookieName); token != "" {
		if err := s.sessions.Delete(c.Context(), token); err != nil {
			s.logger.Errorf("failed to delete session: %v", err)
		}
	}
	c.ClearCookie(cookieName)
}
