package web

import (
	"strings"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleHomePage(c *fiber.Ctx) error {
	identity := identityFrom(c)

	switch identity.Role {
	case entity.RoleAdmin:
		stats, err := s.statsService.AdminStats(c.Context())
		if err != nil {
			return err
		}
		return c.Render("dashboard_admin", fiber.Map{
			"Title": "Admin Dashboard",
			"User":  identity,
			"Stats": stats,
		}, "layouts/main")
	case entity.RoleEventManager:
		stats, err := s.statsService.ManagerStats(c.Context(), identity.UserID)
		if err != nil {
			return err
		}
		return c.Render("dashboard_event_manager", fiber.Map{
			"Title": "Event Manager Dashboard",
			"User":  identity,
			"Stats": stats,
		}, "layouts/main")
	default:
		stats, err := s.statsService.ParticipantStats(c.Context(), identity.UserID)
		if err != nil {
			return err
		}
		return c.Render("dashboard_participant", fiber.Map{
			"Title": "Participant Dashboard",
			"User":  identity,
			"Stats": stats,
		}, "layouts/main")
	}
}

func (s *Server) handleProfilePage(c *fiber.Ctx) error {
	return s.renderProfile(c, "")
}

// handleProfileSubmit lets users edit their own name, phone and, for
// participants, location fields. Email and password stay as they are.
func (s *Server) handleProfileSubmit(c *fiber.Ctx) error {
	identity := identityFrom(c)

	firstName := strings.TrimSpace(c.FormValue("first_name"))
	lastName := strings.TrimSpace(c.FormValue("last_name"))
	phoneNumber := strings.TrimSpace(c.FormValue("phone_number"))

	var err error
	switch identity.Role {
	case entity.RoleAdmin:
		var admin *entity.Admin
		if admin, err = s.userService.GetAdmin(c.Context(), identity.UserID); err == nil {
			admin.FirstName = firstName
			admin.LastName = lastName
			admin.PhoneNumber = phoneNumber
			_, err = s.userService.UpdateAdmin(c.Context(), admin)
		}
	case entity.RoleEventManager:
		var manager *entity.EventManager
		if manager, err = s.userService.GetEventManager(c.Context(), identity.UserID); err == nil {
			manager.FirstName = firstName
			manager.LastName = lastName
			manager.PhoneNumber = phoneNumber
			_, err = s.userService.UpdateEventManager(c.Context(), manager, "")
		}
	default:
		var participant *entity.Participant
		if participant, err = s.userService.GetParticipant(c.Context(), identity.UserID); err == nil {
			participant.FirstName = firstName
			participant.LastName = lastName
			participant.PhoneNumber = phoneNumber
			participant.City = strings.TrimSpace(c.FormValue("city"))
			participant.State = strings.TrimSpace(c.FormValue("state"))
			participant.Country = strings.TrimSpace(c.FormValue("country"))
			_, err = s.userService.UpdateParticipant(c.Context(), participant, "")
		}
	}

	message := "Profile updated successfully."
	if err != nil {
		s.logger.Errorf("failed to update profile for %s %d: %v", identity.Role, identity.UserID, err)
		message = "Failed to update profile. Please try again."
	}
	return s.renderProfile(c, message)
}

func (s *Server) renderProfile(c *fiber.Ctx, message string) error {
	identity := identityFrom(c)

	data := fiber.Map{
		"Title":   "My Profile",
		"User":    identity,
		"Message": message,
	}

	switch identity.Role {
	case entity.RoleAdmin:
		admin, err := s.userService.GetAdmin(c.Context(), identity.UserID)
		if err != nil {
			return err
		}
		data["Admin"] = admin
	case entity.RoleEventManager:
		manager, err := s.userService.GetEventManager(c.Context(), identity.UserID)
		if err != nil {
			return err
		}
		data["Manager"] = manager
	default:
		participant, err := s.userService.GetParticipant(c.Context(), identity.UserID)
		if err != nil {
			return err
		}
		data["Participant"] = participant
	}

	return c.Render("profile", data, "layouts/main")
}
