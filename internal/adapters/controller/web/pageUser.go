package web

import (
	"errors"
	"strings"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/dto"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

const usersPerPage = 10

func (s *Server) handleAddEventManagerPage(c *fiber.Ctx) error {
	if identityFrom(c).Role != entity.RoleAdmin {
		return c.SendStatus(fiber.StatusForbidden)
	}
	return c.Render("add_event_manager", fiber.Map{
		"Title": "Add Event Manager",
		"User":  identityFrom(c),
	}, "layouts/main")
}

func (s *Server) handleAddEventManagerSubmit(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleAdmin {
		return c.SendStatus(fiber.StatusForbidden)
	}

	renderError := func(message string) error {
		return c.Render("add_event_manager", fiber.Map{
			"Title": "Add Event Manager",
			"User":  identity,
			"Error": message,
		}, "layouts/main")
	}

	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	confirmPassword := c.FormValue("confirm_password")
	firstName := strings.TrimSpace(c.FormValue("first_name"))
	lastName := strings.TrimSpace(c.FormValue("last_name"))

	if email == "" || password == "" || firstName == "" || lastName == "" {
		return renderError("Please fill in all required fields")
	}
	if password != confirmPassword {
		return renderError("Passwords do not match. Please try again.")
	}
	if len(password) < 6 {
		return renderError("Password must be at least 6 characters long.")
	}

	manager := &entity.EventManager{
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: strings.TrimSpace(c.FormValue("phone_number")),
	}
	if _, err := s.userService.CreateEventManager(c.Context(), identity, manager, password); err != nil {
		if errors.Is(err, errorz.EmailTaken) {
			return renderError("Email already registered. Please use a different email.")
		}
		return renderError("An error occurred: " + err.Error())
	}
	return c.Redirect("/home")
}

func (s *Server) handleAllEventManagersPage(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleAdmin {
		return c.SendStatus(fiber.StatusForbidden)
	}

	search := strings.TrimSpace(c.Query("search"))
	page := c.QueryInt("page", 1)

	managers, total, err := s.userService.ListEventManagers(c.Context(), search, page, usersPerPage)
	if err != nil {
		return err
	}

	return c.Render("all_event_managers", fiber.Map{
		"Title":       "Event Managers",
		"User":        identity,
		"Managers":    managers,
		"Pagination":  dto.NewPagination(page, usersPerPage, total),
		"SearchQuery": search,
	}, "layouts/main")
}

func (s *Server) handleEditEventManagerPage(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleAdmin {
		return c.SendStatus(fiber.StatusForbidden)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	manager, err := s.userService.GetEventManager(c.Context(), uint(id))
	if err != nil {
		return pageError(c, err)
	}

	return c.Render("edit_event_manager", fiber.Map{
		"Title":   "Edit Event Manager",
		"User":    identity,
		"Manager": manager,
	}, "layouts/main")
}

func (s *Server) handleEditEventManagerSubmit(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleAdmin {
		return c.SendStatus(fiber.StatusForbidden)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	manager, err := s.userService.GetEventManager(c.Context(), uint(id))
	if err != nil {
		return pageError(c, err)
	}

	renderError := func(message string) error {
		return c.Render("edit_event_manager", fiber.Map{
			"Title":   "Edit Event Manager",
			"User":    identity,
			"Manager": manager,
			"Error":   message,
		}, "layouts/main")
	}

	email := strings.TrimSpace(c.FormValue("email"))
	firstName := strings.TrimSpace(c.FormValue("first_name"))
	lastName := strings.TrimSpace(c.FormValue("last_name"))
	if email == "" || firstName == "" || lastName == "" {
		return renderError("Please fill in all required fields")
	}

	newPassword, message := optionalPassword(c)
	if message != "" {
		return renderError(message)
	}

	manager.Email = email
	manager.FirstName = firstName
	manager.LastName = lastName
	manager.PhoneNumber = strings.TrimSpace(c.FormValue("phone_number"))
	manager.IsActive = c.FormValue("is_active") != ""

	if _, err = s.userService.UpdateEventManager(c.Context(), manager, newPassword); err != nil {
		if errors.Is(err, errorz.EmailTaken) {
			return renderError("Email already registered. Please use a different email.")
		}
		return renderError("An error occurred: " + err.Error())
	}
	return c.Redirect("/all_event_managers")
}

func (s *Server) handleAllParticipantsPage(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleAdmin {
		return c.SendStatus(fiber.StatusForbidden)
	}

	search := strings.TrimSpace(c.Query("search"))
	page := c.QueryInt("page", 1)

	participants, total, err := s.userService.ListParticipants(c.Context(), search, page, usersPerPage)
	if err != nil {
		return err
	}

	return c.Render("all_participants", fiber.Map{
		"Title":        "Participants",
		"User":         identity,
		"Participants": participants,
		"Pagination":   dto.NewPagination(page, usersPerPage, total),
		"SearchQuery":  search,
	}, "layouts/main")
}

func (s *Server) handleEditParticipantPage(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleAdmin {
		return c.SendStatus(fiber.StatusForbidden)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	participant, err := s.userService.GetParticipant(c.Context(), uint(id))
	if err != nil {
		return pageError(c, err)
	}

	return c.Render("edit_participant", fiber.Map{
		"Title":       "Edit Participant",
		"User":        identity,
		"Participant": participant,
	}, "layouts/main")
}

func (s *Server) handleEditParticipantSubmit(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleAdmin {
		return c.SendStatus(fiber.StatusForbidden)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	participant, err := s.userService.GetParticipant(c.Context(), uint(id))
	if err != nil {
		return pageError(c, err)
	}

	renderError := func(message string) error {
		return c.Render("edit_participant", fiber.Map{
			"Title":       "Edit Participant",
			"User":        identity,
			"Participant": participant,
			"Error":       message,
		}, "layouts/main")
	}

	email := strings.TrimSpace(c.FormValue("email"))
	firstName := strings.TrimSpace(c.FormValue("first_name"))
	lastName := strings.TrimSpace(c.FormValue("last_name"))
	if email == "" || firstName == "" || lastName == "" {
		return renderError("Please fill in all required fields")
	}

	newPassword, message := optionalPassword(c)
	if message != "" {
		return renderError(message)
	}

	participant.Email = email
	participant.FirstName = firstName
	participant.LastName = lastName
	participant.PhoneNumber = strings.TrimSpace(c.FormValue("phone_number"))
	participant.City = strings.TrimSpace(c.FormValue("city"))
	participant.State = strings.TrimSpace(c.FormValue("state"))
	participant.Country = strings.TrimSpace(c.FormValue("country"))
	participant.IsActive = c.FormValue("is_active") != ""

	if _, err = s.userService.UpdateParticipant(c.Context(), participant, newPassword); err != nil {
		if errors.Is(err, errorz.EmailTaken) {
			return renderError("Email already registered. Please use a different email.")
		}
		return renderError("An error occurred: " + err.Error())
	}
	return c.Redirect("/all_participants")
}

// optionalPassword reads the new-password pair of the edit forms. An empty
// pair keeps the current password.
func optionalPassword(c *fiber.Ctx) (string, string) {
	password := c.FormValue("password")
	confirmPassword := c.FormValue("confirm_password")
	if password == "" && confirmPassword == "" {
		return "", ""
	}
	if password != confirmPassword {
		return "", "Passwords do not match. Please try again."
	}
	if len(password) < 6 {
		return "", "Password must be at least 6 characters long."
	}
	return password, ""
}
