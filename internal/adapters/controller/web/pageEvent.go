package web

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/dto"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/Badsnus/cu-events-portal/internal/domain/service"
	"github.com/gofiber/fiber/v2"
)

const eventsPerPage = 12

// pageError translates domain errors into plain HTTP statuses for the page
// surface. Anything unexpected bubbles up to the fiber error handler.
func pageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errorz.Forbidden):
		return c.SendStatus(fiber.StatusForbidden)
	case errors.Is(err, errorz.EventNotFound),
		errors.Is(err, errorz.RegistrationNotFound),
		errors.Is(err, errorz.UserNotFound):
		return c.SendStatus(fiber.StatusNotFound)
	default:
		return err
	}
}

func (s *Server) handleEventsPage(c *fiber.Ctx) error {
	return s.renderEventList(c, "events", "Events", false)
}

func (s *Server) handleUpcomingEventsPage(c *fiber.Ctx) error {
	return s.renderEventList(c, "upcoming_events", "Upcoming Events", true)
}

func (s *Server) renderEventList(c *fiber.Ctx, template, title string, upcomingOnly bool) error {
	identity := identityFrom(c)
	search := strings.TrimSpace(c.Query("search"))

	params := service.EventListParams{
		Search:       search,
		UpcomingOnly: upcomingOnly,
		Page:         c.QueryInt("page", 1),
		PerPage:      eventsPerPage,
	}
	events, total, err := s.eventService.List(c.Context(), identity, params)
	if err != nil {
		return err
	}

	return c.Render(template, fiber.Map{
		"Title":       title,
		"User":        identity,
		"Events":      events,
		"Pagination":  dto.NewPagination(params.Page, params.PerPage, total),
		"SearchQuery": search,
	}, "layouts/main")
}

func (s *Server) handleRegisteredEventsPage(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleParticipant {
		return c.Redirect("/events")
	}

	registrations, err := s.registrationService.ListByParticipant(c.Context(), identity)
	if err != nil {
		return err
	}

	return c.Render("registered_events", fiber.Map{
		"Title":         "My Registered Events",
		"User":          identity,
		"Registrations": registrations,
	}, "layouts/main")
}

func (s *Server) handleAddEventPage(c *fiber.Ctx) error {
	if identityFrom(c).Role != entity.RoleEventManager {
		return c.SendStatus(fiber.StatusForbidden)
	}
	return s.renderEventForm(c, "add_event", "Add Event", nil, "")
}

func (s *Server) handleAddEventSubmit(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleEventManager {
		return c.SendStatus(fiber.StatusForbidden)
	}

	event, formErr := parseEventForm(c)
	if formErr != "" {
		return s.renderEventForm(c, "add_event", "Add Event", nil, formErr)
	}

	if _, err := s.eventService.Create(c.Context(), event, identity); err != nil {
		return s.renderEventForm(c, "add_event", "Add Event", nil, "An error occurred: "+err.Error())
	}
	return c.Redirect("/events")
}

func (s *Server) handleEventDetailPage(c *fiber.Ctx) error {
	identity := identityFrom(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}

	event, err := s.eventService.Get(c.Context(), uint(id), identity)
	if err != nil {
		return pageError(c, err)
	}

	data := fiber.Map{
		"Title": event.Name,
		"User":  identity,
		"Event": event,
	}

	if identity.Role == entity.RoleAdmin || identity.Role == entity.RoleEventManager {
		registrations, err := s.registrationService.ListByEvent(c.Context(), event.ID, identity)
		if err != nil {
			return pageError(c, err)
		}
		statuses, err := s.lookupService.RegistrationStatuses(c.Context())
		if err != nil {
			return err
		}
		data["Registrations"] = registrations
		data["RegistrationStatuses"] = statuses

		if event.HasCapacity() {
			approved, err := s.registrationService.CountApproved(c.Context(), event.ID)
			if err != nil {
				return err
			}
			data["ApprovedCount"] = approved
		}
	}

	return c.Render("event_detail", data, "layouts/main")
}

func (s *Server) handleEditEventPage(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role == entity.RoleParticipant {
		return c.SendStatus(fiber.StatusForbidden)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	event, err := s.eventService.Get(c.Context(), uint(id), identity)
	if err != nil {
		return pageError(c, err)
	}

	return s.renderEventForm(c, "edit_event", "Edit Event", event, "")
}

func (s *Server) handleEditEventSubmit(c *fiber.Ctx) error {
	identity := identityFrom(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	existing, err := s.eventService.Get(c.Context(), uint(id), identity)
	if err != nil {
		return pageError(c, err)
	}

	event, formErr := parseEventForm(c)
	if formErr != "" {
		return s.renderEventForm(c, "edit_event", "Edit Event", existing, formErr)
	}
	event.ID = existing.ID

	if _, err = s.eventService.Update(c.Context(), event, identity); err != nil {
		if errors.Is(err, errorz.Forbidden) {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return s.renderEventForm(c, "edit_event", "Edit Event", existing, "An error occurred: "+err.Error())
	}
	return c.Redirect("/events/" + strconv.Itoa(int(event.ID)))
}

func (s *Server) handleRegisterEventPage(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleParticipant {
		return c.Redirect("/events")
	}

	eventID, err := c.ParamsInt("event_id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	event, err := s.eventService.Get(c.Context(), uint(eventID), identity)
	if err != nil {
		return pageError(c, err)
	}

	return c.Render("register_event", fiber.Map{
		"Title": "Register for " + event.Name,
		"User":  identity,
		"Event": event,
	}, "layouts/main")
}

func (s *Server) handleRegisterEventSubmit(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleParticipant {
		return c.Redirect("/events")
	}

	eventID, err := c.ParamsInt("event_id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	event, err := s.eventService.Get(c.Context(), uint(eventID), identity)
	if err != nil {
		return pageError(c, err)
	}

	additionalInfo := strings.TrimSpace(c.FormValue("additional_info"))
	if _, err = s.registrationService.Register(c.Context(), event.ID, identity, additionalInfo); err != nil {
		return c.Render("register_event", fiber.Map{
			"Title": "Register for " + event.Name,
			"User":  identity,
			"Event": event,
			"Error": registerErrorMessage(err),
		}, "layouts/main")
	}
	return c.Redirect("/registered_events")
}

func (s *Server) handleCancelRegistrationSubmit(c *fiber.Ctx) error {
	identity := identityFrom(c)
	if identity.Role != entity.RoleParticipant {
		return c.Redirect("/events")
	}

	eventID, err := c.ParamsInt("event_id")
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if _, err = s.registrationService.Cancel(c.Context(), uint(eventID), identity); err != nil {
		return pageError(c, err)
	}
	return c.Redirect("/registered_events")
}

func (s *Server) renderEventForm(c *fiber.Ctx, template, title string, event *entity.Event, formError string) error {
	eventTypes, err := s.lookupService.EventTypes(c.Context())
	if err != nil {
		return err
	}
	eventStatuses, err := s.lookupService.EventStatuses(c.Context())
	if err != nil {
		return err
	}

	return c.Render(template, fiber.Map{
		"Title":         title,
		"User":          identityFrom(c),
		"Event":         event,
		"EventTypes":    eventTypes,
		"EventStatuses": eventStatuses,
		"Error":         formError,
	}, "layouts/main")
}

// parseEventForm reads the add/edit event form. It returns the parsed event
// or a user-facing validation message.
func parseEventForm(c *fiber.Ctx) (*entity.Event, string) {
	name := strings.TrimSpace(c.FormValue("event_name"))
	dateStr := strings.TrimSpace(c.FormValue("event_date"))
	typeID := strings.TrimSpace(c.FormValue("event_type_id"))
	statusID := strings.TrimSpace(c.FormValue("event_status_id"))

	if name == "" || dateStr == "" || typeID == "" || statusID == "" {
		return nil, "Please fill in all required fields (Event Name, Date, Type, and Status)"
	}

	date, err := parseDateAndTime(dateStr, strings.TrimSpace(c.FormValue("event_time")))
	if err != nil {
		return nil, "Invalid date format: " + err.Error()
	}

	var deadline *time.Time
	if deadlineDate := strings.TrimSpace(c.FormValue("registration_deadline_date")); deadlineDate != "" {
		parsed, err := parseDateAndTime(deadlineDate, strings.TrimSpace(c.FormValue("registration_deadline_time")))
		if err != nil {
			return nil, "Invalid date format: " + err.Error()
		}
		deadline = &parsed
	}

	eventTypeID, err := strconv.Atoi(typeID)
	if err != nil {
		return nil, "Please fill in all required fields (Event Name, Date, Type, and Status)"
	}
	eventStatusID, err := strconv.Atoi(statusID)
	if err != nil {
		return nil, "Please fill in all required fields (Event Name, Date, Type, and Status)"
	}

	// A non-numeric spots value means unlimited, same as leaving it empty.
	var totalSpots *int
	if spots := strings.TrimSpace(c.FormValue("total_spots")); spots != "" {
		if parsed, err := strconv.Atoi(spots); err == nil {
			totalSpots = &parsed
		}
	}

	return &entity.Event{
		EventTypeID:          uint(eventTypeID),
		EventStatusID:        uint(eventStatusID),
		Name:                 name,
		Description:          strings.TrimSpace(c.FormValue("event_description")),
		Date:                 date,
		Location:             strings.TrimSpace(c.FormValue("location")),
		TotalSpots:           totalSpots,
		RegistrationDeadline: deadline,
	}, ""
}

func parseDateAndTime(dateStr, timeStr string) (time.Time, error) {
	if timeStr != "" {
		return time.Parse("2006-01-02 15:04", dateStr+" "+timeStr)
	}
	return time.Parse("2006-01-02", dateStr)
}

// registerErrorMessage turns a registration failure into the inline message
// shown on the registration form.
func registerErrorMessage(err error) string {
	switch {
	case errors.Is(err, errorz.AlreadyRegistered):
		return "You are already registered for this event."
	case errors.Is(err, errorz.DeadlineExpired):
		return "The registration deadline for this event has passed."
	case errors.Is(err, errorz.EventFull):
		return "This event is full. No more spots available."
	default:
		return "Registration failed: " + err.Error()
	}
}
