package web

import (
	"errors"
	"strings"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleLoginPage(c *fiber.Ctx) error {
	if !identityFrom(c).IsZero() {
		return c.Redirect("/home")
	}
	return c.Render("login", fiber.Map{
		"Title": "Sign In",
	}, "layouts/main")
}

func (s *Server) handleSubmitLogin(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if email == "" || password == "" {
		return c.Render("login", fiber.Map{
			"Title": "Sign In",
			"Error": "Please enter both email and password.",
		}, "layouts/main")
	}

	identity, err := s.authService.Authenticate(c.Context(), email, password)
	if err != nil {
		if !errors.Is(err, errorz.InvalidCredentials) {
			return err
		}
		// The page form tells an unknown email apart from a wrong
		// password; the JSON API deliberately does not.
		known, knownErr := s.authService.EmailKnown(c.Context(), email)
		if knownErr != nil {
			return knownErr
		}
		message := "Invalid email or password. Please check your credentials and try again."
		if known {
			message = "Invalid password. Please check your password and try again."
		}
		return c.Render("login", fiber.Map{
			"Title": "Sign In",
			"Error": message,
		}, "layouts/main")
	}

	token, err := s.sessions.Create(c.Context(), identity)
	if err != nil {
		return err
	}
	s.setSessionCookie(c, token)
	return c.Redirect("/home")
}

func (s *Server) handleSignupPage(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{
		"Title": "Sign Up",
	}, "layouts/main")
}

func (s *Server) handleSignupSubmit(c *fiber.Ctx) error {
	renderError := func(message string) error {
		return c.Render("signup", fiber.Map{
			"Title": "Sign Up",
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
		return renderError("Passwords do not match")
	}
	if len(password) < 6 {
		return renderError("Password must be at least 6 characters long")
	}

	participant := &entity.Participant{
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: strings.TrimSpace(c.FormValue("phone_number")),
		City:        strings.TrimSpace(c.FormValue("city")),
		State:       strings.TrimSpace(c.FormValue("state")),
		Country:     strings.TrimSpace(c.FormValue("country")),
	}

	created, err := s.userService.SignUpParticipant(c.Context(), participant, password)
	if err != nil {
		if errors.Is(err, errorz.EmailTaken) {
			return renderError("Email already registered. Please use a different email or sign in.")
		}
		return renderError("An error occurred during registration: " + err.Error())
	}

	token, err := s.sessions.Create(c.Context(), created.Identity())
	if err != nil {
		return err
	}
	s.setSessionCookie(c, token)
	return c.Redirect("/home")
}

func (s *Server) handleLogoutPage(c *fiber.Ctx) error {
	s.clearSession(c)
	return c.Redirect("/")
}
