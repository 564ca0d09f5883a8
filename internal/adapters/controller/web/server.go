package web

import (
	"io/fs"
	"net/http"
	"strconv"
	"time"

	embedded "github.com/Badsnus/cu-events-portal"
	"github.com/Badsnus/cu-events-portal/internal/adapters/database/redis/sessions"
	"github.com/Badsnus/cu-events-portal/internal/domain/service"
	"github.com/Badsnus/cu-events-portal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
)

// Config holds the listener settings of the HTTP server.
type Config struct {
	Host       string
	Port       int
	Debug      bool
	SessionTTL time.Duration
}

// Services bundles the domain services the handlers dispatch to.
type Services struct {
	Auth         *service.AuthService
	User         *service.UserService
	Event        *service.EventService
	Registration *service.RegistrationService
	Stats        *service.StatsService
	Lookup       *service.LookupService
}

// Server is the HTTP surface: the JSON API under /api and the
// server-rendered pages.
type Server struct {
	logger   *logger.Logger
	cfg      Config
	app      *fiber.App
	sessions *sessions.Storage

	authService         *service.AuthService
	userService         *service.UserService
	eventService        *service.EventService
	registrationService *service.RegistrationService
	statsService        *service.StatsService
	lookupService       *service.LookupService
}

func New(cfg Config, log *logger.Logger, sessionStorage *sessions.Storage, services Services) (*Server, error) {
	server := &Server{
		logger:   log,
		cfg:      cfg,
		sessions: sessionStorage,

		authService:         services.Auth,
		userService:         services.User,
		eventService:        services.Event,
		registrationService: services.Registration,
		statsService:        services.Stats,
		lookupService:       services.Lookup,
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)
	engine.AddFunc("FormatDateTime", formatDateTime)
	engine.AddFunc("FormatDeadline", formatDeadline)
	engine.AddFunc("Inc", func(n int) int { return n + 1 })
	engine.AddFunc("Dec", func(n int) int { return n - 1 })

	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(server.loadIdentity)

	api := app.Group("/api")
	api.Get("/health", server.handleAPIHealth)
	api.Post("/login", server.handleAPILogin)
	api.Post("/logout", server.handleAPILogout)
	api.Use(server.requireAPIAuth)
	api.Get("/profile", server.handleAPIProfile)
	api.Get("/events", server.handleAPIEvents)
	api.Get("/events/:id", server.handleAPIEvent)
	api.Get("/events/:id/qr", server.handleAPIEventQR)
	api.Post("/register/:event_id", server.handleAPIRegister)
	api.Get("/my-registrations", server.handleAPIMyRegistrations)
	api.Put("/registration/:id/status", server.handleAPIUpdateRegistrationStatus)
	api.Post("/cancel-registration/:event_id", server.handleAPICancelRegistration)
	api.Delete("/event_manager/:id", server.handleAPIDeleteEventManager)
	api.Delete("/participant/:id", server.handleAPIDeleteParticipant)

	app.Get("/", server.handleLoginPage)
	app.Post("/submit_login", server.handleSubmitLogin)
	app.Get("/signup", server.handleSignupPage)
	app.Post("/signup", server.handleSignupSubmit)
	app.Get("/logout", server.handleLogoutPage)

	pages := app.Group("", server.requirePageAuth)
	pages.Get("/home", server.handleHomePage)
	pages.Get("/profile", server.handleProfilePage)
	pages.Post("/profile", server.handleProfileSubmit)
	pages.Get("/events", server.handleEventsPage)
	pages.Get("/upcoming_events", server.handleUpcomingEventsPage)
	pages.Get("/registered_events", server.handleRegisteredEventsPage)
	pages.Get("/add_event", server.handleAddEventPage)
	pages.Post("/add_event", server.handleAddEventSubmit)
	pages.Get("/events/:id", server.handleEventDetailPage)
	pages.Get("/edit_event/:id", server.handleEditEventPage)
	pages.Post("/edit_event/:id", server.handleEditEventSubmit)
	pages.Get("/register/:event_id", server.handleRegisterEventPage)
	pages.Post("/register/:event_id", server.handleRegisterEventSubmit)
	pages.Post("/cancel_registration/:event_id", server.handleCancelRegistrationSubmit)
	pages.Get("/add_event_manager", server.handleAddEventManagerPage)
	pages.Post("/add_event_manager", server.handleAddEventManagerSubmit)
	pages.Get("/all_event_managers", server.handleAllEventManagersPage)
	pages.Get("/edit_event_manager/:id", server.handleEditEventManagerPage)
	pages.Post("/edit_event_manager/:id", server.handleEditEventManagerSubmit)
	pages.Get("/all_participants", server.handleAllParticipantsPage)
	pages.Get("/edit_participant/:id", server.handleEditParticipantPage)
	pages.Post("/edit_participant/:id", server.handleEditParticipantSubmit)

	server.app = app
	return server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func formatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

func formatDeadline(t *time.Time) string {
	if t == nil {
		return "None"
	}
	return formatDateTime(*t)
}
