package app

import (
	"time"

	"github.com/Badsnus/cu-events-portal/internal/adapters/config"
	"github.com/Badsnus/cu-events-portal/internal/adapters/controller/web"
	"github.com/Badsnus/cu-events-portal/internal/adapters/database/postgres"
	"github.com/Badsnus/cu-events-portal/internal/domain/service"
	"github.com/Badsnus/cu-events-portal/pkg/logger"
	"github.com/Badsnus/cu-events-portal/pkg/smtp"
	"github.com/spf13/viper"
)

// App wires storages, services and the HTTP server together.
type App struct {
	Server *web.Server
}

func New(cfg *config.Config) (*App, error) {
	httpLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}
	registrationLogger, err := logger.Named("registration")
	if err != nil {
		return nil, err
	}

	adminStorage := postgres.NewAdminStorage(cfg.Database)
	eventManagerStorage := postgres.NewEventManagerStorage(cfg.Database)
	participantStorage := postgres.NewParticipantStorage(cfg.Database)
	eventStorage := postgres.NewEventStorage(cfg.Database)
	eventTypeStorage := postgres.NewEventTypeStorage(cfg.Database)
	eventStatusStorage := postgres.NewEventStatusStorage(cfg.Database)
	registrationStorage := postgres.NewRegistrationStorage(cfg.Database)
	registrationStatusStorage := postgres.NewRegistrationStatusStorage(cfg.Database)

	authService := service.NewAuthService(adminStorage, eventManagerStorage, participantStorage)
	userService := service.NewUserService(adminStorage, eventManagerStorage, participantStorage, eventStorage, registrationStorage)
	eventService := service.NewEventService(eventStorage)
	statsService := service.NewStatsService(adminStorage, eventManagerStorage, participantStorage, eventStorage, registrationStorage)
	lookupService := service.NewLookupService(eventTypeStorage, eventStatusStorage, registrationStatusStorage)

	var registrationService *service.RegistrationService
	if cfg.SMTPDialer != nil {
		notifier := smtp.NewClient(
			cfg.SMTPDialer,
			viper.GetString("service.smtp.email"),
			viper.GetString("service.smtp.domain"),
		)
		registrationService = service.NewRegistrationService(registrationLogger, registrationStorage, eventStorage, registrationStatusStorage, participantStorage, notifier)
	} else {
		registrationService = service.NewRegistrationService(registrationLogger, registrationStorage, eventStorage, registrationStatusStorage, participantStorage, nil)
	}

	sessionTTL := viper.GetDuration("service.session.ttl")
	if sessionTTL == 0 {
		sessionTTL = 24 * time.Hour
	}

	server, err := web.New(
		web.Config{
			Host:       viper.GetString("service.http.host"),
			Port:       viper.GetInt("service.http.port"),
			Debug:      viper.GetBool("settings.debug"),
			SessionTTL: sessionTTL,
		},
		httpLogger,
		cfg.Redis.Sessions,
		web.Services{
			Auth:         authService,
			User:         userService,
			Event:        eventService,
			Registration: registrationService,
			Stats:        statsService,
			Lookup:       lookupService,
		},
	)
	if err != nil {
		return nil, err
	}

	return &App{Server: server}, nil
}

func (a *App) Start() error {
	logger.Log.Info("HTTP server starting")
	return a.Server.Serve()
}
