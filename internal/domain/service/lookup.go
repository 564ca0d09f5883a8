package service

import (
	"context"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
)

type eventTypeStorage interface {
	GetAll(ctx context.Context) ([]entity.EventType, error)
}

type eventStatusStorage interface {
	GetAll(ctx context.Context) ([]entity.EventStatus, error)
}

type lookupRegistrationStatusStorage interface {
	GetAll(ctx context.Context) ([]entity.RegistrationStatus, error)
}

// LookupService exposes the admin-seeded reference tables for dropdowns.
type LookupService struct {
	eventTypeStorage          eventTypeStorage
	eventStatusStorage        eventStatusStorage
	registrationStatusStorage lookupRegistrationStatusStorage
}

func NewLookupService(
	eventTypeStorage eventTypeStorage,
	eventStatusStorage eventStatusStorage,
	registrationStatusStorage lookupRegistrationStatusStorage,
) *LookupService {
	return &LookupService{
		eventTypeStorage:          eventTypeStorage,
		eventStatusStorage:        eventStatusStorage,
		registrationStatusStorage: registrationStatusStorage,
	}
}

func (s *LookupService) EventTypes(ctx context.Context) ([]entity.EventType, error) {
	return s.eventTypeStorage.GetAll(ctx)
}

func (s *LookupService) EventStatuses(ctx context.Context) ([]entity.EventStatus, error) {
	return s.eventStatusStorage.GetAll(ctx)
}

func (s *LookupService) RegistrationStatuses(ctx context.Context) ([]entity.RegistrationStatus, error) {
	return s.registrationStatusStorage.GetAll(ctx)
}
