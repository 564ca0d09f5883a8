package dto

import (
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
)

type Registration struct {
	RegistrationID          uint       `json:"registration_id"`
	EventID                 uint       `json:"event_id"`
	ParticipantID           uint       `json:"participant_id"`
	RegistrationStatusID    uint       `json:"registration_status_id"`
	AdditionalInfo          string     `json:"additional_info,omitempty"`
	RegisteredAt            time.Time  `json:"registered_at"`
	StatusUpdatedAt         *time.Time `json:"status_updated_at"`
	UpdatedByEventManagerID *uint      `json:"updated_by_event_manager_id"`
}

func NewRegistrationFromEntity(registration entity.Registration) Registration {
	return Registration{
		RegistrationID:          registration.ID,
		EventID:                 registration.EventID,
		ParticipantID:           registration.ParticipantID,
		RegistrationStatusID:    registration.RegistrationStatusID,
		AdditionalInfo:          registration.AdditionalInfo,
		RegisteredAt:            registration.RegisteredAt,
		StatusUpdatedAt:         registration.StatusUpdatedAt,
		UpdatedByEventManagerID: registration.UpdatedByEventManagerID,
	}
}

func NewRegistrationsFromEntities(registrations []entity.Registration) []Registration {
	out := make([]Registration, 0, len(registrations))
	for _, registration := range registrations {
		out = append(out, NewRegistrationFromEntity(registration))
	}
	return out
}
