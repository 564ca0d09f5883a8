package dto

import (
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
)

type Event struct {
	EventID              uint       `json:"event_id"`
	EventManagerID       uint       `json:"event_manager_id"`
	EventTypeID          uint       `json:"event_type_id"`
	EventStatusID        uint       `json:"event_status_id"`
	EventName            string     `json:"event_name"`
	EventDescription     string     `json:"event_description,omitempty"`
	EventDate            time.Time  `json:"event_date"`
	Location             string     `json:"location,omitempty"`
	TotalSpots           *int       `json:"total_spots"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func NewEventFromEntity(event entity.Event) Event {
	return Event{
		EventID:              event.ID,
		EventManagerID:       event.EventManagerID,
		EventTypeID:          event.EventTypeID,
		EventStatusID:        event.EventStatusID,
		EventName:            event.Name,
		EventDescription:     event.Description,
		EventDate:            event.Date,
		Location:             event.Location,
		TotalSpots:           event.TotalSpots,
		RegistrationDeadline: event.RegistrationDeadline,
		CreatedAt:            event.CreatedAt,
		UpdatedAt:            event.UpdatedAt,
	}
}

func NewEventsFromEntities(events []entity.Event) []Event {
	out := make([]Event, 0, len(events))
	for _, event := range events {
		out = append(out, NewEventFromEntity(event))
	}
	return out
}
