package entity

import "time"

type EventType struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	CreatedAt   time.Time
}

type EventStatus struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	CreatedAt   time.Time
}

type Event struct {
	ID                   uint `gorm:"primaryKey"`
	EventManagerID       uint `gorm:"not null;index"`
	EventManager         EventManager
	EventTypeID          uint `gorm:"not null"`
	EventType            EventType
	EventStatusID        uint `gorm:"not null"`
	EventStatus          EventStatus
	Name                 string `gorm:"not null"`
	Description          string
	Date                 time.Time `gorm:"not null"`
	Location             string
	TotalSpots           *int
	RegistrationDeadline *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasCapacity reports whether the event limits its spots. A nil or zero
// TotalSpots means unlimited.
func (e *Event) HasCapacity() bool {
	return e.TotalSpots != nil && *e.TotalSpots > 0
}

// RegistrationOpen reports whether registrations are still accepted at the
// given moment. Events without a deadline accept registrations indefinitely.
func (e *Event) RegistrationOpen(now time.Time) bool {
	return e.RegistrationDeadline == nil || !now.After(*e.RegistrationDeadline)
}

func (e *Event) OwnedBy(managerID uint) bool {
	return e.EventManagerID == managerID
}

// EventFilter narrows event queries. Zero fields are ignored.
type EventFilter struct {
	ManagerID  *uint
	StatusID   *uint
	NameSearch string
	After      *time.Time
}
