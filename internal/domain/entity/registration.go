package entity

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// StatusKind is the semantic category of a registration status. It is
// computed from the status name once, when the row is written, so the
// capacity checks never have to re-match names at query time.
type StatusKind string

const (
	StatusPending   StatusKind = "pending"
	StatusApproved  StatusKind = "approved"
	StatusRejected  StatusKind = "rejected"
	StatusCancelled StatusKind = "cancelled"
	StatusOther     StatusKind = "other"
)

// ClassifyStatusName maps a free-text status name to its kind. Matching is
// case-insensitive substring matching, same families the admins rely on:
// cancel, reject/declin, approv/accept/confirm, pending.
func ClassifyStatusName(name string) StatusKind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "cancel"):
		return StatusCancelled
	case strings.Contains(n, "reject"), strings.Contains(n, "declin"):
		return StatusRejected
	case strings.Contains(n, "approv"), strings.Contains(n, "accept"), strings.Contains(n, "confirm"):
		return StatusApproved
	case strings.Contains(n, "pending"):
		return StatusPending
	default:
		return StatusOther
	}
}

type RegistrationStatus struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Kind        StatusKind `gorm:"not null;default:other;index"`
	CreatedAt   time.Time
}

func (s *RegistrationStatus) BeforeSave(_ *gorm.DB) error {
	s.Kind = ClassifyStatusName(s.Name)
	return nil
}

// CountsAgainstCapacity reports whether a registration in this status
// occupies a spot. Cancelled and rejected registrations free their spot.
func (s *RegistrationStatus) CountsAgainstCapacity() bool {
	return s.Kind != StatusCancelled && s.Kind != StatusRejected
}

type Registration struct {
	ID                      uint `gorm:"primaryKey"`
	EventID                 uint `gorm:"not null;uniqueIndex:idx_event_participant"`
	Event                   Event
	ParticipantID           uint `gorm:"not null;uniqueIndex:idx_event_participant"`
	Participant             Participant
	RegistrationStatusID    uint `gorm:"not null"`
	RegistrationStatus      RegistrationStatus
	AdditionalInfo          string
	RegisteredAt            time.Time `gorm:"autoCreateTime"`
	StatusUpdatedAt         *time.Time
	UpdatedByEventManagerID *uint
}
