package dto

import (
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
)

// Profile is the role-specific view of the logged-in user. Fields that do
// not apply to a role are omitted.
type Profile struct {
	AdminID          uint      `json:"admin_id,omitempty"`
	EventManagerID   uint      `json:"event_manager_id,omitempty"`
	CreatedByAdminID uint      `json:"created_by_admin_id,omitempty"`
	ParticipantID    uint      `json:"participant_id,omitempty"`
	Role             string    `json:"role"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	City             string    `json:"city,omitempty"`
	State            string    `json:"state,omitempty"`
	Country          string    `json:"country,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	IsActive         bool      `json:"is_active"`
}

func NewProfileFromAdmin(admin *entity.Admin) Profile {
	return Profile{
		AdminID:     admin.ID,
		Role:        admin.Role,
		Email:       admin.Email,
		FirstName:   admin.FirstName,
		LastName:    admin.LastName,
		PhoneNumber: admin.PhoneNumber,
		CreatedAt:   admin.CreatedAt,
		IsActive:    admin.IsActive,
	}
}

func NewProfileFromEventManager(manager *entity.EventManager) Profile {
	return Profile{
		EventManagerID:   manager.ID,
		CreatedByAdminID: manager.CreatedByAdminID,
		Role:             manager.Role,
		Email:            manager.Email,
		FirstName:        manager.FirstName,
		LastName:         manager.LastName,
		PhoneNumber:      manager.PhoneNumber,
		CreatedAt:        manager.CreatedAt,
		IsActive:         manager.IsActive,
	}
}

func NewProfileFromParticipant(participant *entity.Participant) Profile {
	return Profile{
		ParticipantID: participant.ID,
		Role:          participant.Role,
		Email:         participant.Email,
		FirstName:     participant.FirstName,
		LastName:      participant.LastName,
		PhoneNumber:   participant.PhoneNumber,
		City:          participant.City,
		State:         participant.State,
		Country:       participant.Country,
		CreatedAt:     participant.CreatedAt,
		IsActive:      participant.IsActive,
	}
}

// SessionUser is the compact identity returned by the login endpoint.
type SessionUser struct {
	ID    uint   `json:"id"`
	Type  string `json:"type"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignUpRequest struct {
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" form:"first_name" validate:"required"`
	LastName        string `json:"last_name" form:"last_name" validate:"required"`
	PhoneNumber     string `json:"phone_number" form:"phone_number"`
	City            string `json:"city" form:"city"`
	State           string `json:"state" form:"state"`
	Country         string `json:"country" form:"country"`
}

type CreateEventManagerRequest struct {
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" form:"first_name" validate:"required"`
	LastName        string `json:"last_name" form:"last_name" validate:"required"`
	PhoneNumber     string `json:"phone_number" form:"phone_number"`
	Role            string `json:"role" form:"role"`
}

type UpdateRegistrationStatusRequest struct {
	RegistrationStatusID uint `json:"registration_status_id" validate:"required"`
}

type RegisterRequest struct {
	AdditionalInfo string `json:"additional_info" form:"additional_info"`
}
