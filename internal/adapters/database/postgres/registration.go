package postgres

import (
	"context"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"gorm.io/gorm"
)

type RegistrationStorage struct {
	db *gorm.DB
}

func NewRegistrationStorage(db *gorm.DB) *RegistrationStorage {
	return &RegistrationStorage{
		db: db,
	}
}

// Create is a function that creates a new registration in the database.
func (s *RegistrationStorage) Create(ctx context.Context, registration *entity.Registration) (*entity.Registration, error) {
	err := s.db.WithContext(ctx).Create(&registration).Error
	return registration, err
}

// Get is a function that gets a registration from the database by id.
func (s *RegistrationStorage) Get(ctx context.Context, id uint) (*entity.Registration, error) {
	var registration entity.Registration
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&registration).Error
	return &registration, err
}

// GetByEventAndParticipant is a function that gets the registration of a
// participant for an event. At most one exists per pair.
func (s *RegistrationStorage) GetByEventAndParticipant(ctx context.Context, eventID, participantID uint) (*entity.Registration, error) {
	var registration entity.Registration
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND participant_id = ?", eventID, participantID).
		First(&registration).Error
	return &registration, err
}

// Update is a function that updates a registration in the database.
func (s *RegistrationStorage) Update(ctx context.Context, registration *entity.Registration) (*entity.Registration, error) {
	err := s.db.WithContext(ctx).Save(&registration).Error
	return registration, err
}

// GetByParticipant is a function that gets all registrations of a participant
// with their event and status preloaded, newest first.
func (s *RegistrationStorage) GetByParticipant(ctx context.Context, participantID uint) ([]entity.Registration, error) {
	var registrations []entity.Registration
	err := s.db.WithContext(ctx).
		Preload("Event").
		Preload("RegistrationStatus").
		Where("participant_id = ?", participantID).
		Order("registered_at DESC").
		Find(&registrations).Error
	return registrations, err
}

// GetByEvent is a function that gets all registrations for an event with
// their participant and status preloaded, newest first.
func (s *RegistrationStorage) GetByEvent(ctx context.Context, eventID uint) ([]entity.Registration, error) {
	var registrations []entity.Registration
	err := s.db.WithContext(ctx).
		Preload("Participant").
		Preload("RegistrationStatus").
		Where("event_id = ?", eventID).
		Order("registered_at DESC").
		Find(&registrations).Error
	return registrations, err
}

// CountActiveByEvent is a function that counts the registrations of an event
// that occupy a spot, i.e. whose status kind is neither cancelled nor
// rejected.
func (s *RegistrationStorage) CountActiveByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Registration{}).
		Joins("JOIN registration_statuses ON registration_statuses.id = registrations.registration_status_id").
		Where("registrations.event_id = ?", eventID).
		Where("registration_statuses.kind NOT IN ?", []entity.StatusKind{entity.StatusCancelled, entity.StatusRejected}).
		Count(&count).Error
	return count, err
}

// CountApprovedByEvent is a function that counts the approved registrations
// of an event.
func (s *RegistrationStorage) CountApprovedByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Registration{}).
		Joins("JOIN registration_statuses ON registration_statuses.id = registrations.registration_status_id").
		Where("registrations.event_id = ?", eventID).
		Where("registration_statuses.kind = ?", entity.StatusApproved).
		Count(&count).Error
	return count, err
}

// CountByParticipant is a function that counts the registrations of a
// participant.
func (s *RegistrationStorage) CountByParticipant(ctx context.Context, participantID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Registration{}).
		Where("participant_id = ?", participantID).
		Count(&count).Error
	return count, err
}

// CountByEventManager is a function that counts the registrations across all
// events owned by an event manager.
func (s *RegistrationStorage) CountByEventManager(ctx context.Context, managerID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Registration{}).
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("events.event_manager_id = ?", managerID).
		Count(&count).Error
	return count, err
}

// CountAll is a function that gets the total count of registrations.
func (s *RegistrationStorage) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Registration{}).Count(&count).Error
	return count, err
}
