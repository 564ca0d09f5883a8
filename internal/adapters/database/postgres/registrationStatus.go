package postgres

import (
	"context"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"gorm.io/gorm"
)

type RegistrationStatusStorage struct {
	db *gorm.DB
}

func NewRegistrationStatusStorage(db *gorm.DB) *RegistrationStatusStorage {
	return &RegistrationStatusStorage{
		db: db,
	}
}

// Create is a function that creates a new registration status in the database.
func (s *RegistrationStatusStorage) Create(ctx context.Context, status *entity.RegistrationStatus) (*entity.RegistrationStatus, error) {
	err := s.db.WithContext(ctx).Create(&status).Error
	return status, err
}

// Get is a function that gets a registration status from the database by id.
func (s *RegistrationStatusStorage) Get(ctx context.Context, id uint) (*entity.RegistrationStatus, error) {
	var status entity.RegistrationStatus
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&status).Error
	return &status, err
}

// GetAll is a function that gets all registration statuses from the database.
func (s *RegistrationStatusStorage) GetAll(ctx context.Context) ([]entity.RegistrationStatus, error) {
	var statuses []entity.RegistrationStatus
	err := s.db.WithContext(ctx).Order("id").Find(&statuses).Error
	return statuses, err
}

// GetByName is a function that gets a registration status by its exact name,
// case-insensitively.
func (s *RegistrationStatusStorage) GetByName(ctx context.Context, name string) (*entity.RegistrationStatus, error) {
	var status entity.RegistrationStatus
	err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&status).Error
	return &status, err
}

// FirstByKind is a function that gets the first registration status of the
// given kind.
func (s *RegistrationStatusStorage) FirstByKind(ctx context.Context, kind entity.StatusKind) (*entity.RegistrationStatus, error) {
	var status entity.RegistrationStatus
	err := s.db.WithContext(ctx).Where("kind = ?", kind).Order("id").First(&status).Error
	return &status, err
}

// First is a function that gets the first registration status row.
func (s *RegistrationStatusStorage) First(ctx context.Context) (*entity.RegistrationStatus, error) {
	var status entity.RegistrationStatus
	err := s.db.WithContext(ctx).Order("id").First(&status).Error
	return &status, err
}
