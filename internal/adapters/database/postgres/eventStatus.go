package postgres

import (
	"context"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"gorm.io/gorm"
)

type EventStatusStorage struct {
	db *gorm.DB
}

func NewEventStatusStorage(db *gorm.DB) *EventStatusStorage {
	return &EventStatusStorage{
		db: db,
	}
}

// Create is a function that creates a new event status in the database.
func (s *EventStatusStorage) Create(ctx context.Context, status *entity.EventStatus) (*entity.EventStatus, error) {
	err := s.db.WithContext(ctx).Create(&status).Error
	return status, err
}

// Get is a function that gets an event status from the database by id.
func (s *EventStatusStorage) Get(ctx context.Context, id uint) (*entity.EventStatus, error) {
	var status entity.EventStatus
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&status).Error
	return &status, err
}

// GetAll is a function that gets all event statuses from the database.
func (s *EventStatusStorage) GetAll(ctx context.Context) ([]entity.EventStatus, error) {
	var statuses []entity.EventStatus
	err := s.db.WithContext(ctx).Order("id").Find(&statuses).Error
	return statuses, err
}
