package postgres

import (
	"context"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"gorm.io/gorm"
)

type EventTypeStorage struct {
	db *gorm.DB
}

func NewEventTypeStorage(db *gorm.DB) *EventTypeStorage {
	return &EventTypeStorage{
		db: db,
	}
}

// Create is a function that creates a new event type in the database.
func (s *EventTypeStorage) Create(ctx context.Context, eventType *entity.EventType) (*entity.EventType, error) {
	err := s.db.WithContext(ctx).Create(&eventType).Error
	return eventType, err
}

// Get is a function that gets an event type from the database by id.
func (s *EventTypeStorage) Get(ctx context.Context, id uint) (*entity.EventType, error) {
	var eventType entity.EventType
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&eventType).Error
	return &eventType, err
}

// GetAll is a function that gets all event types from the database.
func (s *EventTypeStorage) GetAll(ctx context.Context) ([]entity.EventType, error) {
	var eventTypes []entity.EventType
	err := s.db.WithContext(ctx).Order("id").Find(&eventTypes).Error
	return eventTypes, err
}
