package postgres

import (
	"context"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"gorm.io/gorm"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

// Create is a function that creates a new event in the database.
func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(&event).Error
	return event, err
}

// Get is a function that gets an event from the database by id.
func (s *EventStorage) Get(ctx context.Context, id uint) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	return &event, err
}

// Update is a function that updates an event in the database.
func (s *EventStorage) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Save(&event).Error
	return event, err
}

// Count is a function that gets the count of events matching the filter.
func (s *EventStorage) Count(ctx context.Context, filter entity.EventFilter) (int64, error) {
	var count int64
	err := s.filtered(ctx, filter).Model(&entity.Event{}).Count(&count).Error
	return count, err
}

// GetWithPagination is a function that gets a list of events from the
// database with pagination, ordered and narrowed by the filter.
func (s *EventStorage) GetWithPagination(ctx context.Context, filter entity.EventFilter, offset, limit int, order string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.filtered(ctx, filter).Order(order).Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

// GetRecent is a function that gets the most recently created events
// matching the filter.
func (s *EventStorage) GetRecent(ctx context.Context, filter entity.EventFilter, limit int) ([]entity.Event, error) {
	var events []entity.Event
	err := s.filtered(ctx, filter).Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

func (s *EventStorage) filtered(ctx context.Context, filter entity.EventFilter) *gorm.DB {
	query := s.db.WithContext(ctx)
	if filter.ManagerID != nil {
		query = query.Where("event_manager_id = ?", *filter.ManagerID)
	}
	if filter.StatusID != nil {
		query = query.Where("event_status_id = ?", *filter.StatusID)
	}
	if filter.NameSearch != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+filter.NameSearch+"%")
	}
	if filter.After != nil {
		query = query.Where("date > ?", *filter.After)
	}
	return query
}
