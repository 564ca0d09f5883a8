package postgres

import (
	"context"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"gorm.io/gorm"
)

type EventManagerStorage struct {
	db *gorm.DB
}

func NewEventManagerStorage(db *gorm.DB) *EventManagerStorage {
	return &EventManagerStorage{
		db: db,
	}
}

// Create is a function that creates a new event manager in the database.
func (s *EventManagerStorage) Create(ctx context.Context, manager *entity.EventManager) (*entity.EventManager, error) {
	err := s.db.WithContext(ctx).Create(&manager).Error
	return manager, err
}

// Get is a function that gets an event manager from the database by id.
func (s *EventManagerStorage) Get(ctx context.Context, id uint) (*entity.EventManager, error) {
	var manager entity.EventManager
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&manager).Error
	return &manager, err
}

// GetByEmail is a function that gets an event manager from the database by email.
func (s *EventManagerStorage) GetByEmail(ctx context.Context, email string) (*entity.EventManager, error) {
	var manager entity.EventManager
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&manager).Error
	return &manager, err
}

// Update is a function that updates an event manager in the database.
func (s *EventManagerStorage) Update(ctx context.Context, manager *entity.EventManager) (*entity.EventManager, error) {
	err := s.db.WithContext(ctx).Save(&manager).Error
	return manager, err
}

// Delete is a function that deletes an event manager from the database.
func (s *EventManagerStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&entity.EventManager{}, id).Error
}

// Count is a function that gets the count of event managers matching the
// email search from the database.
func (s *EventManagerStorage) Count(ctx context.Context, emailSearch string) (int64, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&entity.EventManager{})
	if emailSearch != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+emailSearch+"%")
	}
	err := query.Count(&count).Error
	return count, err
}

// GetWithPagination is a function that gets a list of event managers from the
// database with pagination and an optional email search.
func (s *EventManagerStorage) GetWithPagination(ctx context.Context, offset, limit int, order, emailSearch string) ([]entity.EventManager, error) {
	var managers []entity.EventManager
	query := s.db.WithContext(ctx)
	if emailSearch != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+emailSearch+"%")
	}
	err := query.Order(order).Offset(offset).Limit(limit).Find(&managers).Error
	return managers, err
}
