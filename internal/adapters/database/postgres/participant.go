package postgres

import (
	"context"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"gorm.io/gorm"
)

type ParticipantStorage struct {
	db *gorm.DB
}

func NewParticipantStorage(db *gorm.DB) *ParticipantStorage {
	return &ParticipantStorage{
		db: db,
	}
}

// Create is a function that creates a new participant in the database.
func (s *ParticipantStorage) Create(ctx context.Context, participant *entity.Participant) (*entity.Participant, error) {
	err := s.db.WithContext(ctx).Create(&participant).Error
	return participant, err
}

// Get is a function that gets a participant from the database by id.
func (s *ParticipantStorage) Get(ctx context.Context, id uint) (*entity.Participant, error) {
	var participant entity.Participant
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&participant).Error
	return &participant, err
}

// GetByEmail is a function that gets a participant from the database by email.
func (s *ParticipantStorage) GetByEmail(ctx context.Context, email string) (*entity.Participant, error) {
	var participant entity.Participant
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&participant).Error
	return &participant, err
}

// Update is a function that updates a participant in the database.
func (s *ParticipantStorage) Update(ctx context.Context, participant *entity.Participant) (*entity.Participant, error) {
	err := s.db.WithContext(ctx).Save(&participant).Error
	return participant, err
}

// Delete is a function that deletes a participant from the database.
func (s *ParticipantStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&entity.Participant{}, id).Error
}

// Count is a function that gets the count of participants matching the email
// search from the database.
func (s *ParticipantStorage) Count(ctx context.Context, emailSearch string) (int64, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&entity.Participant{})
	if emailSearch != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+emailSearch+"%")
	}
	err := query.Count(&count).Error
	return count, err
}

// GetWithPagination is a function that gets a list of participants from the
// database with pagination and an optional email search.
func (s *ParticipantStorage) GetWithPagination(ctx context.Context, offset, limit int, order, emailSearch string) ([]entity.Participant, error) {
	var participants []entity.Participant
	query := s.db.WithContext(ctx)
	if emailSearch != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+emailSearch+"%")
	}
	err := query.Order(order).Offset(offset).Limit(limit).Find(&participants).Error
	return participants, err
}
