package postgres

import (
	"context"

	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"gorm.io/gorm"
)

type AdminStorage struct {
	db *gorm.DB
}

func NewAdminStorage(db *gorm.DB) *AdminStorage {
	return &AdminStorage{
		db: db,
	}
}

// Get is a function that gets an admin from the database by id.
func (s *AdminStorage) Get(ctx context.Context, id uint) (*entity.Admin, error) {
	var admin entity.Admin
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error
	return &admin, err
}

// GetByEmail is a function that gets an admin from the database by email.
func (s *AdminStorage) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var admin entity.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	return &admin, err
}

// Update is a function that updates an admin in the database.
func (s *AdminStorage) Update(ctx context.Context, admin *entity.Admin) (*entity.Admin, error) {
	err := s.db.WithContext(ctx).Save(&admin).Error
	return admin, err
}

// Count is a function that gets the count of admins from the database.
func (s *AdminStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Admin{}).Count(&count).Error
	return count, err
}
