package entity

import "time"

type EventManager struct {
	ID               uint `gorm:"primaryKey"`
	CreatedByAdminID uint `gorm:"not null;index"`
	CreatedByAdmin   Admin
	Role             string `gorm:"not null"`
	Email            string `gorm:"not null;uniqueIndex"`
	PasswordHash     string `gorm:"not null"`
	FirstName        string `gorm:"not null"`
	LastName         string `gorm:"not null"`
	PhoneNumber      string
	CreatedAt        time.Time
	IsActive         bool `gorm:"not null;default:true"`
}

func (m *EventManager) FullName() string {
	return m.FirstName + " " + m.LastName
}

func (m *EventManager) Identity() Identity {
	return Identity{
		UserID: m.ID,
		Role:   RoleEventManager,
		Email:  m.Email,
		Name:   m.FullName(),
	}
}
