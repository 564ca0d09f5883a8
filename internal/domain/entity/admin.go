package entity

import "time"

type Admin struct {
	ID           uint   `gorm:"primaryKey"`
	Role         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	PhoneNumber  string
	CreatedAt    time.Time
	IsActive     bool `gorm:"not null;default:true"`
}

func (a *Admin) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (a *Admin) Identity() Identity {
	return Identity{
		UserID: a.ID,
		Role:   RoleAdmin,
		Email:  a.Email,
		Name:   a.FullName(),
	}
}
