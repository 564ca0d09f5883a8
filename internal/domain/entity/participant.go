package entity

import "time"

type Participant struct {
	ID           uint   `gorm:"primaryKey"`
	Role         string `gorm:"not null;default:attendee"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	PhoneNumber  string
	City         string
	State        string
	Country      string
	CreatedAt    time.Time
	IsActive     bool `gorm:"not null;default:true"`
}

func (p *Participant) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p *Participant) Identity() Identity {
	return Identity{
		UserID: p.ID,
		Role:   RoleParticipant,
		Email:  p.Email,
		Name:   p.FullName(),
	}
}
