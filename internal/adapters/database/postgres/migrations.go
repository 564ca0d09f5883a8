package postgres

import (
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"gorm.io/gorm"
)

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.Admin{},
	&entity.EventManager{},
	&entity.Participant{},
	&entity.EventType{},
	&entity.EventStatus{},
	&entity.RegistrationStatus{},
	&entity.Event{},
	&entity.Registration{},
}

// SeedReference inserts the default reference rows when the lookup tables
// are empty. Admins can extend them later; the status kind is recomputed
// from the name on every save.
func SeedReference(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.RegistrationStatus{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		statuses := []entity.RegistrationStatus{
			{Name: "Pending", Description: "Awaiting event manager review"},
			{Name: "Approved", Description: "Spot confirmed by the event manager"},
			{Name: "Rejected", Description: "Declined by the event manager"},
			{Name: "Cancelled", Description: "Cancelled by the participant"},
		}
		if err := db.Create(&statuses).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&entity.EventStatus{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		statuses := []entity.EventStatus{
			{Name: "Scheduled"},
			{Name: "Ongoing"},
			{Name: "Completed"},
			{Name: "Cancelled"},
		}
		if err := db.Create(&statuses).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&entity.EventType{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		types := []entity.EventType{
			{Name: "Conference"},
			{Name: "Workshop"},
			{Name: "Seminar"},
			{Name: "Meetup"},
		}
		if err := db.Create(&types).Error; err != nil {
			return err
		}
	}

	return nil
}
