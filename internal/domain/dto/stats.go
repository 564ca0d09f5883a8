package dto

import "github.com/Badsnus/cu-events-portal/internal/domain/entity"

// AdminStats feeds the admin dashboard.
type AdminStats struct {
	TotalAdmins        int64
	TotalEventManagers int64
	TotalParticipants  int64
	TotalEvents        int64
	TotalRegistrations int64
	UpcomingEvents     int64
	RecentEvents       []entity.Event
}

// ManagerStats feeds the event manager dashboard.
type ManagerStats struct {
	TotalEvents        int64
	UpcomingEvents     int64
	TotalRegistrations int64
	RecentEvents       []entity.Event
}

// ParticipantStats feeds the participant dashboard.
type ParticipantStats struct {
	AvailableEvents    int64
	MyRegistrations    int64
	UpcomingRegistered int64
	RecentEvents       []entity.Event
}
