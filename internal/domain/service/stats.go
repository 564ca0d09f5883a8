package service

import (
	"context"
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/dto"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
)

type statsAdminStorage interface {
	Count(ctx context.Context) (int64, error)
}

type statsManagerStorage interface {
	Count(ctx context.Context, emailSearch string) (int64, error)
}

type statsParticipantStorage interface {
	Count(ctx context.Context, emailSearch string) (int64, error)
}

type statsRegistrationStorage interface {
	CountAll(ctx context.Context) (int64, error)
	CountByEventManager(ctx context.Context, managerID uint) (int64, error)
	CountByParticipant(ctx context.Context, participantID uint) (int64, error)
	GetByParticipant(ctx context.Context, participantID uint) ([]entity.Registration, error)
}

// StatsService aggregates the per-role dashboard numbers.
type StatsService struct {
	adminStorage        statsAdminStorage
	managerStorage      statsManagerStorage
	participantStorage  statsParticipantStorage
	eventStorage        EventStorage
	registrationStorage statsRegistrationStorage

	now func() time.Time
}

func NewStatsService(
	adminStorage statsAdminStorage,
	managerStorage statsManagerStorage,
	participantStorage statsParticipantStorage,
	eventStorage EventStorage,
	registrationStorage statsRegistrationStorage,
) *StatsService {
	return &StatsService{
		adminStorage:        adminStorage,
		managerStorage:      managerStorage,
		participantStorage:  participantStorage,
		eventStorage:        eventStorage,
		registrationStorage: registrationStorage,

		now: time.Now,
	}
}

func (s *StatsService) AdminStats(ctx context.Context) (dto.AdminStats, error) {
	var stats dto.AdminStats
	var err error

	if stats.TotalAdmins, err = s.adminStorage.Count(ctx); err != nil {
		return stats, err
	}
	if stats.TotalEventManagers, err = s.managerStorage.Count(ctx, ""); err != nil {
		return stats, err
	}
	if stats.TotalParticipants, err = s.participantStorage.Count(ctx, ""); err != nil {
		return stats, err
	}
	if stats.TotalEvents, err = s.eventStorage.Count(ctx, entity.EventFilter{}); err != nil {
		return stats, err
	}
	if stats.TotalRegistrations, err = s.registrationStorage.CountAll(ctx); err != nil {
		return stats, err
	}
	now := s.now()
	if stats.UpcomingEvents, err = s.eventStorage.Count(ctx, entity.EventFilter{After: &now}); err != nil {
		return stats, err
	}
	if stats.RecentEvents, err = s.eventStorage.GetRecent(ctx, entity.EventFilter{}, 5); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *StatsService) ManagerStats(ctx context.Context, managerID uint) (dto.ManagerStats, error) {
	var stats dto.ManagerStats
	var err error

	filter := entity.EventFilter{ManagerID: &managerID}
	if stats.TotalEvents, err = s.eventStorage.Count(ctx, filter); err != nil {
		return stats, err
	}
	now := s.now()
	upcoming := filter
	upcoming.After = &now
	if stats.UpcomingEvents, err = s.eventStorage.Count(ctx, upcoming); err != nil {
		return stats, err
	}
	if stats.TotalRegistrations, err = s.registrationStorage.CountByEventManager(ctx, managerID); err != nil {
		return stats, err
	}
	if stats.RecentEvents, err = s.eventStorage.GetRecent(ctx, filter, 5); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *StatsService) ParticipantStats(ctx context.Context, participantID uint) (dto.ParticipantStats, error) {
	var stats dto.ParticipantStats
	var err error

	now := s.now()
	if stats.AvailableEvents, err = s.eventStorage.Count(ctx, entity.EventFilter{After: &now}); err != nil {
		return stats, err
	}
	if stats.MyRegistrations, err = s.registrationStorage.CountByParticipant(ctx, participantID); err != nil {
		return stats, err
	}

	registrations, err := s.registrationStorage.GetByParticipant(ctx, participantID)
	if err != nil {
		return stats, err
	}
	for _, registration := range registrations {
		if registration.Event.Date.After(now) {
			stats.UpcomingRegistered++
		}
	}

	if stats.RecentEvents, err = s.eventStorage.GetWithPagination(ctx, entity.EventFilter{After: &now}, 0, 5, "date ASC"); err != nil {
		return stats, err
	}
	return stats, nil
}
