package service

import (
	"context"
	"errors"
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/Badsnus/cu-events-portal/pkg/logger"
	"gorm.io/gorm"
)

type RegistrationStorage interface {
	Create(ctx context.Context, registration *entity.Registration) (*entity.Registration, error)
	Get(ctx context.Context, id uint) (*entity.Registration, error)
	GetByEventAndParticipant(ctx context.Context, eventID, participantID uint) (*entity.Registration, error)
	Update(ctx context.Context, registration *entity.Registration) (*entity.Registration, error)
	GetByParticipant(ctx context.Context, participantID uint) ([]entity.Registration, error)
	GetByEvent(ctx context.Context, eventID uint) ([]entity.Registration, error)
	CountActiveByEvent(ctx context.Context, eventID uint) (int64, error)
	CountApprovedByEvent(ctx context.Context, eventID uint) (int64, error)
}

type registrationEventStorage interface {
	Get(ctx context.Context, id uint) (*entity.Event, error)
}

type registrationStatusStorage interface {
	Get(ctx context.Context, id uint) (*entity.RegistrationStatus, error)
	GetByName(ctx context.Context, name string) (*entity.RegistrationStatus, error)
	FirstByKind(ctx context.Context, kind entity.StatusKind) (*entity.RegistrationStatus, error)
	First(ctx context.Context) (*entity.RegistrationStatus, error)
}

type registrationParticipantStorage interface {
	Get(ctx context.Context, id uint) (*entity.Participant, error)
}

type statusNotifier interface {
	SendStatusUpdate(to, eventName, statusName string) error
}

// RegistrationService decides whether a registration may be created,
// promoted or cancelled, and applies the change. Capacity checks count
// statuses by their kind, which is derived from the status name when the
// status row is written.
//
// Two requests racing for the last spot can both pass the capacity check
// before either insert lands; there is no row locking here, matching the
// single-request-per-transaction model of the rest of the system.
type RegistrationService struct {
	logger *logger.Logger

	storage            RegistrationStorage
	eventStorage       registrationEventStorage
	statusStorage      registrationStatusStorage
	participantStorage registrationParticipantStorage
	notifier           statusNotifier

	now func() time.Time
}

func NewRegistrationService(
	log *logger.Logger,
	storage RegistrationStorage,
	eventStorage registrationEventStorage,
	statusStorage registrationStatusStorage,
	participantStorage registrationParticipantStorage,
	notifier statusNotifier,
) *RegistrationService {
	return &RegistrationService{
		logger: log,

		storage:            storage,
		eventStorage:       eventStorage,
		statusStorage:      statusStorage,
		participantStorage: participantStorage,
		notifier:           notifier,

		now: time.Now,
	}
}

// Register creates a pending registration for the participant if the event
// still accepts one: no duplicate for the (event, participant) pair, the
// registration deadline has not passed, and a spot is free when the event
// has a capacity. Pending registrations occupy a spot.
func (s *RegistrationService) Register(ctx context.Context, eventID uint, participant entity.Identity, additionalInfo string) (*entity.Registration, error) {
	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, asNotFound(err, errorz.EventNotFound)
	}

	_, err = s.storage.GetByEventAndParticipant(ctx, eventID, participant.UserID)
	if err == nil {
		return nil, errorz.AlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !event.RegistrationOpen(s.now()) {
		return nil, errorz.DeadlineExpired
	}

	if event.HasCapacity() {
		count, err := s.storage.CountActiveByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if count >= int64(*event.TotalSpots) {
			return nil, errorz.EventFull
		}
	}

	pending, err := s.defaultStatus(ctx)
	if err != nil {
		return nil, err
	}

	return s.storage.Create(ctx, &entity.Registration{
		EventID:              eventID,
		ParticipantID:        participant.UserID,
		RegistrationStatusID: pending.ID,
		AdditionalInfo:       additionalInfo,
	})
}

// UpdateStatus sets a new status on a registration on behalf of the event
// manager owning the event. Promoting to an approved-kind status is refused
// when the approved count already fills the capacity, unless the
// registration is approved already.
func (s *RegistrationService) UpdateStatus(ctx context.Context, registrationID, statusID uint, manager entity.Identity) (*entity.Registration, error) {
	registration, err := s.storage.Get(ctx, registrationID)
	if err != nil {
		return nil, asNotFound(err, errorz.RegistrationNotFound)
	}

	event, err := s.eventStorage.Get(ctx, registration.EventID)
	if err != nil {
		return nil, asNotFound(err, errorz.EventNotFound)
	}
	if !event.OwnedBy(manager.UserID) {
		return nil, errorz.Forbidden
	}

	target, err := s.statusStorage.Get(ctx, statusID)
	if err != nil {
		return nil, asNotFound(err, errorz.InvalidStatus)
	}

	if target.Kind == entity.StatusApproved && event.HasCapacity() {
		alreadyApproved := false
		current, err := s.statusStorage.Get(ctx, registration.RegistrationStatusID)
		if err == nil {
			alreadyApproved = current.Kind == entity.StatusApproved
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if !alreadyApproved {
			count, err := s.storage.CountApprovedByEvent(ctx, event.ID)
			if err != nil {
				return nil, err
			}
			if count >= int64(*event.TotalSpots) {
				return nil, errorz.EventFull
			}
		}
	}

	now := s.now()
	registration.RegistrationStatusID = target.ID
	registration.StatusUpdatedAt = &now
	registration.UpdatedByEventManagerID = &manager.UserID

	updated, err := s.storage.Update(ctx, registration)
	if err != nil {
		return nil, err
	}

	s.notifyStatusUpdate(ctx, updated, event, target)

	return updated, nil
}

// Cancel cancels the participant's own registration for an event. The
// manager back-reference is cleared to mark a self-cancellation.
func (s *RegistrationService) Cancel(ctx context.Context, eventID uint, participant entity.Identity) (*entity.Registration, error) {
	registration, err := s.storage.GetByEventAndParticipant(ctx, eventID, participant.UserID)
	if err != nil {
		return nil, asNotFound(err, errorz.RegistrationNotFound)
	}

	current, err := s.statusStorage.Get(ctx, registration.RegistrationStatusID)
	if err == nil {
		if current.Kind == entity.StatusCancelled {
			return nil, errorz.AlreadyCancelled
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	target, err := s.cancelledStatus(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	registration.RegistrationStatusID = target.ID
	registration.StatusUpdatedAt = &now
	registration.UpdatedByEventManagerID = nil

	return s.storage.Update(ctx, registration)
}

// ListByParticipant returns all registrations of a participant, newest
// first, with event and status preloaded.
func (s *RegistrationService) ListByParticipant(ctx context.Context, participant entity.Identity) ([]entity.Registration, error) {
	return s.storage.GetByParticipant(ctx, participant.UserID)
}

// ListByEvent returns all registrations for an event. Event managers may
// only list their own events; admins may list any.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID uint, viewer entity.Identity) ([]entity.Registration, error) {
	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, asNotFound(err, errorz.EventNotFound)
	}
	switch viewer.Role {
	case entity.RoleAdmin:
	case entity.RoleEventManager:
		if !event.OwnedBy(viewer.UserID) {
			return nil, errorz.Forbidden
		}
	default:
		return nil, errorz.Forbidden
	}
	return s.storage.GetByEvent(ctx, eventID)
}

// CountActive counts the registrations of an event that occupy a spot.
func (s *RegistrationService) CountActive(ctx context.Context, eventID uint) (int64, error) {
	return s.storage.CountActiveByEvent(ctx, eventID)
}

// CountApproved counts the approved registrations of an event.
func (s *RegistrationService) CountApproved(ctx context.Context, eventID uint) (int64, error) {
	return s.storage.CountApprovedByEvent(ctx, eventID)
}

// defaultStatus resolves the status new registrations start in: the status
// named "pending", else status id 1, else the first status row. An empty
// status table is a system misconfiguration.
func (s *RegistrationService) defaultStatus(ctx context.Context) (*entity.RegistrationStatus, error) {
	status, err := s.statusStorage.GetByName(ctx, "pending")
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status, err = s.statusStorage.Get(ctx, 1)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status, err = s.statusStorage.First(ctx)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, errorz.NoRegistrationStatuses
}

// cancelledStatus resolves the status a self-cancelled registration moves
// to: the first cancelled-kind row, else a rejected-kind row, else the first
// status row.
func (s *RegistrationService) cancelledStatus(ctx context.Context) (*entity.RegistrationStatus, error) {
	status, err := s.statusStorage.FirstByKind(ctx, entity.StatusCancelled)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status, err = s.statusStorage.FirstByKind(ctx, entity.StatusRejected)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status, err = s.statusStorage.First(ctx)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, errorz.NoRegistrationStatuses
}

// notifyStatusUpdate emails the participant about an approval or rejection.
// Failures are logged, never surfaced to the caller.
func (s *RegistrationService) notifyStatusUpdate(ctx context.Context, registration *entity.Registration, event *entity.Event, status *entity.RegistrationStatus) {
	if s.notifier == nil {
		return
	}
	if status.Kind != entity.StatusApproved && status.Kind != entity.StatusRejected {
		return
	}

	participant, err := s.participantStorage.Get(ctx, registration.ParticipantID)
	if err != nil {
		s.logger.Errorf("failed to load participant %d for notification: %v", registration.ParticipantID, err)
		return
	}
	if err = s.notifier.SendStatusUpdate(participant.Email, event.Name, status.Name); err != nil {
		s.logger.Errorf("failed to notify participant %d: %v", participant.ID, err)
	}
}

// asNotFound converts a gorm record-not-found error to the given domain
// sentinel and passes every other error through.
func asNotFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
