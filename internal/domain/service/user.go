package service

import (
	"context"
	"errors"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/Badsnus/cu-events-portal/internal/domain/utils"
	"gorm.io/gorm"
)

type UserAdminStorage interface {
	Get(ctx context.Context, id uint) (*entity.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	Update(ctx context.Context, admin *entity.Admin) (*entity.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type UserManagerStorage interface {
	Create(ctx context.Context, manager *entity.EventManager) (*entity.EventManager, error)
	Get(ctx context.Context, id uint) (*entity.EventManager, error)
	GetByEmail(ctx context.Context, email string) (*entity.EventManager, error)
	Update(ctx context.Context, manager *entity.EventManager) (*entity.EventManager, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, emailSearch string) (int64, error)
	GetWithPagination(ctx context.Context, offset, limit int, order, emailSearch string) ([]entity.EventManager, error)
}

type UserParticipantStorage interface {
	Create(ctx context.Context, participant *entity.Participant) (*entity.Participant, error)
	Get(ctx context.Context, id uint) (*entity.Participant, error)
	GetByEmail(ctx context.Context, email string) (*entity.Participant, error)
	Update(ctx context.Context, participant *entity.Participant) (*entity.Participant, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, emailSearch string) (int64, error)
	GetWithPagination(ctx context.Context, offset, limit int, order, emailSearch string) ([]entity.Participant, error)
}

type userEventStorage interface {
	Count(ctx context.Context, filter entity.EventFilter) (int64, error)
}

type userRegistrationStorage interface {
	CountByParticipant(ctx context.Context, participantID uint) (int64, error)
}

// UserService manages the three user tables: signup, admin-driven account
// management and the dependent-row checks guarding deletion.
type UserService struct {
	adminStorage        UserAdminStorage
	managerStorage      UserManagerStorage
	participantStorage  UserParticipantStorage
	eventStorage        userEventStorage
	registrationStorage userRegistrationStorage
}

func NewUserService(
	adminStorage UserAdminStorage,
	managerStorage UserManagerStorage,
	participantStorage UserParticipantStorage,
	eventStorage userEventStorage,
	registrationStorage userRegistrationStorage,
) *UserService {
	return &UserService{
		adminStorage:        adminStorage,
		managerStorage:      managerStorage,
		participantStorage:  participantStorage,
		eventStorage:        eventStorage,
		registrationStorage: registrationStorage,
	}
}

// SignUpParticipant creates a participant account. The email must be unused
// across all three user tables.
func (s *UserService) SignUpParticipant(ctx context.Context, participant *entity.Participant, password string) (*entity.Participant, error) {
	participant.Email = NormalizeEmail(participant.Email)

	taken, err := s.emailTaken(ctx, participant.Email, "", 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errorz.EmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	participant.PasswordHash = hash
	if participant.Role == "" {
		participant.Role = "Participant"
	}
	participant.IsActive = true

	return s.participantStorage.Create(ctx, participant)
}

// CreateEventManager creates an event manager owned by the acting admin.
func (s *UserService) CreateEventManager(ctx context.Context, admin entity.Identity, manager *entity.EventManager, password string) (*entity.EventManager, error) {
	if admin.Role != entity.RoleAdmin {
		return nil, errorz.Forbidden
	}
	manager.Email = NormalizeEmail(manager.Email)

	taken, err := s.emailTaken(ctx, manager.Email, "", 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errorz.EmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	manager.PasswordHash = hash
	manager.CreatedByAdminID = admin.UserID
	if manager.Role == "" {
		manager.Role = "Event Manager"
	}
	manager.IsActive = true

	return s.managerStorage.Create(ctx, manager)
}

// GetEventManager returns an event manager by id.
func (s *UserService) GetEventManager(ctx context.Context, id uint) (*entity.EventManager, error) {
	manager, err := s.managerStorage.Get(ctx, id)
	return manager, asNotFound(err, errorz.UserNotFound)
}

// GetParticipant returns a participant by id.
func (s *UserService) GetParticipant(ctx context.Context, id uint) (*entity.Participant, error) {
	participant, err := s.participantStorage.Get(ctx, id)
	return participant, asNotFound(err, errorz.UserNotFound)
}

// GetAdmin returns an admin by id.
func (s *UserService) GetAdmin(ctx context.Context, id uint) (*entity.Admin, error) {
	admin, err := s.adminStorage.Get(ctx, id)
	return admin, asNotFound(err, errorz.UserNotFound)
}

// UpdateEventManager persists changes to an event manager. When the email
// changes it must stay unique across all three user tables. An optional new
// password replaces the stored hash.
func (s *UserService) UpdateEventManager(ctx context.Context, manager *entity.EventManager, newPassword string) (*entity.EventManager, error) {
	manager.Email = NormalizeEmail(manager.Email)

	taken, err := s.emailTaken(ctx, manager.Email, entity.RoleEventManager, manager.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errorz.EmailTaken
	}

	if newPassword != "" {
		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		manager.PasswordHash = hash
	}
	return s.managerStorage.Update(ctx, manager)
}

// UpdateParticipant persists changes to a participant, mirroring
// UpdateEventManager.
func (s *UserService) UpdateParticipant(ctx context.Context, participant *entity.Participant, newPassword string) (*entity.Participant, error) {
	participant.Email = NormalizeEmail(participant.Email)

	taken, err := s.emailTaken(ctx, participant.Email, entity.RoleParticipant, participant.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errorz.EmailTaken
	}

	if newPassword != "" {
		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		participant.PasswordHash = hash
	}
	return s.participantStorage.Update(ctx, participant)
}

// UpdateAdmin persists changes to an admin profile.
func (s *UserService) UpdateAdmin(ctx context.Context, admin *entity.Admin) (*entity.Admin, error) {
	return s.adminStorage.Update(ctx, admin)
}

// DeleteEventManager removes an event manager unless they still own events.
func (s *UserService) DeleteEventManager(ctx context.Context, id uint) error {
	if _, err := s.managerStorage.Get(ctx, id); err != nil {
		return asNotFound(err, errorz.UserNotFound)
	}

	managerID := id
	count, err := s.eventStorage.Count(ctx, entity.EventFilter{ManagerID: &managerID})
	if err != nil {
		return err
	}
	if count > 0 {
		return errorz.HasDependents
	}
	return s.managerStorage.Delete(ctx, id)
}

// DeleteParticipant removes a participant unless they still own
// registrations.
func (s *UserService) DeleteParticipant(ctx context.Context, id uint) error {
	if _, err := s.participantStorage.Get(ctx, id); err != nil {
		return asNotFound(err, errorz.UserNotFound)
	}

	count, err := s.registrationStorage.CountByParticipant(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errorz.HasDependents
	}
	return s.participantStorage.Delete(ctx, id)
}

// ListEventManagers returns one page of event managers, optionally filtered
// by an email search, newest first.
func (s *UserService) ListEventManagers(ctx context.Context, search string, page, perPage int) ([]entity.EventManager, int64, error) {
	search = NormalizeEmail(search)
	total, err := s.managerStorage.Count(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	managers, err := s.managerStorage.GetWithPagination(ctx, (page-1)*perPage, perPage, "created_at DESC", search)
	if err != nil {
		return nil, 0, err
	}
	return managers, total, nil
}

// ListParticipants returns one page of participants, optionally filtered by
// an email search, newest first.
func (s *UserService) ListParticipants(ctx context.Context, search string, page, perPage int) ([]entity.Participant, int64, error) {
	search = NormalizeEmail(search)
	total, err := s.participantStorage.Count(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	participants, err := s.participantStorage.GetWithPagination(ctx, (page-1)*perPage, perPage, "created_at DESC", search)
	if err != nil {
		return nil, 0, err
	}
	return participants, total, nil
}

// emailTaken reports whether the email belongs to any user other than the
// given (role, id) pair.
func (s *UserService) emailTaken(ctx context.Context, email string, exceptRole entity.Role, exceptID uint) (bool, error) {
	admin, err := s.adminStorage.GetByEmail(ctx, email)
	if err == nil {
		if exceptRole != entity.RoleAdmin || admin.ID != exceptID {
			return true, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	manager, err := s.managerStorage.GetByEmail(ctx, email)
	if err == nil {
		if exceptRole != entity.RoleEventManager || manager.ID != exceptID {
			return true, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	participant, err := s.participantStorage.GetByEmail(ctx, email)
	if err == nil {
		if exceptRole != entity.RoleParticipant || participant.ID != exceptID {
			return true, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	return false, nil
}
