package service

import (
	"context"
	"testing"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/Badsnus/cu-events-portal/internal/domain/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAdminStorage struct {
	admins map[uint]*entity.Admin
}

func (s *fakeAdminStorage) Get(_ context.Context, id uint) (*entity.Admin, error) {
	if admin, ok := s.admins[id]; ok {
		return admin, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAdminStorage) GetByEmail(_ context.Context, email string) (*entity.Admin, error) {
	for _, admin := range s.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAdminStorage) Update(_ context.Context, admin *entity.Admin) (*entity.Admin, error) {
	s.admins[admin.ID] = admin
	return admin, nil
}

func (s *fakeAdminStorage) Count(_ context.Context) (int64, error) {
	return int64(len(s.admins)), nil
}

type fakeManagerStorage struct {
	managers map[uint]*entity.EventManager
	nextID   uint
}

func (s *fakeManagerStorage) Create(_ context.Context, manager *entity.EventManager) (*entity.EventManager, error) {
	if s.nextID == 0 {
		s.nextID = 1
	}
	manager.ID = s.nextID
	s.nextID++
	s.managers[manager.ID] = manager
	return manager, nil
}

func (s *fakeManagerStorage) Get(_ context.Context, id uint) (*entity.EventManager, error) {
	if manager, ok := s.managers[id]; ok {
		return manager, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeManagerStorage) GetByEmail(_ context.Context, email string) (*entity.EventManager, error) {
	for _, manager := range s.managers {
		if manager.Email == email {
			return manager, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeManagerStorage) Update(_ context.Context, manager *entity.EventManager) (*entity.EventManager, error) {
	if _, ok := s.managers[manager.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.managers[manager.ID] = manager
	return manager, nil
}

func (s *fakeManagerStorage) Delete(_ context.Context, id uint) error {
	delete(s.managers, id)
	return nil
}

func (s *fakeManagerStorage) Count(_ context.Context, _ string) (int64, error) {
	return int64(len(s.managers)), nil
}

func (s *fakeManagerStorage) GetWithPagination(_ context.Context, _, _ int, _, _ string) ([]entity.EventManager, error) {
	var out []entity.EventManager
	for _, manager := range s.managers {
		out = append(out, *manager)
	}
	return out, nil
}

type fakeUserParticipantStorage struct {
	participants map[uint]*entity.Participant
	nextID       uint
}

func (s *fakeUserParticipantStorage) Create(_ context.Context, participant *entity.Participant) (*entity.Participant, error) {
	if s.nextID == 0 {
		s.nextID = 1
	}
	participant.ID = s.nextID
	s.nextID++
	s.participants[participant.ID] = participant
	return participant, nil
}

func (s *fakeUserParticipantStorage) Get(_ context.Context, id uint) (*entity.Participant, error) {
	if participant, ok := s.participants[id]; ok {
		return participant, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserParticipantStorage) GetByEmail(_ context.Context, email string) (*entity.Participant, error) {
	for _, participant := range s.participants {
		if participant.Email == email {
			return participant, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserParticipantStorage) Update(_ context.Context, participant *entity.Participant) (*entity.Participant, error) {
	if _, ok := s.participants[participant.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.participants[participant.ID] = participant
	return participant, nil
}

func (s *fakeUserParticipantStorage) Delete(_ context.Context, id uint) error {
	delete(s.participants, id)
	return nil
}

func (s *fakeUserParticipantStorage) Count(_ context.Context, _ string) (int64, error) {
	return int64(len(s.participants)), nil
}

func (s *fakeUserParticipantStorage) GetWithPagination(_ context.Context, _, _ int, _, _ string) ([]entity.Participant, error) {
	var out []entity.Participant
	for _, participant := range s.participants {
		out = append(out, *participant)
	}
	return out, nil
}

type fakeEventCounter struct {
	byManager map[uint]int64
}

func (s *fakeEventCounter) Count(_ context.Context, filter entity.EventFilter) (int64, error) {
	if filter.ManagerID != nil {
		return s.byManager[*filter.ManagerID], nil
	}
	var total int64
	for _, n := range s.byManager {
		total += n
	}
	return total, nil
}

type fakeRegistrationCounter struct {
	byParticipant map[uint]int64
}

func (s *fakeRegistrationCounter) CountByParticipant(_ context.Context, participantID uint) (int64, error) {
	return s.byParticipant[participantID], nil
}

type userFixture struct {
	admins        *fakeAdminStorage
	managers      *fakeManagerStorage
	participants  *fakeUserParticipantStorage
	events        *fakeEventCounter
	registrations *fakeRegistrationCounter
}

func newUserFixture() *userFixture {
	return &userFixture{
		admins:        &fakeAdminStorage{admins: make(map[uint]*entity.Admin)},
		managers:      &fakeManagerStorage{managers: make(map[uint]*entity.EventManager)},
		participants:  &fakeUserParticipantStorage{participants: make(map[uint]*entity.Participant)},
		events:        &fakeEventCounter{byManager: make(map[uint]int64)},
		registrations: &fakeRegistrationCounter{byParticipant: make(map[uint]int64)},
	}
}

func (f *userFixture) service() *UserService {
	return NewUserService(f.admins, f.managers, f.participants, f.events, f.registrations)
}

func adminIdentity(id uint) entity.Identity {
	return entity.Identity{UserID: id, Role: entity.RoleAdmin}
}

func TestSignUpParticipant(t *testing.T) {
	f := newUserFixture()
	s := f.service()

	created, err := s.SignUpParticipant(context.Background(), &entity.Participant{
		Email:     "  New@Example.COM ",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, "secret123")
	require.NoError(t, err)
	require.Equal(t, "new@example.com", created.Email)
	require.True(t, created.IsActive)
	require.Equal(t, "Participant", created.Role)
	require.True(t, utils.CheckPassword(created.PasswordHash, "secret123"))
}

func TestSignUpParticipantEmailTakenAcrossTables(t *testing.T) {
	f := newUserFixture()
	f.admins.admins[1] = &entity.Admin{ID: 1, Email: "taken@example.com"}
	s := f.service()

	_, err := s.SignUpParticipant(context.Background(), &entity.Participant{
		Email:     "taken@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, "secret123")
	require.ErrorIs(t, err, errorz.EmailTaken)
}

func TestCreateEventManager(t *testing.T) {
	f := newUserFixture()
	s := f.service()

	manager, err := s.CreateEventManager(context.Background(), adminIdentity(7), &entity.EventManager{
		Email:     "manager@example.com",
		FirstName: "Grace",
		LastName:  "Hopper",
	}, "secret123")
	require.NoError(t, err)
	require.Equal(t, uint(7), manager.CreatedByAdminID)
	require.Equal(t, "Event Manager", manager.Role)
	require.True(t, utils.CheckPassword(manager.PasswordHash, "secret123"))
}

func TestCreateEventManagerNotAdmin(t *testing.T) {
	f := newUserFixture()
	s := f.service()

	_, err := s.CreateEventManager(context.Background(), managerIdentity(2), &entity.EventManager{
		Email: "manager@example.com",
	}, "secret123")
	require.ErrorIs(t, err, errorz.Forbidden)
}

func TestUpdateEventManagerKeepsOwnEmail(t *testing.T) {
	f := newUserFixture()
	f.managers.managers[1] = &entity.EventManager{ID: 1, Email: "manager@example.com", PasswordHash: "hash"}
	f.managers.nextID = 2
	s := f.service()

	updated, err := s.UpdateEventManager(context.Background(), &entity.EventManager{
		ID:        1,
		Email:     "manager@example.com",
		FirstName: "Grace",
	}, "")
	require.NoError(t, err)
	require.Equal(t, "Grace", updated.FirstName)
}

func TestUpdateEventManagerEmailCollision(t *testing.T) {
	f := newUserFixture()
	f.managers.managers[1] = &entity.EventManager{ID: 1, Email: "one@example.com"}
	f.participants.participants[5] = &entity.Participant{ID: 5, Email: "two@example.com"}
	s := f.service()

	_, err := s.UpdateEventManager(context.Background(), &entity.EventManager{
		ID:    1,
		Email: "two@example.com",
	}, "")
	require.ErrorIs(t, err, errorz.EmailTaken)
}

func TestUpdateParticipantNewPassword(t *testing.T) {
	f := newUserFixture()
	f.participants.participants[5] = &entity.Participant{ID: 5, Email: "p@example.com", PasswordHash: "old"}
	s := f.service()

	updated, err := s.UpdateParticipant(context.Background(), &entity.Participant{
		ID:    5,
		Email: "p@example.com",
	}, "newsecret")
	require.NoError(t, err)
	require.True(t, utils.CheckPassword(updated.PasswordHash, "newsecret"))
}

func TestDeleteEventManagerWithEvents(t *testing.T) {
	f := newUserFixture()
	f.managers.managers[1] = &entity.EventManager{ID: 1, Email: "manager@example.com"}
	f.events.byManager[1] = 3
	s := f.service()

	err := s.DeleteEventManager(context.Background(), 1)
	require.ErrorIs(t, err, errorz.HasDependents)
	require.Contains(t, f.managers.managers, uint(1))
}

func TestDeleteEventManager(t *testing.T) {
	f := newUserFixture()
	f.managers.managers[1] = &entity.EventManager{ID: 1, Email: "manager@example.com"}
	s := f.service()

	require.NoError(t, s.DeleteEventManager(context.Background(), 1))
	require.NotContains(t, f.managers.managers, uint(1))
}

func TestDeleteEventManagerUnknown(t *testing.T) {
	f := newUserFixture()
	s := f.service()

	err := s.DeleteEventManager(context.Background(), 42)
	require.ErrorIs(t, err, errorz.UserNotFound)
}

func TestDeleteParticipantWithRegistrations(t *testing.T) {
	f := newUserFixture()
	f.participants.participants[5] = &entity.Participant{ID: 5, Email: "p@example.com"}
	f.registrations.byParticipant[5] = 2
	s := f.service()

	err := s.DeleteParticipant(context.Background(), 5)
	require.ErrorIs(t, err, errorz.HasDependents)
	require.Contains(t, f.participants.participants, uint(5))
}

func TestDeleteParticipant(t *testing.T) {
	f := newUserFixture()
	f.participants.participants[5] = &entity.Participant{ID: 5, Email: "p@example.com"}
	s := f.service()

	require.NoError(t, s.DeleteParticipant(context.Background(), 5))
	require.NotContains(t, f.participants.participants, uint(5))
}
