package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/Badsnus/cu-events-portal/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixture is the shared in-memory backing of the storage fakes.
type fixture struct {
	events        map[uint]*entity.Event
	statuses      map[uint]*entity.RegistrationStatus
	registrations map[uint]*entity.Registration
	participants  map[uint]*entity.Participant

	nextRegistrationID uint
}

func newFixture() *fixture {
	return &fixture{
		events:             make(map[uint]*entity.Event),
		statuses:           make(map[uint]*entity.RegistrationStatus),
		registrations:      make(map[uint]*entity.Registration),
		participants:       make(map[uint]*entity.Participant),
		nextRegistrationID: 1,
	}
}

func (f *fixture) addStatus(id uint, name string) *entity.RegistrationStatus {
	status := &entity.RegistrationStatus{ID: id, Name: name, Kind: entity.ClassifyStatusName(name)}
	f.statuses[id] = status
	return status
}

func (f *fixture) addEvent(event entity.Event) *entity.Event {
	copied := event
	f.events[event.ID] = &copied
	return &copied
}

func (f *fixture) addRegistration(eventID, participantID, statusID uint) *entity.Registration {
	registration := &entity.Registration{
		ID:                   f.nextRegistrationID,
		EventID:              eventID,
		ParticipantID:        participantID,
		RegistrationStatusID: statusID,
	}
	f.registrations[registration.ID] = registration
	f.nextRegistrationID++
	return registration
}

type fakeRegistrationStorage struct{ f *fixture }

func (s *fakeRegistrationStorage) Create(_ context.Context, registration *entity.Registration) (*entity.Registration, error) {
	registration.ID = s.f.nextRegistrationID
	s.f.nextRegistrationID++
	registration.RegisteredAt = time.Now()
	s.f.registrations[registration.ID] = registration
	return registration, nil
}

func (s *fakeRegistrationStorage) Get(_ context.Context, id uint) (*entity.Registration, error) {
	registration, ok := s.f.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return registration, nil
}

func (s *fakeRegistrationStorage) GetByEventAndParticipant(_ context.Context, eventID, participantID uint) (*entity.Registration, error) {
	for _, registration := range s.f.registrations {
		if registration.EventID == eventID && registration.ParticipantID == participantID {
			return registration, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeRegistrationStorage) Update(_ context.Context, registration *entity.Registration) (*entity.Registration, error) {
	if _, ok := s.f.registrations[registration.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.f.registrations[registration.ID] = registration
	return registration, nil
}

func (s *fakeRegistrationStorage) GetByParticipant(_ context.Context, participantID uint) ([]entity.Registration, error) {
	var out []entity.Registration
	for _, registration := range s.f.registrations {
		if registration.ParticipantID == participantID {
			out = append(out, *registration)
		}
	}
	return out, nil
}

func (s *fakeRegistrationStorage) GetByEvent(_ context.Context, eventID uint) ([]entity.Registration, error) {
	var out []entity.Registration
	for _, registration := range s.f.registrations {
		if registration.EventID == eventID {
			out = append(out, *registration)
		}
	}
	return out, nil
}

func (s *fakeRegistrationStorage) CountActiveByEvent(_ context.Context, eventID uint) (int64, error) {
	var count int64
	for _, registration := range s.f.registrations {
		if registration.EventID != eventID {
			continue
		}
		if status, ok := s.f.statuses[registration.RegistrationStatusID]; ok && status.CountsAgainstCapacity() {
			count++
		}
	}
	return count, nil
}

func (s *fakeRegistrationStorage) CountApprovedByEvent(_ context.Context, eventID uint) (int64, error) {
	var count int64
	for _, registration := range s.f.registrations {
		if registration.EventID != eventID {
			continue
		}
		if status, ok := s.f.statuses[registration.RegistrationStatusID]; ok && status.Kind == entity.StatusApproved {
			count++
		}
	}
	return count, nil
}

type fakeEventStorage struct{ f *fixture }

func (s *fakeEventStorage) Get(_ context.Context, id uint) (*entity.Event, error) {
	event, ok := s.f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}

type fakeStatusStorage struct{ f *fixture }

func (s *fakeStatusStorage) Get(_ context.Context, id uint) (*entity.RegistrationStatus, error) {
	status, ok := s.f.statuses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return status, nil
}

func (s *fakeStatusStorage) GetByName(_ context.Context, name string) (*entity.RegistrationStatus, error) {
	for _, id := range s.sortedIDs() {
		if strings.EqualFold(s.f.statuses[id].Name, name) {
			return s.f.statuses[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStatusStorage) FirstByKind(_ context.Context, kind entity.StatusKind) (*entity.RegistrationStatus, error) {
	for _, id := range s.sortedIDs() {
		if s.f.statuses[id].Kind == kind {
			return s.f.statuses[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStatusStorage) First(_ context.Context) (*entity.RegistrationStatus, error) {
	ids := s.sortedIDs()
	if len(ids) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.f.statuses[ids[0]], nil
}

func (s *fakeStatusStorage) sortedIDs() []uint {
	ids := make([]uint, 0, len(s.f.statuses))
	for id := range s.f.statuses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type fakeParticipantStorage struct{ f *fixture }

func (s *fakeParticipantStorage) Get(_ context.Context, id uint) (*entity.Participant, error) {
	participant, ok := s.f.participants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return participant, nil
}

type fakeNotifier struct {
	sent []string
}

func (n *fakeNotifier) SendStatusUpdate(to, _, statusName string) error {
	n.sent = append(n.sent, to+":"+statusName)
	return nil
}

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newRegistrationService(f *fixture, notifier statusNotifier, now time.Time) *RegistrationService {
	s := NewRegistrationService(
		testLogger(),
		&fakeRegistrationStorage{f: f},
		&fakeEventStorage{f: f},
		&fakeStatusStorage{f: f},
		&fakeParticipantStorage{f: f},
		notifier,
	)
	s.now = func() time.Time { return now }
	return s
}

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func seedStatuses(f *fixture) {
	f.addStatus(1, "Pending")
	f.addStatus(2, "Approved")
	f.addStatus(3, "Rejected")
	f.addStatus(4, "Cancelled")
}

func participantIdentity(id uint) entity.Identity {
	return entity.Identity{UserID: id, Role: entity.RoleParticipant}
}

func managerIdentity(id uint) entity.Identity {
	return entity.Identity{UserID: id, Role: entity.RoleEventManager}
}

func TestRegisterCreatesPending(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, EventManagerID: 1, Date: testNow.Add(48 * time.Hour)})

	s := newRegistrationService(f, nil, testNow)
	registration, err := s.Register(context.Background(), 10, participantIdentity(5), "vegetarian")
	require.NoError(t, err)
	require.Equal(t, uint(1), registration.RegistrationStatusID)
	require.Equal(t, "vegetarian", registration.AdditionalInfo)
	require.Equal(t, uint(5), registration.ParticipantID)
}

func TestRegisterUnknownEvent(t *testing.T) {
	f := newFixture()
	seedStatuses(f)

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Register(context.Background(), 99, participantIdentity(5), "")
	require.ErrorIs(t, err, errorz.EventNotFound)
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour)})
	f.addRegistration(10, 5, 1)

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Register(context.Background(), 10, participantIdentity(5), "")
	require.ErrorIs(t, err, errorz.AlreadyRegistered)
}

func TestRegisterDeadlinePassed(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	deadline := testNow.Add(-time.Hour)
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour), RegistrationDeadline: &deadline})

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Register(context.Background(), 10, participantIdentity(5), "")
	require.ErrorIs(t, err, errorz.DeadlineExpired)
}

func TestRegisterDeadlineMoment(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	deadline := testNow
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour), RegistrationDeadline: &deadline})

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Register(context.Background(), 10, participantIdentity(5), "")
	require.NoError(t, err, "registering exactly at the deadline is allowed")
}

func TestRegisterEventFullCountsPending(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	spots := 2
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour), TotalSpots: &spots})
	f.addRegistration(10, 1, 1) // pending occupies a spot
	f.addRegistration(10, 2, 2) // approved occupies a spot

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Register(context.Background(), 10, participantIdentity(5), "")
	require.ErrorIs(t, err, errorz.EventFull)
}

func TestRegisterCancelledFreesSpot(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	spots := 2
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour), TotalSpots: &spots})
	f.addRegistration(10, 1, 1)
	f.addRegistration(10, 2, 4) // cancelled does not occupy a spot

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Register(context.Background(), 10, participantIdentity(5), "")
	require.NoError(t, err)
}

func TestRegisterUnlimitedCapacity(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour)})
	for i := uint(1); i <= 50; i++ {
		f.addRegistration(10, i, 1)
	}

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Register(context.Background(), 10, participantIdentity(99), "")
	require.NoError(t, err)
}

func TestRegisterNoStatusesConfigured(t *testing.T) {
	f := newFixture()
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour)})

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Register(context.Background(), 10, participantIdentity(5), "")
	require.ErrorIs(t, err, errorz.NoRegistrationStatuses)
}

func TestRegisterDefaultStatusFallsBackToFirst(t *testing.T) {
	f := newFixture()
	// no status named pending and no id 1, so the first row wins
	f.addStatus(7, "Waitlisted")
	f.addStatus(9, "Approved")
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour)})

	s := newRegistrationService(f, nil, testNow)
	registration, err := s.Register(context.Background(), 10, participantIdentity(5), "")
	require.NoError(t, err)
	require.Equal(t, uint(7), registration.RegistrationStatusID)
}

func TestUpdateStatusApprove(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, EventManagerID: 3, Date: testNow.Add(48 * time.Hour)})
	f.participants[5] = &entity.Participant{Email: "p@example.com"}
	registration := f.addRegistration(10, 5, 1)

	notifier := &fakeNotifier{}
	s := newRegistrationService(f, notifier, testNow)

	updated, err := s.UpdateStatus(context.Background(), registration.ID, 2, managerIdentity(3))
	require.NoError(t, err)
	require.Equal(t, uint(2), updated.RegistrationStatusID)
	require.NotNil(t, updated.StatusUpdatedAt)
	require.NotNil(t, updated.UpdatedByEventManagerID)
	require.Equal(t, uint(3), *updated.UpdatedByEventManagerID)
	require.Equal(t, []string{"p@example.com:Approved"}, notifier.sent)
}

func TestUpdateStatusForeignManager(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, EventManagerID: 3, Date: testNow.Add(48 * time.Hour)})
	registration := f.addRegistration(10, 5, 1)

	s := newRegistrationService(f, nil, testNow)
	_, err := s.UpdateStatus(context.Background(), registration.ID, 2, managerIdentity(4))
	require.ErrorIs(t, err, errorz.Forbidden)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, EventManagerID: 3, Date: testNow.Add(48 * time.Hour)})
	registration := f.addRegistration(10, 5, 1)

	s := newRegistrationService(f, nil, testNow)
	_, err := s.UpdateStatus(context.Background(), registration.ID, 77, managerIdentity(3))
	require.ErrorIs(t, err, errorz.InvalidStatus)
}

func TestUpdateStatusApproveFull(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	spots := 1
	f.addEvent(entity.Event{ID: 10, EventManagerID: 3, Date: testNow.Add(48 * time.Hour), TotalSpots: &spots})
	f.addRegistration(10, 1, 2) // the single spot is approved already
	pending := f.addRegistration(10, 5, 1)

	s := newRegistrationService(f, nil, testNow)
	_, err := s.UpdateStatus(context.Background(), pending.ID, 2, managerIdentity(3))
	require.ErrorIs(t, err, errorz.EventFull)
}

func TestUpdateStatusReapproveAllowedWhenFull(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addStatus(5, "Approved and checked in")
	spots := 1
	f.addEvent(entity.Event{ID: 10, EventManagerID: 3, Date: testNow.Add(48 * time.Hour), TotalSpots: &spots})
	approved := f.addRegistration(10, 1, 2)

	// moving an already approved registration between approved-kind
	// statuses does not consume another spot
	s := newRegistrationService(f, nil, testNow)
	updated, err := s.UpdateStatus(context.Background(), approved.ID, 5, managerIdentity(3))
	require.NoError(t, err)
	require.Equal(t, uint(5), updated.RegistrationStatusID)
}

func TestUpdateStatusRejectNotifies(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, EventManagerID: 3, Date: testNow.Add(48 * time.Hour)})
	f.participants[5] = &entity.Participant{Email: "p@example.com"}
	registration := f.addRegistration(10, 5, 1)

	notifier := &fakeNotifier{}
	s := newRegistrationService(f, notifier, testNow)

	_, err := s.UpdateStatus(context.Background(), registration.ID, 3, managerIdentity(3))
	require.NoError(t, err)
	require.Equal(t, []string{"p@example.com:Rejected"}, notifier.sent)
}

func TestCancel(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, EventManagerID: 3, Date: testNow.Add(48 * time.Hour)})
	registration := f.addRegistration(10, 5, 2)
	managerID := uint(3)
	registration.UpdatedByEventManagerID = &managerID

	s := newRegistrationService(f, nil, testNow)
	cancelled, err := s.Cancel(context.Background(), 10, participantIdentity(5))
	require.NoError(t, err)
	require.Equal(t, uint(4), cancelled.RegistrationStatusID)
	require.Nil(t, cancelled.UpdatedByEventManagerID, "self-cancellation clears the manager reference")
	require.NotNil(t, cancelled.StatusUpdatedAt)
}

func TestCancelAlreadyCancelled(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour)})
	f.addRegistration(10, 5, 4)

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Cancel(context.Background(), 10, participantIdentity(5))
	require.ErrorIs(t, err, errorz.AlreadyCancelled)
}

func TestCancelWithoutRegistration(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour)})

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Cancel(context.Background(), 10, participantIdentity(5))
	require.ErrorIs(t, err, errorz.RegistrationNotFound)
}

func TestCancelFallsBackToRejected(t *testing.T) {
	f := newFixture()
	f.addStatus(1, "Pending")
	f.addStatus(2, "Rejected")
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour)})
	f.addRegistration(10, 5, 1)

	s := newRegistrationService(f, nil, testNow)
	cancelled, err := s.Cancel(context.Background(), 10, participantIdentity(5))
	require.NoError(t, err)
	require.Equal(t, uint(2), cancelled.RegistrationStatusID)
}

func TestCancelNoStatusesConfigured(t *testing.T) {
	f := newFixture()
	f.addStatus(1, "Pending")
	f.addEvent(entity.Event{ID: 10, Date: testNow.Add(48 * time.Hour)})
	f.addRegistration(10, 5, 1)
	delete(f.statuses, 1)

	s := newRegistrationService(f, nil, testNow)
	_, err := s.Cancel(context.Background(), 10, participantIdentity(5))
	require.ErrorIs(t, err, errorz.NoRegistrationStatuses)
}

func TestListByEventScoping(t *testing.T) {
	f := newFixture()
	seedStatuses(f)
	f.addEvent(entity.Event{ID: 10, EventManagerID: 3, Date: testNow.Add(48 * time.Hour)})
	f.addRegistration(10, 5, 1)

	s := newRegistrationService(f, nil, testNow)

	_, err := s.ListByEvent(context.Background(), 10, entity.Identity{UserID: 1, Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = s.ListByEvent(context.Background(), 10, managerIdentity(3))
	require.NoError(t, err)

	_, err = s.ListByEvent(context.Background(), 10, managerIdentity(4))
	require.ErrorIs(t, err, errorz.Forbidden)

	_, err = s.ListByEvent(context.Background(), 10, participantIdentity(5))
	require.ErrorIs(t, err, errorz.Forbidden)
}
