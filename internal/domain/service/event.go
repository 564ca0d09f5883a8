package service

import (
	"context"
	"strings"
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
)

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id uint) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Count(ctx context.Context, filter entity.EventFilter) (int64, error)
	GetWithPagination(ctx context.Context, filter entity.EventFilter, offset, limit int, order string) ([]entity.Event, error)
	GetRecent(ctx context.Context, filter entity.EventFilter, limit int) ([]entity.Event, error)
}

// EventListParams describes one page of an event listing.
type EventListParams struct {
	StatusID     *uint
	Search       string
	UpcomingOnly bool
	Page         int
	PerPage      int
}

type EventService struct {
	eventStorage EventStorage

	now func() time.Time
}

func NewEventService(storage EventStorage) *EventService {
	return &EventService{
		eventStorage: storage,
		now:          time.Now,
	}
}

// Create creates an event owned by the acting event manager.
func (s *EventService) Create(ctx context.Context, event *entity.Event, manager entity.Identity) (*entity.Event, error) {
	if manager.Role != entity.RoleEventManager {
		return nil, errorz.Forbidden
	}
	event.EventManagerID = manager.UserID
	return s.eventStorage.Create(ctx, event)
}

// Get returns an event. Event managers may only view their own events;
// admins and participants may view any.
func (s *EventService) Get(ctx context.Context, id uint, viewer entity.Identity) (*entity.Event, error) {
	event, err := s.eventStorage.Get(ctx, id)
	if err != nil {
		return nil, asNotFound(err, errorz.EventNotFound)
	}
	if viewer.Role == entity.RoleEventManager && !event.OwnedBy(viewer.UserID) {
		return nil, errorz.Forbidden
	}
	return event, nil
}

// Update persists changes to an event. The owning event manager and any
// admin may edit; the owner never changes.
func (s *EventService) Update(ctx context.Context, event *entity.Event, editor entity.Identity) (*entity.Event, error) {
	existing, err := s.eventStorage.Get(ctx, event.ID)
	if err != nil {
		return nil, asNotFound(err, errorz.EventNotFound)
	}

	switch editor.Role {
	case entity.RoleAdmin:
	case entity.RoleEventManager:
		if !existing.OwnedBy(editor.UserID) {
			return nil, errorz.Forbidden
		}
	default:
		return nil, errorz.Forbidden
	}

	event.EventManagerID = existing.EventManagerID
	event.CreatedAt = existing.CreatedAt
	return s.eventStorage.Update(ctx, event)
}

// List returns one page of events scoped to the viewer: event managers see
// their own events only, admins and participants see all.
func (s *EventService) List(ctx context.Context, viewer entity.Identity, params EventListParams) ([]entity.Event, int64, error) {
	filter := s.scopedFilter(viewer, params)

	total, err := s.eventStorage.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = 10
	}
	offset := (params.Page - 1) * params.PerPage

	events, err := s.eventStorage.GetWithPagination(ctx, filter, offset, params.PerPage, "date ASC")
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Recent returns the most recently created events visible to the viewer,
// used by the dashboards.
func (s *EventService) Recent(ctx context.Context, viewer entity.Identity, limit int) ([]entity.Event, error) {
	return s.eventStorage.GetRecent(ctx, s.scopedFilter(viewer, EventListParams{}), limit)
}

// CountUpcoming counts future events visible to the viewer.
func (s *EventService) CountUpcoming(ctx context.Context, viewer entity.Identity) (int64, error) {
	return s.eventStorage.Count(ctx, s.scopedFilter(viewer, EventListParams{UpcomingOnly: true}))
}

func (s *EventService) scopedFilter(viewer entity.Identity, params EventListParams) entity.EventFilter {
	filter := entity.EventFilter{
		StatusID:   params.StatusID,
		NameSearch: strings.ToLower(strings.TrimSpace(params.Search)),
	}
	if viewer.Role == entity.RoleEventManager {
		managerID := viewer.UserID
		filter.ManagerID = &managerID
	}
	if params.UpcomingOnly {
		now := s.now()
		filter.After = &now
	}
	return filter
}
