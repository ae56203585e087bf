package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

var ErrNotOwner = errors.New("resource does not belong to this user")

type EventService struct {
	store storage.Store
	log   *logger.Logger
}

func NewEventService(store storage.Store, log *logger.Logger) *EventService {
	return &EventService{
		store: store,
		log:   log,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, organizerID int64, req *models.CreateEventRequest) (*models.Event, error) {
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Category:    req.Category,
		Tags:        req.Tags,
		IsApproved:  false,
		Status:      models.EventPending,
		OrganizerID: organizerID,
		CreatedAt:   time.Now(),
	}

	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	s.log.LogProcess("EVENT_CREATE", fmt.Sprintf("Organizer %d created event %d (%s)", organizerID, event.ID, event.Title))
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return s.store.GetEvent(ctx, id)
}

func (s *EventService) ListApprovedEvents(ctx context.Context) ([]*models.Event, error) {
	return s.store.ListApprovedEvents(ctx)
}

func (s *EventService) ListOrganizerEvents(ctx context.Context, organizerID int64) ([]*models.Event, error) {
	return s.store.ListEventsByOrganizer(ctx, organizerID)
}

func (s *EventService) UpdateEvent(ctx context.Context, organizerID, eventID int64, req *models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Tags != nil {
		event.Tags = *req.Tags
	}

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, organizerID, eventID int64) error {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != organizerID {
		return ErrNotOwner
	}

	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		return err
	}

	s.log.LogProcess("EVENT_DELETE", fmt.Sprintf("Organizer %d deleted event %d", organizerID, eventID))
	return nil
}

// ---------------- Admin approval ----------------

func (s *EventService) ListPendingEvents(ctx context.Context) ([]*models.Event, error) {
	return s.store.ListPendingEvents(ctx)
}

// ApproveEvent records the admin decision. A decided event can be decided
// again (approve after reject and vice versa) but never returns to pending.
func (s *EventService) ApproveEvent(ctx context.Context, eventID int64, approve bool) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if approve {
		event.IsApproved = true
		event.Status = models.EventActive
	} else {
		event.IsApproved = false
		event.Status = models.EventRejected
	}

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}

	s.log.LogProcess("EVENT_APPROVE", fmt.Sprintf("Event %d decision recorded: approve=%t", eventID, approve))
	return event, nil
}

// ---------------- Saved events ----------------

func (s *EventService) SaveEvent(ctx context.Context, userID, eventID int64) (*models.SavedEvent, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.SaveEvent(ctx, userID, eventID)
}

func (s *EventService) UnsaveEvent(ctx context.Context, userID, eventID int64) error {
	return s.store.UnsaveEvent(ctx, userID, eventID)
}

func (s *EventService) ListSavedEvents(ctx context.Context, userID int64) ([]*models.SavedEvent, error) {
	return s.store.ListSavedEvents(ctx, userID)
}
