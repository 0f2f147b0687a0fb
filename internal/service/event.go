package service

import (
	"context"
	"strings"
	"time"

	"github.com/studiohub/api/internal/model"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	AdjustRegisteredCount(ctx context.Context, id string, delta int) error
	Delete(ctx context.Context, id string) error
}

// EventService manages the studio events board
type EventService struct {
	eventRepo EventRepository
	access    *AccessService
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo EventRepository
	Access    *AccessService
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		eventRepo: cfg.EventRepo,
		access:    cfg.Access,
	}
}

// CreateEventRequest represents an event creation request
type CreateEventRequest struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	ImageURL    string
	Capacity    int
}

// CreateEvent publishes an event; privileged only
func (s *EventService) CreateEvent(ctx context.Context, actor *model.User, req CreateEventRequest) (*model.Event, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEventTitleRequired
	}

	event := &model.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Capacity:    req.Capacity,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// ListEvents retrieves all events
func (s *EventService) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.eventRepo.List(ctx)
}

// UpdateEventRequest represents an event mutation request
type UpdateEventRequest struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	ImageURL    *string
	Capacity    *int
}

// UpdateEvent mutates an event; privileged only
func (s *EventService) UpdateEvent(ctx context.Context, actor *model.User, id string, req UpdateEventRequest) (*model.Event, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrEventTitleRequired
		}
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Register counts the actor into the event. The counter is not validated
// against capacity; over-capacity registration is allowed.
func (s *EventService) Register(ctx context.Context, actor *model.User, id string) (*model.Event, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.AdjustRegisteredCount(ctx, id, 1); err != nil {
		return nil, err
	}
	event.RegisteredCount++
	return event, nil
}

// Unregister counts the actor out of the event; the counter never goes
// below zero.
func (s *EventService) Unregister(ctx context.Context, actor *model.User, id string) (*model.Event, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.AdjustRegisteredCount(ctx, id, -1); err != nil {
		return nil, err
	}
	if event.RegisteredCount > 0 {
		event.RegisteredCount--
	}
	return event, nil
}

// DeleteEvent removes an event; privileged only
func (s *EventService) DeleteEvent(ctx context.Context, actor *model.User, id string) error {
	if !s.access.IsPrivileged(actor) {
		return ErrForbidden
	}
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}
