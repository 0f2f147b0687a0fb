package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studiohub/api/internal/database"
	"github.com/studiohub/api/internal/model"
)

// EventRepository handles studio event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event CONTENT {
			title: $title,
			description: $description,
			date: <datetime>$date,
			location: $location,
			image_url: $image_url,
			capacity: $capacity,
			registered_count: $registered_count,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"title":            event.Title,
		"description":      event.Description,
		"date":             event.Date.Format(time.RFC3339),
		"location":         event.Location,
		"image_url":        event.ImageURL,
		"capacity":         event.Capacity,
		"registered_count": event.RegisteredCount,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to extract created event: %w", err)
	}

	event.ID = created.ID
	event.CreatedOn = created.CreatedOn
	event.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errBadResultFormat
	}
	return parseEvent(data), nil
}

// List retrieves all events ordered by date
func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event ORDER BY date ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*model.Event, 0)
	for _, data := range unwrapRecords(result) {
		events = append(events, parseEvent(data))
	}
	return events, nil
}

// Update replaces an event's editable fields
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			date = <datetime>$date,
			location = $location,
			image_url = $image_url,
			capacity = $capacity,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":          event.ID,
		"title":       event.Title,
		"description": event.Description,
		"date":        event.Date.Format(time.RFC3339),
		"location":    event.Location,
		"image_url":   event.ImageURL,
		"capacity":    event.Capacity,
	}

	return r.db.Execute(ctx, query, vars)
}

// AdjustRegisteredCount shifts the registration counter by delta.
// The counter is not clamped to capacity; over-capacity registration is
// an accepted state.
func (r *EventRepository) AdjustRegisteredCount(ctx context.Context, id string, delta int) error {
	query := `
		UPDATE type::record($id) SET
			registered_count = math::max([0, registered_count + $delta]),
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":    id,
		"delta": delta,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes an event
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

func parseEvent(data map[string]interface{}) *model.Event {
	event := &model.Event{
		ID:              convertSurrealID(data["id"]),
		Title:           getString(data, "title"),
		Description:     getString(data, "description"),
		Location:        getString(data, "location"),
		ImageURL:        getString(data, "image_url"),
		Capacity:        getInt(data, "capacity"),
		RegisteredCount: getInt(data, "registered_count"),
	}

	if t := getTime(data, "date"); t != nil {
		event.Date = *t
	}
	if t := getTime(data, "created_on"); t != nil {
		event.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		event.UpdatedOn = *t
	}

	return event
}
