package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studiohub/api/internal/database"
	"github.com/studiohub/api/internal/model"
)

// BookingRepository handles booking data access
type BookingRepository struct {
	db database.Database
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	vars := map[string]interface{}{
		"user":          booking.UserID,
		"resource_id":   booking.ResourceID,
		"resource_name": booking.ResourceName,
		"kind":          booking.Kind,
		"start_time":    booking.StartTime.Format(time.RFC3339),
		"end_time":      booking.EndTime.Format(time.RFC3339),
		"status":        booking.Status,
	}

	// Build optional fields
	optionalFields := ""
	if booking.Comment != nil && *booking.Comment != "" {
		optionalFields += ",\n\t\t\tcomment: $comment"
		vars["comment"] = *booking.Comment
	}
	if booking.ClientInfo != nil {
		optionalFields += ",\n\t\t\tclient_info: $client_info"
		vars["client_info"] = encodeClientInfo(booking.ClientInfo)
	}

	query := `
		CREATE booking CONTENT {
			user: type::record($user),
			resource_id: $resource_id,
			resource_name: $resource_name,
			kind: $kind,
			start_time: <datetime>$start_time,
			end_time: <datetime>$end_time,
			status: $status,
			created_on: time::now(),
			updated_on: time::now()` + optionalFields + `
		}
	`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to extract created booking: %w", err)
	}

	booking.ID = created.ID
	booking.CreatedOn = created.CreatedOn
	booking.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errBadResultFormat
	}
	return parseBooking(data), nil
}

// List retrieves all bookings ordered by start time
func (r *BookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	query := `SELECT * FROM booking ORDER BY start_time ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return parseBookings(result), nil
}

// ListByUser retrieves bookings created by a user
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	query := `SELECT * FROM booking WHERE user = type::record($user) ORDER BY start_time ASC`
	vars := map[string]interface{}{"user": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}

	return parseBookings(result), nil
}

// ListUnfinished retrieves bookings still in a non-terminal status.
// Used by the status processor to advance planned and active bookings.
func (r *BookingRepository) ListUnfinished(ctx context.Context) ([]*model.Booking, error) {
	query := `SELECT * FROM booking WHERE status IN ["planned", "active"] ORDER BY start_time ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list unfinished bookings: %w", err)
	}

	return parseBookings(result), nil
}

// UpdateStatus sets a booking's lifecycle status
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	query := `UPDATE type::record($id) SET status = $status, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":     id,
		"status": status,
	}

	return r.db.Execute(ctx, query, vars)
}

// Update replaces a booking's editable fields
func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE type::record($id) SET
			resource_id = $resource_id,
			resource_name = $resource_name,
			kind = $kind,
			start_time = <datetime>$start_time,
			end_time = <datetime>$end_time,
			client_info = $client_info,
			comment = $comment,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":            booking.ID,
		"resource_id":   booking.ResourceID,
		"resource_name": booking.ResourceName,
		"kind":          booking.Kind,
		"start_time":    booking.StartTime.Format(time.RFC3339),
		"end_time":      booking.EndTime.Format(time.RFC3339),
		"client_info":   encodeClientInfo(booking.ClientInfo),
		"comment":       ptrToNone(booking.Comment),
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a booking
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

// Codec

func encodeClientInfo(c *model.ClientInfo) interface{} {
	if c == nil {
		return nil
	}
	return map[string]interface{}{
		"name":     c.Name,
		"phone":    c.Phone,
		"vk":       c.VK,
		"telegram": c.Telegram,
	}
}

func parseClientInfo(data map[string]interface{}) *model.ClientInfo {
	if data == nil {
		return nil
	}
	return &model.ClientInfo{
		Name:     getString(data, "name"),
		Phone:    getString(data, "phone"),
		VK:       getString(data, "vk"),
		Telegram: getString(data, "telegram"),
	}
}

func parseBooking(data map[string]interface{}) *model.Booking {
	booking := &model.Booking{
		ID:           convertSurrealID(data["id"]),
		UserID:       convertSurrealID(data["user"]),
		ResourceID:   getString(data, "resource_id"),
		ResourceName: getString(data, "resource_name"),
		Kind:         model.BookingKind(getString(data, "kind")),
		Status:       model.BookingStatus(getString(data, "status")),
		Comment:      getStringPtr(data, "comment"),
		ClientInfo:   parseClientInfo(getMap(data, "client_info")),
	}

	if t := getTime(data, "start_time"); t != nil {
		booking.StartTime = *t
	}
	if t := getTime(data, "end_time"); t != nil {
		booking.EndTime = *t
	}
	if t := getTime(data, "created_on"); t != nil {
		booking.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		booking.UpdatedOn = *t
	}

	return booking
}

func parseBookings(result []interface{}) []*model.Booking {
	bookings := make([]*model.Booking, 0)
	for _, data := range unwrapRecords(result) {
		bookings = append(bookings, parseBooking(data))
	}
	return bookings
}
