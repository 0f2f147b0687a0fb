package model

import "time"

// BookingKind distinguishes room reservations from equipment checkouts
type BookingKind string

const (
	BookingKindRoom      BookingKind = "room"
	BookingKindEquipment BookingKind = "equipment"
)

// BookingStatus is the lifecycle state of a booking.
//
// Transitions are monotonic: planned -> active -> completed. Cancelled is
// reachable from planned or active and is terminal, as is completed.
type BookingStatus string

const (
	BookingStatusPlanned   BookingStatus = "planned"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// ClientInfo holds contact details for an external renter attached to a booking.
type ClientInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	VK       string `json:"vk,omitempty"`
	Telegram string `json:"telegram,omitempty"`
}

// Booking represents a reservation of a room or piece of equipment.
//
// Invariant: StartTime < EndTime. Resource overlap between bookings is NOT
// checked; two bookings may claim the same resource for the same window.
type Booking struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	ResourceID   string        `json:"resource_id"`
	ResourceName string        `json:"resource_name"`
	Kind         BookingKind   `json:"kind"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Status       BookingStatus `json:"status"`
	ClientInfo   *ClientInfo   `json:"client_info,omitempty"`
	Comment      *string       `json:"comment,omitempty"`
	CreatedOn    time.Time     `json:"created_on"`
	UpdatedOn    time.Time     `json:"updated_on"`
}
