package model

import "time"

// Event represents a published studio event.
//
// RegisteredCount is not validated against Capacity; over-capacity
// registration is allowed.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	Location        string    `json:"location"`
	ImageURL        string    `json:"image_url"`
	Capacity        int       `json:"capacity"`
	RegisteredCount int       `json:"registered_count"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}
