package model

import "time"

// Comment is a thread entry embedded wholesale in its parent ticket or
// wishlist record. Comments are never normalized into their own table.
type Comment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	Text            string    `json:"text"`
	Date            time.Time `json:"date"`
	IsAdminResponse bool      `json:"is_admin_response,omitempty"`
}
