package model

import "time"

// TicketCategory classifies support tickets
type TicketCategory string

const (
	TicketCategoryProblem    TicketCategory = "problem"
	TicketCategoryEquipment  TicketCategory = "equipment"
	TicketCategoryAccess     TicketCategory = "access"
	TicketCategorySuggestion TicketCategory = "suggestion"
)

// ValidTicketCategory reports whether c is a known ticket category.
func ValidTicketCategory(c TicketCategory) bool {
	switch c {
	case TicketCategoryProblem, TicketCategoryEquipment, TicketCategoryAccess, TicketCategorySuggestion:
		return true
	}
	return false
}

// TicketStatus is the workflow state of a support ticket
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusDone       TicketStatus = "done"
	TicketStatusRejected   TicketStatus = "rejected"
)

// ValidTicketStatus reports whether s is a known ticket status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusDone, TicketStatusRejected:
		return true
	}
	return false
}

// RequestTicket represents a support/helpdesk ticket on the board.
type RequestTicket struct {
	ID          string         `json:"id"`
	AuthorID    string         `json:"author_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    TicketCategory `json:"category"`
	Status      TicketStatus   `json:"status"`
	AssignedTo  *string        `json:"assigned_to,omitempty"`
	Comments    []Comment      `json:"comments"`
	CreatedAt   time.Time      `json:"created_at"`
}
