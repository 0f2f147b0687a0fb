package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studiohub/api/internal/database"
	"github.com/studiohub/api/internal/model"
)

// TicketRepository handles support ticket data access
type TicketRepository struct {
	db database.Database
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db database.Database) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create creates a new ticket
func (r *TicketRepository) Create(ctx context.Context, ticket *model.RequestTicket) error {
	query := `
		CREATE ticket CONTENT {
			author: type::record($author),
			title: $title,
			description: $description,
			category: $category,
			status: $status,
			assigned_to: $assigned_to,
			comments: $comments,
			created_at: time::now()
		}
	`

	vars := map[string]interface{}{
		"author":      ticket.AuthorID,
		"title":       ticket.Title,
		"description": ticket.Description,
		"category":    ticket.Category,
		"status":      ticket.Status,
		"assigned_to": ptrToNone(ticket.AssignedTo),
		"comments":    encodeComments(ticket.Comments),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to extract created ticket: %w", err)
	}

	ticket.ID = created.ID
	ticket.CreatedAt = created.CreatedOn
	return nil
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*model.RequestTicket, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errBadResultFormat
	}
	return parseTicket(data), nil
}

// List retrieves all tickets, newest first
func (r *TicketRepository) List(ctx context.Context) ([]*model.RequestTicket, error) {
	query := `SELECT * FROM ticket ORDER BY created_at DESC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*model.RequestTicket, 0)
	for _, data := range unwrapRecords(result) {
		tickets = append(tickets, parseTicket(data))
	}
	return tickets, nil
}

// UpdateStatus sets a ticket's workflow status
func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, status model.TicketStatus) error {
	query := `UPDATE type::record($id) SET status = $status`
	vars := map[string]interface{}{
		"id":     id,
		"status": status,
	}

	return r.db.Execute(ctx, query, vars)
}

// Assign sets or clears a ticket's assignee
func (r *TicketRepository) Assign(ctx context.Context, id string, assignee *string) error {
	query := `UPDATE type::record($id) SET assigned_to = $assigned_to`
	vars := map[string]interface{}{
		"id":          id,
		"assigned_to": ptrToNone(assignee),
	}

	return r.db.Execute(ctx, query, vars)
}

// AppendComment pushes a comment onto a ticket's embedded thread
func (r *TicketRepository) AppendComment(ctx context.Context, id string, comment model.Comment) error {
	query := `UPDATE type::record($id) SET comments += $comment`
	vars := map[string]interface{}{
		"id":      id,
		"comment": encodeComment(comment),
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a ticket
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

// Comment codec, shared with the wishlist repository. Comments are embedded
// documents with client-generated UUIDs, not records of their own.

func encodeComment(c model.Comment) map[string]interface{} {
	return map[string]interface{}{
		"id":                c.ID,
		"user":              c.UserID,
		"user_name":         c.UserName,
		"text":              c.Text,
		"date":              c.Date.Format(time.RFC3339),
		"is_admin_response": c.IsAdminResponse,
	}
}

func encodeComments(comments []model.Comment) []map[string]interface{} {
	encoded := make([]map[string]interface{}, 0, len(comments))
	for _, c := range comments {
		encoded = append(encoded, encodeComment(c))
	}
	return encoded
}

func parseComment(data map[string]interface{}) model.Comment {
	c := model.Comment{
		ID:              getString(data, "id"),
		UserID:          convertSurrealID(data["user"]),
		UserName:        getString(data, "user_name"),
		Text:            getString(data, "text"),
		IsAdminResponse: getBool(data, "is_admin_response"),
	}
	if t := getTime(data, "date"); t != nil {
		c.Date = *t
	}
	return c
}

func parseComments(entries []map[string]interface{}) []model.Comment {
	comments := make([]model.Comment, 0, len(entries))
	for _, data := range entries {
		comments = append(comments, parseComment(data))
	}
	return comments
}

func parseTicket(data map[string]interface{}) *model.RequestTicket {
	ticket := &model.RequestTicket{
		ID:          convertSurrealID(data["id"]),
		AuthorID:    convertSurrealID(data["author"]),
		Title:       getString(data, "title"),
		Description: getString(data, "description"),
		Category:    model.TicketCategory(getString(data, "category")),
		Status:      model.TicketStatus(getString(data, "status")),
		AssignedTo:  getStringPtr(data, "assigned_to"),
		Comments:    parseComments(getMapSlice(data, "comments")),
	}

	if t := getTime(data, "created_at"); t != nil {
		ticket.CreatedAt = *t
	}

	return ticket
}
