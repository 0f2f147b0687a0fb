package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studiohub/api/internal/model"
)

// TicketRepository defines the interface for ticket storage
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.RequestTicket) error
	GetByID(ctx context.Context, id string) (*model.RequestTicket, error)
	List(ctx context.Context) ([]*model.RequestTicket, error)
	UpdateStatus(ctx context.Context, id string, status model.TicketStatus) error
	Assign(ctx context.Context, id string, assignee *string) error
	AppendComment(ctx context.Context, id string, comment model.Comment) error
	Delete(ctx context.Context, id string) error
}

// TicketService manages the helpdesk board
type TicketService struct {
	ticketRepo TicketRepository
	access     *AccessService
}

// TicketServiceConfig holds configuration for the ticket service
type TicketServiceConfig struct {
	TicketRepo TicketRepository
	Access     *AccessService
}

// NewTicketService creates a new ticket service
func NewTicketService(cfg TicketServiceConfig) *TicketService {
	return &TicketService{
		ticketRepo: cfg.TicketRepo,
		access:     cfg.Access,
	}
}

// CreateTicketRequest represents a ticket creation request
type CreateTicketRequest struct {
	Title       string
	Description string
	Category    model.TicketCategory
}

// CreateTicket files a ticket authored by the actor
func (s *TicketService) CreateTicket(ctx context.Context, actor *model.User, req CreateTicketRequest) (*model.RequestTicket, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTicketTitleRequired
	}
	if !model.ValidTicketCategory(req.Category) {
		return nil, ErrInvalidTicketCategory
	}

	ticket := &model.RequestTicket{
		AuthorID:    actor.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Status:      model.TicketStatusNew,
		Comments:    []model.Comment{},
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetTicket retrieves a ticket by ID
func (s *TicketService) GetTicket(ctx context.Context, id string) (*model.RequestTicket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// ListTickets retrieves all tickets
func (s *TicketService) ListTickets(ctx context.Context) ([]*model.RequestTicket, error) {
	return s.ticketRepo.List(ctx)
}

// SetStatus moves a ticket through the workflow; privileged only
func (s *TicketService) SetStatus(ctx context.Context, actor *model.User, id string, status model.TicketStatus) (*model.RequestTicket, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}
	if !model.ValidTicketStatus(status) {
		return nil, ErrInvalidTicketStatus
	}

	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	ticket.Status = status
	return ticket, nil
}

// Assign sets or clears the ticket assignee; privileged only
func (s *TicketService) Assign(ctx context.Context, actor *model.User, id string, assignee *string) (*model.RequestTicket, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}

	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Assign(ctx, id, assignee); err != nil {
		return nil, err
	}
	ticket.AssignedTo = assignee
	return ticket, nil
}

// AddComment appends a comment to the ticket thread. Any authenticated user
// may comment; comments from privileged users are flagged as admin responses.
func (s *TicketService) AddComment(ctx context.Context, actor *model.User, id, text string) (*model.Comment, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}
	if _, err := s.GetTicket(ctx, id); err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:              uuid.NewString(),
		UserID:          actor.ID,
		UserName:        actor.Name,
		Text:            strings.TrimSpace(text),
		Date:            time.Now(),
		IsAdminResponse: actor.IsPrivileged(),
	}

	if err := s.ticketRepo.AppendComment(ctx, id, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteTicket removes a ticket; author or privileged
func (s *TicketService) DeleteTicket(ctx context.Context, actor *model.User, id string) error {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}
	if !s.access.CanModify(actor, ticket.AuthorID) {
		return ErrForbidden
	}
	return s.ticketRepo.Delete(ctx, id)
}
