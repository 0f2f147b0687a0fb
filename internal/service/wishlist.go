package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studiohub/api/internal/model"
)

// WishlistRepository defines the interface for wishlist storage
type WishlistRepository interface {
	Create(ctx context.Context, item *model.WishlistItem) error
	GetByID(ctx context.Context, id string) (*model.WishlistItem, error)
	List(ctx context.Context) ([]*model.WishlistItem, error)
	SetVotes(ctx context.Context, id string, votedUserIDs []string) error
	UpdateStatus(ctx context.Context, id string, status model.WishlistStatus) error
	AppendComment(ctx context.Context, id string, comment model.Comment) error
	Delete(ctx context.Context, id string) error
}

// WishlistService manages the community proposal board
type WishlistService struct {
	wishlistRepo WishlistRepository
	access       *AccessService
}

// WishlistServiceConfig holds configuration for the wishlist service
type WishlistServiceConfig struct {
	WishlistRepo WishlistRepository
	Access       *AccessService
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(cfg WishlistServiceConfig) *WishlistService {
	return &WishlistService{
		wishlistRepo: cfg.WishlistRepo,
		access:       cfg.Access,
	}
}

// CreateWishlistRequest represents a proposal creation request
type CreateWishlistRequest struct {
	Title       string
	Description string
	Category    model.WishlistCategory
}

// CreateItem files a proposal authored by the actor
func (s *WishlistService) CreateItem(ctx context.Context, actor *model.User, req CreateWishlistRequest) (*model.WishlistItem, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrWishlistTitleRequired
	}
	if !model.ValidWishlistCategory(req.Category) {
		return nil, ErrInvalidWishlistCategory
	}

	item := &model.WishlistItem{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     req.Category,
		Status:       model.WishlistStatusIdea,
		AuthorID:     actor.ID,
		AuthorName:   actor.Name,
		VotedUserIDs: []string{},
		Comments:     []model.Comment{},
	}

	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves a proposal by ID
func (s *WishlistService) GetItem(ctx context.Context, id string) (*model.WishlistItem, error) {
	item, err := s.wishlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrWishlistItemNotFound
	}
	return item, nil
}

// ListItems retrieves all proposals
func (s *WishlistService) ListItems(ctx context.Context) ([]*model.WishlistItem, error) {
	return s.wishlistRepo.List(ctx)
}

// ToggleVote adds the actor's vote to the proposal, or removes it if already
// present. The vote list keeps set semantics: a user id appears at most once.
func (s *WishlistService) ToggleVote(ctx context.Context, actor *model.User, id string) (*model.WishlistItem, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item.VotedUserIDs = toggleVote(item.VotedUserIDs, actor.ID)

	if err := s.wishlistRepo.SetVotes(ctx, id, item.VotedUserIDs); err != nil {
		return nil, err
	}
	return item, nil
}

// toggleVote returns the vote set with userID added, or removed when already
// present. Duplicates in the input are collapsed in passing.
func toggleVote(votes []string, userID string) []string {
	next := make([]string, 0, len(votes)+1)
	found := false
	for _, id := range votes {
		if id == userID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, userID)
	}
	return next
}

// SetStatus moves a proposal through review; privileged only
func (s *WishlistService) SetStatus(ctx context.Context, actor *model.User, id string, status model.WishlistStatus) (*model.WishlistItem, error) {
	if !s.access.IsPrivileged(actor) {
		return nil, ErrForbidden
	}
	if !model.ValidWishlistStatus(status) {
		return nil, ErrInvalidWishlistStatus
	}

	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.wishlistRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	item.Status = status
	return item, nil
}

// AddComment appends a comment to the proposal thread. The official
// admin-response flag is honored only for privileged actors.
func (s *WishlistService) AddComment(ctx context.Context, actor *model.User, id, text string, official bool) (*model.Comment, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}
	if _, err := s.GetItem(ctx, id); err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:              uuid.NewString(),
		UserID:          actor.ID,
		UserName:        actor.Name,
		Text:            strings.TrimSpace(text),
		Date:            time.Now(),
		IsAdminResponse: official && actor.IsPrivileged(),
	}

	if err := s.wishlistRepo.AppendComment(ctx, id, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteItem removes a proposal; author or privileged
func (s *WishlistService) DeleteItem(ctx context.Context, actor *model.User, id string) error {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if !s.access.CanModify(actor, item.AuthorID) {
		return ErrForbidden
	}
	return s.wishlistRepo.Delete(ctx, id)
}
