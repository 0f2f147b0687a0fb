package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/studiohub/api/internal/database"
	"github.com/studiohub/api/internal/model"
)

// WishlistRepository handles wishlist proposal data access
type WishlistRepository struct {
	db database.Database
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db database.Database) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Create creates a new wishlist proposal
func (r *WishlistRepository) Create(ctx context.Context, item *model.WishlistItem) error {
	query := `
		CREATE wishlist_item CONTENT {
			title: $title,
			description: $description,
			category: $category,
			status: $status,
			author: type::record($author),
			author_name: $author_name,
			voted_user_ids: $voted_user_ids,
			comments: $comments,
			created_at: time::now()
		}
	`

	vars := map[string]interface{}{
		"title":          item.Title,
		"description":    item.Description,
		"category":       item.Category,
		"status":         item.Status,
		"author":         item.AuthorID,
		"author_name":    item.AuthorName,
		"voted_user_ids": item.VotedUserIDs,
		"comments":       encodeComments(item.Comments),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create wishlist item: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to extract created wishlist item: %w", err)
	}

	item.ID = created.ID
	item.CreatedAt = created.CreatedOn
	return nil
}

// GetByID retrieves a wishlist proposal by ID
func (r *WishlistRepository) GetByID(ctx context.Context, id string) (*model.WishlistItem, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wishlist item: %w", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errBadResultFormat
	}
	return parseWishlistItem(data), nil
}

// List retrieves all wishlist proposals, newest first
func (r *WishlistRepository) List(ctx context.Context) ([]*model.WishlistItem, error) {
	query := `SELECT * FROM wishlist_item ORDER BY created_at DESC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}

	items := make([]*model.WishlistItem, 0)
	for _, data := range unwrapRecords(result) {
		items = append(items, parseWishlistItem(data))
	}
	return items, nil
}

// SetVotes replaces the proposal's vote set. The service layer computes the
// toggled set; the repository just persists it.
func (r *WishlistRepository) SetVotes(ctx context.Context, id string, votedUserIDs []string) error {
	query := `UPDATE type::record($id) SET voted_user_ids = $voted_user_ids`
	vars := map[string]interface{}{
		"id":             id,
		"voted_user_ids": votedUserIDs,
	}

	return r.db.Execute(ctx, query, vars)
}

// UpdateStatus sets a proposal's review status
func (r *WishlistRepository) UpdateStatus(ctx context.Context, id string, status model.WishlistStatus) error {
	query := `UPDATE type::record($id) SET status = $status`
	vars := map[string]interface{}{
		"id":     id,
		"status": status,
	}

	return r.db.Execute(ctx, query, vars)
}

// AppendComment pushes a comment onto a proposal's embedded thread
func (r *WishlistRepository) AppendComment(ctx context.Context, id string, comment model.Comment) error {
	query := `UPDATE type::record($id) SET comments += $comment`
	vars := map[string]interface{}{
		"id":      id,
		"comment": encodeComment(comment),
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a wishlist proposal
func (r *WishlistRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

func parseWishlistItem(data map[string]interface{}) *model.WishlistItem {
	item := &model.WishlistItem{
		ID:           convertSurrealID(data["id"]),
		Title:        getString(data, "title"),
		Description:  getString(data, "description"),
		Category:     model.WishlistCategory(getString(data, "category")),
		Status:       model.WishlistStatus(getString(data, "status")),
		AuthorID:     convertSurrealID(data["author"]),
		AuthorName:   getString(data, "author_name"),
		VotedUserIDs: getStringSlice(data, "voted_user_ids"),
		Comments:     parseComments(getMapSlice(data, "comments")),
	}

	if item.VotedUserIDs == nil {
		item.VotedUserIDs = []string{}
	}
	if t := getTime(data, "created_at"); t != nil {
		item.CreatedAt = *t
	}

	return item
}
