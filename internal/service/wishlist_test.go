package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/studiohub/api/internal/model"
)

type mockWishlistRepo struct {
	items  map[string]*model.WishlistItem
	nextID int
}

func newMockWishlistRepo() *mockWishlistRepo {
	return &mockWishlistRepo{items: make(map[string]*model.WishlistItem)}
}

func (m *mockWishlistRepo) Create(ctx context.Context, item *model.WishlistItem) error {
	m.nextID++
	item.ID = fmt.Sprintf("wishlist:%d", m.nextID)
	item.CreatedAt = time.Now()
	m.items[item.ID] = item
	return nil
}

func (m *mockWishlistRepo) GetByID(ctx context.Context, id string) (*model.WishlistItem, error) {
	return m.items[id], nil
}

func (m *mockWishlistRepo) List(ctx context.Context) ([]*model.WishlistItem, error) {
	result := make([]*model.WishlistItem, 0, len(m.items))
	for _, item := range m.items {
		result = append(result, item)
	}
	return result, nil
}

func (m *mockWishlistRepo) SetVotes(ctx context.Context, id string, votedUserIDs []string) error {
	if item, ok := m.items[id]; ok {
		item.VotedUserIDs = votedUserIDs
	}
	return nil
}

func (m *mockWishlistRepo) UpdateStatus(ctx context.Context, id string, status model.WishlistStatus) error {
	if item, ok := m.items[id]; ok {
		item.Status = status
	}
	return nil
}

func (m *mockWishlistRepo) AppendComment(ctx context.Context, id string, comment model.Comment) error {
	if item, ok := m.items[id]; ok {
		item.Comments = append(item.Comments, comment)
	}
	return nil
}

func (m *mockWishlistRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func setupWishlistService(t *testing.T) (*WishlistService, *mockWishlistRepo) {
	t.Helper()

	repo := newMockWishlistRepo()
	svc := NewWishlistService(WishlistServiceConfig{
		WishlistRepo: repo,
		Access:       NewAccessService(""),
	})
	return svc, repo
}

func seedWishlistItem(t *testing.T, svc *WishlistService, author *model.User) *model.WishlistItem {
	t.Helper()

	item, err := svc.CreateItem(context.Background(), author, CreateWishlistRequest{
		Title:    "Ring light",
		Category: model.WishlistCategoryEquipment,
	})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	return item
}

func TestWishlistService_CreateItem_StartsAsIdea(t *testing.T) {
	svc, _ := setupWishlistService(t)
	author := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}

	item := seedWishlistItem(t, svc, author)

	if item.Status != model.WishlistStatusIdea {
		t.Errorf("expected status idea, got %s", item.Status)
	}
	if item.AuthorID != author.ID || item.AuthorName != author.Name {
		t.Error("expected author recorded")
	}
	if item.VotedUserIDs == nil {
		t.Error("expected empty vote set, not nil")
	}
}

func TestWishlistService_ToggleVote_SetSemantics(t *testing.T) {
	svc, repo := setupWishlistService(t)
	ctx := context.Background()
	author := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}
	voter := &model.User{ID: "user:boris", Name: "Boris", Role: model.UserRoleBlogger}

	item := seedWishlistItem(t, svc, author)

	// First toggle adds the vote
	after, err := svc.ToggleVote(ctx, voter, item.ID)
	if err != nil {
		t.Fatalf("ToggleVote failed: %v", err)
	}
	if len(after.VotedUserIDs) != 1 || after.VotedUserIDs[0] != voter.ID {
		t.Errorf("expected single vote by %s, got %v", voter.ID, after.VotedUserIDs)
	}

	// Second toggle removes it
	after, err = svc.ToggleVote(ctx, voter, item.ID)
	if err != nil {
		t.Fatalf("ToggleVote failed: %v", err)
	}
	if len(after.VotedUserIDs) != 0 {
		t.Errorf("expected vote removed, got %v", after.VotedUserIDs)
	}
	if len(repo.items[item.ID].VotedUserIDs) != 0 {
		t.Error("stored vote set must match")
	}
}

func TestWishlistService_ToggleVote_CollapsesDuplicates(t *testing.T) {
	svc, repo := setupWishlistService(t)
	ctx := context.Background()
	author := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}
	voter := &model.User{ID: "user:boris", Name: "Boris", Role: model.UserRoleBlogger}

	item := seedWishlistItem(t, svc, author)
	// Simulate a historical duplicate in storage
	repo.items[item.ID].VotedUserIDs = []string{"user:boris", "user:carol", "user:boris"}

	after, err := svc.ToggleVote(ctx, voter, item.ID)
	if err != nil {
		t.Fatalf("ToggleVote failed: %v", err)
	}
	// Toggle removes all copies of the voter and keeps everyone else
	if len(after.VotedUserIDs) != 1 || after.VotedUserIDs[0] != "user:carol" {
		t.Errorf("expected duplicates collapsed, got %v", after.VotedUserIDs)
	}
}

func TestWishlistService_SetStatus_PrivilegedOnly(t *testing.T) {
	svc, _ := setupWishlistService(t)
	ctx := context.Background()
	author := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}
	admin := &model.User{ID: "user:admin", Name: "Maria", Role: model.UserRoleProducerAdmin}

	item := seedWishlistItem(t, svc, author)

	if _, err := svc.SetStatus(ctx, author, item.ID, model.WishlistStatusReview); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for author, got %v", err)
	}

	updated, err := svc.SetStatus(ctx, admin, item.ID, model.WishlistStatusReview)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != model.WishlistStatusReview {
		t.Errorf("expected review, got %s", updated.Status)
	}
}

func TestWishlistService_AddComment_OfficialFlagRequiresPrivilege(t *testing.T) {
	svc, _ := setupWishlistService(t)
	ctx := context.Background()
	author := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}
	admin := &model.User{ID: "user:admin", Name: "Maria", Role: model.UserRoleTechAdmin}

	item := seedWishlistItem(t, svc, author)

	// A blogger asking for the official flag does not get it
	comment, err := svc.AddComment(ctx, author, item.ID, "please!", true)
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if comment.IsAdminResponse {
		t.Error("blogger comment must not be marked official")
	}

	comment, err = svc.AddComment(ctx, admin, item.ID, "ordered", true)
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if !comment.IsAdminResponse {
		t.Error("admin comment with official flag must be marked official")
	}
	if comment.ID == "" {
		t.Error("expected generated comment id")
	}
}

func TestWishlistService_AddComment_EmptyText(t *testing.T) {
	svc, _ := setupWishlistService(t)
	ctx := context.Background()
	author := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}

	item := seedWishlistItem(t, svc, author)

	if _, err := svc.AddComment(ctx, author, item.ID, "   ", false); !errors.Is(err, ErrCommentTextRequired) {
		t.Errorf("expected ErrCommentTextRequired, got %v", err)
	}
}

func TestWishlistService_DeleteItem_AuthorOrAdmin(t *testing.T) {
	svc, repo := setupWishlistService(t)
	ctx := context.Background()
	author := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}
	stranger := &model.User{ID: "user:boris", Name: "Boris", Role: model.UserRoleBlogger}

	item := seedWishlistItem(t, svc, author)

	if err := svc.DeleteItem(ctx, stranger, item.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteItem(ctx, author, item.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("expected item removed")
	}
}
