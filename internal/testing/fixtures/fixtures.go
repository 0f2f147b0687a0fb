// Package fixtures provides test data factories for database integration
// testing.
//
// Each factory method creates an entity with sensible defaults while
// allowing customization via option functions. Factories insert through the
// repository layer so created records carry the same shape production
// writes do.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	user := f.CreateUser(t)
//	booking := f.CreateBooking(t, user)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/studiohub/api/internal/database"
	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Factory creates test entities through the repository layer.
type Factory struct {
	users         *repository.UserRepository
	bookings      *repository.BookingRepository
	inventory     *repository.InventoryRepository
	tickets       *repository.TicketRepository
	wishlist      *repository.WishlistRepository
	events        *repository.EventRepository
	tasks         *repository.TaskRepository
	notifications *repository.NotificationRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		users:         repository.NewUserRepository(db),
		bookings:      repository.NewBookingRepository(db),
		inventory:     repository.NewInventoryRepository(db),
		tickets:       repository.NewTicketRepository(db),
		wishlist:      repository.NewWishlistRepository(db),
		events:        repository.NewEventRepository(db),
		tasks:         repository.NewTaskRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_ = cancel
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Name          string
	Email         string
	Password      string
	Role          model.UserRole
	IsVerified    bool
	EmailVerified bool
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Name:          fmt.Sprintf("User %s", randomID()),
		Email:         fmt.Sprintf("user_%s@test.local", randomID()),
		Password:      "testpass123",
		Role:          model.UserRoleBlogger,
		IsVerified:    false,
		EmailVerified: true,
	}
	for _, fn := range opts {
		fn(o)
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}
	hash := string(hashBytes)

	user := &model.User{
		Name:            o.Name,
		Email:           o.Email,
		Role:            o.Role,
		Hash:            &hash,
		IsVerified:      o.IsVerified,
		IsEmailVerified: o.EmailVerified,
	}

	if err := f.users.Create(ctx(), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// CreateAdmin creates a verified user with the studio_admin role.
func (f *Factory) CreateAdmin(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()
	base := func(o *UserOpts) {
		o.Role = model.UserRoleStudioAdmin
		o.IsVerified = true
	}
	return f.CreateUser(t, append([]func(*UserOpts){base}, opts...)...)
}

// ============================================================================
// Booking Fixtures
// ============================================================================

// BookingOpts customizes booking creation
type BookingOpts struct {
	ResourceID   string
	ResourceName string
	Kind         model.BookingKind
	StartTime    time.Time
	EndTime      time.Time
	Status       model.BookingStatus
	Comment      *string
	ClientInfo   *model.ClientInfo
}

// CreateBooking creates a booking owned by the given user.
func (f *Factory) CreateBooking(t *testing.T, owner *model.User, opts ...func(*BookingOpts)) *model.Booking {
	t.Helper()

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	o := &BookingOpts{
		ResourceID:   fmt.Sprintf("room_%s", randomID()),
		ResourceName: "Studio A",
		Kind:         model.BookingKindRoom,
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
		Status:       model.BookingStatusPlanned,
	}
	for _, fn := range opts {
		fn(o)
	}

	booking := &model.Booking{
		UserID:       owner.ID,
		ResourceID:   o.ResourceID,
		ResourceName: o.ResourceName,
		Kind:         o.Kind,
		StartTime:    o.StartTime,
		EndTime:      o.EndTime,
		Status:       o.Status,
		Comment:      o.Comment,
		ClientInfo:   o.ClientInfo,
	}

	if err := f.bookings.Create(ctx(), booking); err != nil {
		t.Fatalf("fixtures: failed to create booking: %v", err)
	}
	return booking
}

// ============================================================================
// Inventory Fixtures
// ============================================================================

// ItemOpts customizes inventory item creation
type ItemOpts struct {
	Name      string
	Category  model.ItemCategory
	OwnerType model.OwnerType
	Location  string
	Status    model.ItemStatus
	Quantity  int
}

// CreateItem creates an inventory item.
func (f *Factory) CreateItem(t *testing.T, opts ...func(*ItemOpts)) *model.InventoryItem {
	t.Helper()

	o := &ItemOpts{
		Name:      fmt.Sprintf("Camera %s", randomID()),
		Category:  model.ItemCategoryCamera,
		OwnerType: model.OwnerTypeStudio,
		Location:  "Shelf 1",
		Status:    model.ItemStatusAvailable,
		Quantity:  1,
	}
	for _, fn := range opts {
		fn(o)
	}

	item := &model.InventoryItem{
		Name:         o.Name,
		Category:     o.Category,
		SerialNumber: fmt.Sprintf("SN-%s", randomID()),
		Quantity:     o.Quantity,
		OwnerType:    o.OwnerType,
		Location:     o.Location,
		Status:       o.Status,
	}

	if err := f.inventory.Create(ctx(), item); err != nil {
		t.Fatalf("fixtures: failed to create inventory item: %v", err)
	}
	return item
}

// ============================================================================
// Ticket Fixtures
// ============================================================================

// TicketOpts customizes ticket creation
type TicketOpts struct {
	Title    string
	Category model.TicketCategory
	Status   model.TicketStatus
}

// CreateTicket creates a support ticket authored by the given user.
func (f *Factory) CreateTicket(t *testing.T, author *model.User, opts ...func(*TicketOpts)) *model.RequestTicket {
	t.Helper()

	o := &TicketOpts{
		Title:    fmt.Sprintf("Ticket %s", randomID()),
		Category: model.TicketCategoryProblem,
		Status:   model.TicketStatusNew,
	}
	for _, fn := range opts {
		fn(o)
	}

	ticket := &model.RequestTicket{
		AuthorID:    author.ID,
		Title:       o.Title,
		Description: "Something needs attention",
		Category:    o.Category,
		Status:      o.Status,
	}

	if err := f.tickets.Create(ctx(), ticket); err != nil {
		t.Fatalf("fixtures: failed to create ticket: %v", err)
	}
	return ticket
}

// ============================================================================
// Wishlist Fixtures
// ============================================================================

// WishlistOpts customizes wishlist item creation
type WishlistOpts struct {
	Title    string
	Category model.WishlistCategory
	Status   model.WishlistStatus
}

// CreateWishlistItem creates a wishlist proposal authored by the given user.
func (f *Factory) CreateWishlistItem(t *testing.T, author *model.User, opts ...func(*WishlistOpts)) *model.WishlistItem {
	t.Helper()

	o := &WishlistOpts{
		Title:    fmt.Sprintf("Proposal %s", randomID()),
		Category: model.WishlistCategoryEquipment,
		Status:   model.WishlistStatusIdea,
	}
	for _, fn := range opts {
		fn(o)
	}

	item := &model.WishlistItem{
		Title:       o.Title,
		Description: "Would be nice to have",
		Category:    o.Category,
		Status:      o.Status,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
	}

	if err := f.wishlist.Create(ctx(), item); err != nil {
		t.Fatalf("fixtures: failed to create wishlist item: %v", err)
	}
	return item
}

// ============================================================================
// Event Fixtures
// ============================================================================

// EventOpts customizes event creation
type EventOpts struct {
	Title    string
	Date     time.Time
	Capacity int
}

// CreateEvent creates a studio event.
func (f *Factory) CreateEvent(t *testing.T, opts ...func(*EventOpts)) *model.Event {
	t.Helper()

	o := &EventOpts{
		Title:    fmt.Sprintf("Event %s", randomID()),
		Date:     time.Now().Add(7 * 24 * time.Hour).Truncate(time.Hour),
		Capacity: 20,
	}
	for _, fn := range opts {
		fn(o)
	}

	event := &model.Event{
		Title:       o.Title,
		Description: "Open studio session",
		Date:        o.Date,
		Location:    "Main hall",
		Capacity:    o.Capacity,
	}

	if err := f.events.Create(ctx(), event); err != nil {
		t.Fatalf("fixtures: failed to create event: %v", err)
	}
	return event
}

// ============================================================================
// Task Fixtures
// ============================================================================

// TaskOpts customizes task creation
type TaskOpts struct {
	Title     string
	Date      string
	Category  model.TaskCategory
	Completed bool
}

// CreateTask creates a planner task for the given user.
func (f *Factory) CreateTask(t *testing.T, owner *model.User, opts ...func(*TaskOpts)) *model.UserTask {
	t.Helper()

	o := &TaskOpts{
		Title:    fmt.Sprintf("Task %s", randomID()),
		Date:     time.Now().Format("2006-01-02"),
		Category: model.TaskCategoryOther,
	}
	for _, fn := range opts {
		fn(o)
	}

	task := &model.UserTask{
		UserID:      owner.ID,
		Title:       o.Title,
		Date:        o.Date,
		IsCompleted: o.Completed,
		Category:    o.Category,
	}

	if err := f.tasks.Create(ctx(), task); err != nil {
		t.Fatalf("fixtures: failed to create task: %v", err)
	}
	return task
}

// ============================================================================
// Notification Fixtures
// ============================================================================

// NotificationOpts customizes notification creation
type NotificationOpts struct {
	Text     string
	Severity model.NotificationSeverity
}

// CreateNotification creates a notification for the given recipient.
func (f *Factory) CreateNotification(t *testing.T, recipient *model.User, opts ...func(*NotificationOpts)) *model.Notification {
	t.Helper()

	o := &NotificationOpts{
		Text:     fmt.Sprintf("Notice %s", randomID()),
		Severity: model.NotificationInfo,
	}
	for _, fn := range opts {
		fn(o)
	}

	n := &model.Notification{
		UserID:   recipient.ID,
		Text:     o.Text,
		Severity: o.Severity,
	}

	if err := f.notifications.Create(ctx(), n); err != nil {
		t.Fatalf("fixtures: failed to create notification: %v", err)
	}
	return n
}
