package service

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/studiohub/api/internal/model"
)

// Snapshot is the full refetch of every entity collection: the domain-store
// contract the clients rebuild after each mutation.
type Snapshot struct {
	Users         []*model.User          `json:"users"`
	Bookings      []*model.Booking       `json:"bookings"`
	Inventory     []*model.InventoryItem `json:"inventory"`
	Tickets       []*model.RequestTicket `json:"tickets"`
	Wishlist      []*model.WishlistItem  `json:"wishlist"`
	Events        []*model.Event         `json:"events"`
	Tasks         []*model.UserTask      `json:"tasks"`
	Notifications []*model.Notification  `json:"notifications"`
}

// SnapshotService bulk-fetches the domain store in one pass. A failed load
// flips a process-wide degraded flag; the next successful load clears it.
// There is no automatic retry; the next call is the retry.
type SnapshotService struct {
	userRepo         UserRepository
	bookingRepo      BookingRepository
	inventoryRepo    InventoryRepository
	ticketRepo       TicketRepository
	wishlistRepo     WishlistRepository
	eventRepo        EventRepository
	taskRepo         TaskRepository
	notificationRepo NotificationRepository

	degraded atomic.Bool
}

// SnapshotServiceConfig holds the per-collection repositories
type SnapshotServiceConfig struct {
	UserRepo         UserRepository
	BookingRepo      BookingRepository
	InventoryRepo    InventoryRepository
	TicketRepo       TicketRepository
	WishlistRepo     WishlistRepository
	EventRepo        EventRepository
	TaskRepo         TaskRepository
	NotificationRepo NotificationRepository
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(cfg SnapshotServiceConfig) *SnapshotService {
	return &SnapshotService{
		userRepo:         cfg.UserRepo,
		bookingRepo:      cfg.BookingRepo,
		inventoryRepo:    cfg.InventoryRepo,
		ticketRepo:       cfg.TicketRepo,
		wishlistRepo:     cfg.WishlistRepo,
		eventRepo:        cfg.EventRepo,
		taskRepo:         cfg.TaskRepo,
		notificationRepo: cfg.NotificationRepo,
	}
}

// Load refetches every collection. Task and notification collections are
// scoped to the calling user; the rest are shared boards.
func (s *SnapshotService) Load(ctx context.Context, userID string) (*Snapshot, error) {
	snap := &Snapshot{}

	err := s.fetchAll(ctx, userID, snap)
	if err != nil {
		s.degraded.Store(true)
		slog.Error("snapshot load failed, entering degraded mode", "error", err)
		return nil, err
	}

	s.degraded.Store(false)
	return snap, nil
}

func (s *SnapshotService) fetchAll(ctx context.Context, userID string, snap *Snapshot) error {
	var err error
	if snap.Users, err = s.userRepo.List(ctx); err != nil {
		return err
	}
	if snap.Bookings, err = s.bookingRepo.List(ctx); err != nil {
		return err
	}
	if snap.Inventory, err = s.inventoryRepo.List(ctx); err != nil {
		return err
	}
	if snap.Tickets, err = s.ticketRepo.List(ctx); err != nil {
		return err
	}
	if snap.Wishlist, err = s.wishlistRepo.List(ctx); err != nil {
		return err
	}
	if snap.Events, err = s.eventRepo.List(ctx); err != nil {
		return err
	}
	if snap.Tasks, err = s.taskRepo.ListByUser(ctx, userID); err != nil {
		return err
	}
	SortTasks(snap.Tasks)
	if snap.Notifications, err = s.notificationRepo.ListByUser(ctx, userID); err != nil {
		return err
	}
	return nil
}

// Degraded reports whether the last bulk fetch failed
func (s *SnapshotService) Degraded() bool {
	return s.degraded.Load()
}
