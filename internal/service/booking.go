package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/studiohub/api/internal/calendar"
	"github.com/studiohub/api/internal/model"
)

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	ListUnfinished(ctx context.Context) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
	Update(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id string) error
}

// BookingService implements the booking/calendar engine
type BookingService struct {
	bookingRepo BookingRepository
	access      *AccessService
}

// BookingServiceConfig holds configuration for the booking service
type BookingServiceConfig struct {
	BookingRepo BookingRepository
	Access      *AccessService
}

// NewBookingService creates a new booking service
func NewBookingService(cfg BookingServiceConfig) *BookingService {
	return &BookingService{
		bookingRepo: cfg.BookingRepo,
		access:      cfg.Access,
	}
}

// CreateBookingRequest represents a booking creation request
type CreateBookingRequest struct {
	ResourceID   string
	ResourceName string
	Kind         model.BookingKind
	StartTime    time.Time
	EndTime      time.Time
	ClientInfo   *model.ClientInfo
	Comment      *string
}

// CreateBooking validates and creates a booking for the actor.
// Resource overlap against other bookings is NOT checked: double-booking the
// same resource is silently allowed. Do not add conflict rejection here; it
// changes observable behavior.
func (s *BookingService) CreateBooking(ctx context.Context, actor *model.User, req CreateBookingRequest) (*model.Booking, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.ResourceName) == "" {
		return nil, ErrResourceNameRequired
	}
	if req.Kind != model.BookingKindRoom && req.Kind != model.BookingKindEquipment {
		return nil, ErrInvalidBookingKind
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	booking := &model.Booking{
		UserID:       actor.ID,
		ResourceID:   req.ResourceID,
		ResourceName: strings.TrimSpace(req.ResourceName),
		Kind:         req.Kind,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       model.BookingStatusPlanned,
		ClientInfo:   req.ClientInfo,
		Comment:      req.Comment,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// ListBookings retrieves all bookings
func (s *BookingService) ListBookings(ctx context.Context) ([]*model.Booking, error) {
	return s.bookingRepo.List(ctx)
}

// BookingsOnDay returns bookings whose start falls on the given calendar day,
// ordered ascending by start time. Bucketing is by start-date equality, not
// by instant range: a booking spanning midnight belongs only to its start
// day. That attribution rule is preserved exactly.
func (s *BookingService) BookingsOnDay(ctx context.Context, day time.Time) ([]*model.Booking, error) {
	all, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	onDay := make([]*model.Booking, 0)
	for _, b := range all {
		if calendar.SameDay(b.StartTime, day) {
			onDay = append(onDay, b)
		}
	}

	sort.SliceStable(onDay, func(i, j int) bool {
		return onDay[i].StartTime.Before(onDay[j].StartTime)
	})
	return onDay, nil
}

// UpdateBookingRequest represents a booking mutation request
type UpdateBookingRequest struct {
	ResourceID   *string
	ResourceName *string
	Kind         *model.BookingKind
	StartTime    *time.Time
	EndTime      *time.Time
	ClientInfo   *model.ClientInfo
	Comment      *string
}

// UpdateBooking mutates a booking's editable fields, gated by CanModify
func (s *BookingService) UpdateBooking(ctx context.Context, actor *model.User, id string, req UpdateBookingRequest) (*model.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.access.CanModify(actor, booking.UserID) {
		return nil, ErrForbidden
	}

	if req.ResourceID != nil {
		booking.ResourceID = *req.ResourceID
	}
	if req.ResourceName != nil {
		if strings.TrimSpace(*req.ResourceName) == "" {
			return nil, ErrResourceNameRequired
		}
		booking.ResourceName = strings.TrimSpace(*req.ResourceName)
	}
	if req.Kind != nil {
		if *req.Kind != model.BookingKindRoom && *req.Kind != model.BookingKindEquipment {
			return nil, ErrInvalidBookingKind
		}
		booking.Kind = *req.Kind
	}
	if req.StartTime != nil {
		booking.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		booking.EndTime = *req.EndTime
	}
	if !booking.StartTime.Before(booking.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.ClientInfo != nil {
		booking.ClientInfo = req.ClientInfo
	}
	if req.Comment != nil {
		booking.Comment = req.Comment
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// StartBooking transitions planned -> active
func (s *BookingService) StartBooking(ctx context.Context, actor *model.User, id string) (*model.Booking, error) {
	return s.transition(ctx, actor, id, model.BookingStatusPlanned, model.BookingStatusActive)
}

// CompleteBooking transitions active -> completed
func (s *BookingService) CompleteBooking(ctx context.Context, actor *model.User, id string) (*model.Booking, error) {
	return s.transition(ctx, actor, id, model.BookingStatusActive, model.BookingStatusCompleted)
}

func (s *BookingService) transition(ctx context.Context, actor *model.User, id string, from, to model.BookingStatus) (*model.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.access.CanModify(actor, booking.UserID) {
		return nil, ErrForbidden
	}
	if booking.Status != from {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	booking.Status = to
	return booking, nil
}

// CancelBooking sets a planned or active booking to cancelled. Cancelling a
// booking already in a terminal status is a no-op: the status is returned
// unchanged and no error is raised.
func (s *BookingService) CancelBooking(ctx context.Context, actor *model.User, id string) (*model.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.access.CanModify(actor, booking.UserID) {
		return nil, ErrForbidden
	}
	if booking.Status.Terminal() {
		return booking, nil
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, model.BookingStatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = model.BookingStatusCancelled
	return booking, nil
}

// DeleteBooking physically removes a booking via the gateway
func (s *BookingService) DeleteBooking(ctx context.Context, actor *model.User, id string) error {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if !s.access.CanModify(actor, booking.UserID) {
		return ErrForbidden
	}
	return s.bookingRepo.Delete(ctx, id)
}

// ProcessScheduledTransitions advances bookings whose window boundaries have
// passed: planned bookings whose start is reached become active, active
// bookings whose end is reached become completed. Cancelled bookings are
// never touched.
func (s *BookingService) ProcessScheduledTransitions(ctx context.Context) error {
	unfinished, err := s.bookingRepo.ListUnfinished(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, b := range unfinished {
		switch {
		case b.Status == model.BookingStatusPlanned && !now.Before(b.StartTime) && now.Before(b.EndTime):
			if err := s.bookingRepo.UpdateStatus(ctx, b.ID, model.BookingStatusActive); err != nil {
				return err
			}
		case !now.Before(b.EndTime) && !b.Status.Terminal():
			if err := s.bookingRepo.UpdateStatus(ctx, b.ID, model.BookingStatusCompleted); err != nil {
				return err
			}
		}
	}
	return nil
}
