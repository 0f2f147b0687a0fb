package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/studiohub/api/internal/calendar"
	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	svc   *service.BookingService
	users UserLoader
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(svc *service.BookingService, users UserLoader) *BookingHandler {
	return &BookingHandler{svc: svc, users: users}
}

// CreateBookingRequest represents a booking creation request
type CreateBookingRequest struct {
	ResourceID   string            `json:"resource_id"`
	ResourceName string            `json:"resource_name"`
	Kind         string            `json:"kind"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	ClientInfo   *model.ClientInfo `json:"client_info,omitempty"`
	Comment      *string           `json:"comment,omitempty"`
}

// UpdateBookingRequest represents a partial booking update
type UpdateBookingRequest struct {
	ResourceID   *string           `json:"resource_id,omitempty"`
	ResourceName *string           `json:"resource_name,omitempty"`
	Kind         *string           `json:"kind,omitempty"`
	StartTime    *time.Time        `json:"start_time,omitempty"`
	EndTime      *time.Time        `json:"end_time,omitempty"`
	ClientInfo   *model.ClientInfo `json:"client_info,omitempty"`
	Comment      *string           `json:"comment,omitempty"`
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req CreateBookingRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), actor, service.CreateBookingRequest{
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		Kind:         model.BookingKind(req.Kind),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		ClientInfo:   req.ClientInfo,
		Comment:      req.Comment,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, booking, map[string]string{
		"self": "/v1/bookings/" + booking.ID,
	})
}

// List handles GET /v1/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListBookings(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, bookings, nil, nil)
}

// GetByID handles GET /v1/bookings/{id}
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	booking, err := h.svc.GetBooking(r.Context(), r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, booking, nil)
}

// Update handles PATCH /v1/bookings/{id}
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req UpdateBookingRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	update := service.UpdateBookingRequest{
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		ClientInfo:   req.ClientInfo,
		Comment:      req.Comment,
	}
	if req.Kind != nil {
		kind := model.BookingKind(*req.Kind)
		update.Kind = &kind
	}

	booking, err := h.svc.UpdateBooking(r.Context(), actor, r.PathValue("id"), update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, booking, nil)
}

// Delete handles DELETE /v1/bookings/{id}
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	if err := h.svc.DeleteBooking(r.Context(), actor, r.PathValue("id")); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}

// Start handles POST /v1/bookings/{id}/start
func (h *BookingHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.StartBooking)
}

// Complete handles POST /v1/bookings/{id}/complete
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CompleteBooking)
}

// Cancel handles POST /v1/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CancelBooking)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actor *model.User, id string) (*model.Booking, error)) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	booking, err := op(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, booking, nil)
}

// Day handles GET /v1/bookings/day/{date}.
// Bookings are attributed to the calendar day they start on.
func (h *BookingHandler) Day(w http.ResponseWriter, r *http.Request) {
	day, err := calendar.ParseDay(r.PathValue("date"))
	if err != nil {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "date", Message: "date must be formatted YYYY-MM-DD"},
		}))
		return
	}

	bookings, err := h.svc.BookingsOnDay(r.Context(), day)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, bookings, nil, nil)
}

// MonthCell is one slot in the month grid response. Day is empty for
// leading placeholder cells.
type MonthCell struct {
	Day      string           `json:"day,omitempty"`
	Bookings []*model.Booking `json:"bookings,omitempty"`
}

// Month handles GET /v1/calendar/{year}/{month}: the Monday-start month grid
// with each day's bookings attached.
func (h *BookingHandler) Month(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "year", Message: "year must be an integer"},
		}))
		return
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil || month < 1 || month > 12 {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "month", Message: "month must be an integer between 1 and 12"},
		}))
		return
	}

	bookings, err := h.svc.ListBookings(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	grid := calendar.MonthGrid(year, time.Month(month))
	cells := make([]MonthCell, 0, len(grid))
	for _, cell := range grid {
		if cell.Empty() {
			cells = append(cells, MonthCell{})
			continue
		}
		mc := MonthCell{Day: calendar.FormatDay(*cell.Day)}
		for _, b := range bookings {
			if calendar.SameDay(b.StartTime, *cell.Day) {
				mc.Bookings = append(mc.Bookings, b)
			}
		}
		cells = append(cells, mc)
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"year":  year,
		"month": month,
		"cells": cells,
	}, nil)
}

// Week handles GET /v1/planner/week/{date}: seven consecutive days centered
// on the selected date.
func (h *BookingHandler) Week(w http.ResponseWriter, r *http.Request) {
	selected, err := calendar.ParseDay(r.PathValue("date"))
	if err != nil {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "date", Message: "date must be formatted YYYY-MM-DD"},
		}))
		return
	}

	strip := calendar.WeekStrip(selected)
	days := make([]string, 0, len(strip))
	for _, d := range strip {
		days = append(days, calendar.FormatDay(d))
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"selected": calendar.FormatDay(selected),
		"days":     days,
	}, nil)
}
