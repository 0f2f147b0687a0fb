package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studiohub/api/internal/middleware"
	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// ============================================================================
// Stubs
// ============================================================================

type stubBookingRepo struct {
	bookings map[string]*model.Booking
	nextID   int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*model.Booking)}
}

func (r *stubBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	r.nextID++
	booking.ID = fmt.Sprintf("booking:%d", r.nextID)
	r.bookings[booking.ID] = booking
	return nil
}

func (r *stubBookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return r.bookings[id], nil
}

func (r *stubBookingRepo) List(ctx context.Context) ([]*model.Booking, error) {
	out := make([]*model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *stubBookingRepo) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) ListUnfinished(ctx context.Context) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range r.bookings {
		if !b.Status.Terminal() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *stubBookingRepo) Update(ctx context.Context, booking *model.Booking) error {
	r.bookings[booking.ID] = booking
	return nil
}

func (r *stubBookingRepo) Delete(ctx context.Context, id string) error {
	delete(r.bookings, id)
	return nil
}

// stubUserLoader resolves every request to the same fixed actor.
type stubUserLoader struct {
	user *model.User
}

func (l *stubUserLoader) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	if l.user == nil {
		return nil, service.ErrUserNotFound
	}
	return l.user, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func testActor() *model.User {
	return &model.User{
		ID:    "user:anna",
		Name:  "Anna",
		Email: "anna@studio.test",
		Role:  model.UserRoleBlogger,
	}
}

func setupBookingHandler(t *testing.T) (*BookingHandler, *stubBookingRepo) {
	t.Helper()
	repo := newStubBookingRepo()
	svc := service.NewBookingService(service.BookingServiceConfig{
		BookingRepo: repo,
		Access:      service.NewAccessService(""),
	})
	return NewBookingHandler(svc, &stubUserLoader{user: testActor()}), repo
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUserContext(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func parseErrorResponse(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &problem
}

// ============================================================================
// Create Tests
// ============================================================================

func TestBookingCreate_ValidInput_ReturnsCreatedPlanned(t *testing.T) {
	t.Parallel()

	handler, _ := setupBookingHandler(t)

	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.Local)
	req := makeJSONRequest(http.MethodPost, "/v1/bookings", CreateBookingRequest{
		ResourceID:   "room:1",
		ResourceName: "Studio A",
		Kind:         "room",
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
	})
	req = withUserContext(req, "user:anna")
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Status != model.BookingStatusPlanned {
		t.Errorf("expected status planned, got %s", resp.Data.Status)
	}
	if resp.Data.UserID != "user:anna" {
		t.Errorf("expected booking owned by actor, got %s", resp.Data.UserID)
	}
}

func TestBookingCreate_EndBeforeStart_ReturnsUnprocessable(t *testing.T) {
	t.Parallel()

	handler, repo := setupBookingHandler(t)

	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.Local)
	req := makeJSONRequest(http.MethodPost, "/v1/bookings", CreateBookingRequest{
		ResourceID:   "room:1",
		ResourceName: "Studio A",
		Kind:         "room",
		StartTime:    start,
		EndTime:      start.Add(-time.Hour),
	})
	req = withUserContext(req, "user:anna")
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
	if len(repo.bookings) != 0 {
		t.Error("expected no booking persisted on validation failure")
	}
}

func TestBookingCreate_NoAuthContext_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	handler, _ := setupBookingHandler(t)

	req := makeJSONRequest(http.MethodPost, "/v1/bookings", CreateBookingRequest{})
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	problem := parseErrorResponse(t, rr.Body.Bytes())
	if problem.Status != http.StatusUnauthorized {
		t.Errorf("expected problem status 401, got %d", problem.Status)
	}
}

// ============================================================================
// Day Bucket Tests
// ============================================================================

func TestBookingDay_OrdersByStartTime(t *testing.T) {
	t.Parallel()

	handler, repo := setupBookingHandler(t)

	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)
	for _, hour := range []int{18, 9, 13} {
		start := day.Add(time.Duration(hour) * time.Hour)
		repo.nextID++
		id := fmt.Sprintf("booking:%d", repo.nextID)
		repo.bookings[id] = &model.Booking{
			ID:        id,
			UserID:    "user:anna",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Status:    model.BookingStatusPlanned,
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/day/2026-09-10", nil)
	req.SetPathValue("date", "2026-09-10")
	req = withUserContext(req, "user:anna")
	rr := httptest.NewRecorder()

	handler.Day(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		Data []model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(resp.Data))
	}
	for i := 1; i < len(resp.Data); i++ {
		if resp.Data[i].StartTime.Before(resp.Data[i-1].StartTime) {
			t.Errorf("bookings not in ascending start order at index %d", i)
		}
	}
}

func TestBookingDay_MalformedDate_ReturnsUnprocessable(t *testing.T) {
	t.Parallel()

	handler, _ := setupBookingHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/day/10.09.2026", nil)
	req.SetPathValue("date", "10.09.2026")
	req = withUserContext(req, "user:anna")
	rr := httptest.NewRecorder()

	handler.Day(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
}

// ============================================================================
// Month Grid Tests
// ============================================================================

func TestBookingMonth_GridHasLeadingPlaceholders(t *testing.T) {
	t.Parallel()

	handler, _ := setupBookingHandler(t)

	// September 2026 starts on a Tuesday: one leading placeholder.
	req := httptest.NewRequest(http.MethodGet, "/v1/calendar/2026/9", nil)
	req.SetPathValue("year", "2026")
	req.SetPathValue("month", "9")
	req = withUserContext(req, "user:anna")
	rr := httptest.NewRecorder()

	handler.Month(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		Data struct {
			Cells []MonthCell `json:"cells"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data.Cells) != 31 {
		t.Fatalf("expected 1 placeholder + 30 days, got %d cells", len(resp.Data.Cells))
	}
	if resp.Data.Cells[0].Day != "" {
		t.Errorf("expected leading placeholder, got day %q", resp.Data.Cells[0].Day)
	}
	if resp.Data.Cells[1].Day != "2026-09-01" {
		t.Errorf("expected first day cell 2026-09-01, got %q", resp.Data.Cells[1].Day)
	}
}

func TestBookingMonth_InvalidMonth_ReturnsUnprocessable(t *testing.T) {
	t.Parallel()

	handler, _ := setupBookingHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/calendar/2026/13", nil)
	req.SetPathValue("year", "2026")
	req.SetPathValue("month", "13")
	req = withUserContext(req, "user:anna")
	rr := httptest.NewRecorder()

	handler.Month(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
}

// ============================================================================
// Week Strip Tests
// ============================================================================

func TestBookingWeek_SevenDaysCenteredOnSelected(t *testing.T) {
	t.Parallel()

	handler, _ := setupBookingHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/planner/week/2026-09-01", nil)
	req.SetPathValue("date", "2026-09-01")
	req = withUserContext(req, "user:anna")
	rr := httptest.NewRecorder()

	handler.Week(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		Data struct {
			Selected string   `json:"selected"`
			Days     []string `json:"days"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(resp.Data.Days))
	}
	// Strip crosses the month boundary transparently.
	if resp.Data.Days[0] != "2026-08-29" {
		t.Errorf("expected first day 2026-08-29, got %s", resp.Data.Days[0])
	}
	if resp.Data.Days[3] != "2026-09-01" {
		t.Errorf("expected selected day in the middle, got %s", resp.Data.Days[3])
	}
	if resp.Data.Days[6] != "2026-09-04" {
		t.Errorf("expected last day 2026-09-04, got %s", resp.Data.Days[6])
	}
}
