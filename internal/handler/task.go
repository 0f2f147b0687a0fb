package handler

import (
	"net/http"

	"github.com/studiohub/api/internal/middleware"
	"github.com/studiohub/api/internal/model"
	"github.com/studiohub/api/internal/service"
)

// TaskHandler handles planner task HTTP requests
type TaskHandler struct {
	svc   *service.TaskService
	users UserLoader
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(svc *service.TaskService, users UserLoader) *TaskHandler {
	return &TaskHandler{svc: svc, users: users}
}

// CreateTaskRequest represents a task creation request. An empty user_id
// creates the task for the caller; any other value requires an admin role.
type CreateTaskRequest struct {
	UserID      string  `json:"user_id,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	Time        *string `json:"time,omitempty"`
	Category    string  `json:"category"`
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// Create handles POST /v1/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req CreateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	task, err := h.svc.CreateTask(r.Context(), actor, service.CreateTaskRequest{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Category:    model.TaskCategory(req.Category),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusCreated, task, nil)
}

// List handles GET /v1/tasks: the caller's tasks, incomplete first, then
// ascending by date and time.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	tasks, err := h.svc.ListTasks(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, tasks, nil, nil)
}

// Day handles GET /v1/tasks/day/{date}
func (h *TaskHandler) Day(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	tasks, err := h.svc.TasksOnDay(r.Context(), userID, r.PathValue("date"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteCollection(w, http.StatusOK, tasks, nil, nil)
}

// Toggle handles POST /v1/tasks/{id}/toggle
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	task, err := h.svc.ToggleComplete(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, task, nil)
}

// Update handles PATCH /v1/tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	var req UpdateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	update := service.UpdateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	}
	if req.Category != nil {
		category := model.TaskCategory(*req.Category)
		update.Category = &category
	}

	task, err := h.svc.UpdateTask(r.Context(), actor, r.PathValue("id"), update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteData(w, http.StatusOK, task, nil)
}

// Delete handles DELETE /v1/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(w, r, h.users)
	if actor == nil {
		return
	}

	if err := h.svc.DeleteTask(r.Context(), actor, r.PathValue("id")); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteNoContent(w)
}
