package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/studiohub/api/internal/model"
)

// assignedTaskTemplate is the fixed notification text for admin-assigned
// tasks. The wording is part of the product surface; do not rephrase.
const assignedTaskTemplate = `Администратор %s назначил вам задачу: "%s"`

// TaskRepository defines the interface for planner task storage
type TaskRepository interface {
	Create(ctx context.Context, task *model.UserTask) error
	GetByID(ctx context.Context, id string) (*model.UserTask, error)
	ListByUser(ctx context.Context, userID string) ([]*model.UserTask, error)
	Update(ctx context.Context, task *model.UserTask) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

// Notifier is the fan-out dependency of the planner
type Notifier interface {
	Notify(ctx context.Context, recipientID, text string, severity model.NotificationSeverity) (*model.Notification, error)
}

// TaskService manages the personal planner
type TaskService struct {
	taskRepo TaskRepository
	access   *AccessService
	notifier Notifier
}

// TaskServiceConfig holds configuration for the task service
type TaskServiceConfig struct {
	TaskRepo TaskRepository
	Access   *AccessService
	Notifier Notifier
}

// NewTaskService creates a new task service
func NewTaskService(cfg TaskServiceConfig) *TaskService {
	return &TaskService{
		taskRepo: cfg.TaskRepo,
		access:   cfg.Access,
		notifier: cfg.Notifier,
	}
}

// CreateTaskRequest represents a task creation request
type CreateTaskRequest struct {
	UserID      string // Assignee; empty means the actor themselves
	Title       string
	Description *string
	Date        string // "2006-01-02"
	Time        *string // "15:04", optional
	Category    model.TaskCategory
}

// CreateTask adds a planner entry. Creating a task for another user requires
// a privileged actor; the task records the actor as its delegate and the
// assignee receives one notification, written once with no retry.
func (s *TaskService) CreateTask(ctx context.Context, actor *model.User, req CreateTaskRequest) (*model.UserTask, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTaskTitleRequired
	}
	if !model.ValidTaskCategory(req.Category) {
		return nil, ErrInvalidTaskCategory
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ErrInvalidTaskDate
	}

	assignee := req.UserID
	if assignee == "" {
		assignee = actor.ID
	}

	task := &model.UserTask{
		UserID:      assignee,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Category:    req.Category,
	}

	assigned := assignee != actor.ID
	if assigned {
		if !s.access.IsPrivileged(actor) {
			return nil, ErrForbidden
		}
		task.AssignedBy = &actor.Name
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	if assigned && s.notifier != nil {
		text := fmt.Sprintf(assignedTaskTemplate, actor.Name, task.Title)
		if _, err := s.notifier.Notify(ctx, assignee, text, model.NotificationAlert); err != nil {
			// Single write attempt; the task itself already persisted
			slog.Warn("task assignment notification failed", "assignee", assignee, "error", err)
		}
	}

	return task, nil
}

// ListTasks returns the user's planner entries in display order:
// incomplete before complete, each group ascending by (date, time).
func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]*model.UserTask, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	SortTasks(tasks)
	return tasks, nil
}

// TasksOnDay returns the user's tasks for one calendar day, sorted
func (s *TaskService) TasksOnDay(ctx context.Context, userID, date string) ([]*model.UserTask, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidTaskDate
	}

	all, err := s.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	onDay := make([]*model.UserTask, 0)
	for _, t := range all {
		if t.Date == date {
			onDay = append(onDay, t)
		}
	}
	return onDay, nil
}

// SortTasks orders tasks in place: incomplete first, then ascending by date
// and time-of-day. Date is "2006-01-02" and time "15:04", so lexical
// comparison is chronological. Tasks without a time sort before timed ones
// on the same day.
func SortTasks(tasks []*model.UserTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.IsCompleted != b.IsCompleted {
			return !a.IsCompleted
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return stringValue(a.Time) < stringValue(b.Time)
	})
}

// ToggleComplete flips the task's completion flag in place
func (s *TaskService) ToggleComplete(ctx context.Context, actor *model.User, id string) (*model.UserTask, error) {
	task, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	if err := s.taskRepo.SetCompleted(ctx, id, task.IsCompleted); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskRequest represents a task mutation request
type UpdateTaskRequest struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Category    *model.TaskCategory
}

// UpdateTask mutates a task's editable fields
func (s *TaskService) UpdateTask(ctx context.Context, actor *model.User, id string, req UpdateTaskRequest) (*model.UserTask, error) {
	task, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			return nil, ErrInvalidTaskDate
		}
		task.Date = *req.Date
	}
	if req.Time != nil {
		task.Time = req.Time
	}
	if req.Category != nil {
		if !model.ValidTaskCategory(*req.Category) {
			return nil, ErrInvalidTaskCategory
		}
		task.Category = *req.Category
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task unconditionally (owner or admin)
func (s *TaskService) DeleteTask(ctx context.Context, actor *model.User, id string) error {
	if _, err := s.getOwned(ctx, actor, id); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

func (s *TaskService) getOwned(ctx context.Context, actor *model.User, id string) (*model.UserTask, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if !s.access.CanModify(actor, task.UserID) {
		return nil, ErrForbidden
	}
	return task, nil
}
