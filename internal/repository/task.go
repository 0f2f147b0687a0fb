package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/studiohub/api/internal/database"
	"github.com/studiohub/api/internal/model"
)

// TaskRepository handles planner task data access
type TaskRepository struct {
	db database.Database
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db database.Database) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new planner task.
// Date travels as a plain "2006-01-02" string and time as "15:04"; the
// planner sorts lexically on them, so no datetime coercion happens here.
func (r *TaskRepository) Create(ctx context.Context, task *model.UserTask) error {
	query := `
		CREATE task CONTENT {
			user: type::record($user),
			title: $title,
			description: $description,
			date: $date,
			time: $time,
			is_completed: $is_completed,
			category: $category,
			assigned_by: $assigned_by,
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"user":         task.UserID,
		"title":        task.Title,
		"description":  ptrToNone(task.Description),
		"date":         task.Date,
		"time":         ptrToNone(task.Time),
		"is_completed": task.IsCompleted,
		"category":     task.Category,
		"assigned_by":  ptrToNone(task.AssignedBy),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to extract created task: %w", err)
	}

	task.ID = created.ID
	task.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*model.UserTask, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errBadResultFormat
	}
	return parseTask(data), nil
}

// ListByUser retrieves all tasks belonging to a user
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]*model.UserTask, error) {
	query := `SELECT * FROM task WHERE user = type::record($user)`
	vars := map[string]interface{}{"user": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*model.UserTask, 0)
	for _, data := range unwrapRecords(result) {
		tasks = append(tasks, parseTask(data))
	}
	return tasks, nil
}

// Update replaces a task's editable fields
func (r *TaskRepository) Update(ctx context.Context, task *model.UserTask) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			date = $date,
			time = $time,
			category = $category
	`

	vars := map[string]interface{}{
		"id":          task.ID,
		"title":       task.Title,
		"description": ptrToNone(task.Description),
		"date":        task.Date,
		"time":        ptrToNone(task.Time),
		"category":    task.Category,
	}

	return r.db.Execute(ctx, query, vars)
}

// SetCompleted sets a task's completion flag
func (r *TaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	query := `UPDATE type::record($id) SET is_completed = $completed`
	vars := map[string]interface{}{
		"id":        id,
		"completed": completed,
	}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a task
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

func parseTask(data map[string]interface{}) *model.UserTask {
	task := &model.UserTask{
		ID:          convertSurrealID(data["id"]),
		UserID:      convertSurrealID(data["user"]),
		Title:       getString(data, "title"),
		Description: getStringPtr(data, "description"),
		Date:        getString(data, "date"),
		Time:        getStringPtr(data, "time"),
		IsCompleted: getBool(data, "is_completed"),
		Category:    model.TaskCategory(getString(data, "category")),
		AssignedBy:  getStringPtr(data, "assigned_by"),
	}

	if t := getTime(data, "created_on"); t != nil {
		task.CreatedOn = *t
	}

	return task
}
