package model

import "time"

// TaskCategory classifies planner tasks
type TaskCategory string

const (
	TaskCategoryPost     TaskCategory = "post"
	TaskCategoryMeeting  TaskCategory = "meeting"
	TaskCategoryShooting TaskCategory = "shooting"
	TaskCategoryWorkshop TaskCategory = "workshop"
	TaskCategoryOther    TaskCategory = "other"
)

// ValidTaskCategory reports whether c is a known task category.
func ValidTaskCategory(c TaskCategory) bool {
	switch c {
	case TaskCategoryPost, TaskCategoryMeeting, TaskCategoryShooting, TaskCategoryWorkshop, TaskCategoryOther:
		return true
	}
	return false
}

// UserTask represents a personal planner entry.
//
// Date is a calendar day ("2006-01-02"); Time is an optional time of day
// ("15:04"). When an admin creates a task for another user, AssignedBy holds
// the admin's display name.
type UserTask struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Date        string       `json:"date"`
	Time        *string      `json:"time,omitempty"`
	IsCompleted bool         `json:"is_completed"`
	Category    TaskCategory `json:"category"`
	AssignedBy  *string      `json:"assigned_by,omitempty"`
	CreatedOn   time.Time    `json:"created_on"`
}
