package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/studiohub/api/internal/model"
)

type mockTaskRepo struct {
	tasks  map[string]*model.UserTask
	nextID int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.UserTask)}
}

func (m *mockTaskRepo) Create(ctx context.Context, task *model.UserTask) error {
	m.nextID++
	task.ID = fmt.Sprintf("user_task:%d", m.nextID)
	task.CreatedOn = time.Now()
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*model.UserTask, error) {
	return m.tasks[id], nil
}

func (m *mockTaskRepo) ListByUser(ctx context.Context, userID string) ([]*model.UserTask, error) {
	result := make([]*model.UserTask, 0)
	for _, task := range m.tasks {
		if task.UserID == userID {
			result = append(result, task)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *model.UserTask) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	if task, ok := m.tasks[id]; ok {
		task.IsCompleted = completed
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

type notifyCall struct {
	recipientID string
	text        string
	severity    model.NotificationSeverity
}

type mockNotifier struct {
	calls     []notifyCall
	notifyErr error
}

func (m *mockNotifier) Notify(ctx context.Context, recipientID, text string, severity model.NotificationSeverity) (*model.Notification, error) {
	m.calls = append(m.calls, notifyCall{recipientID, text, severity})
	if m.notifyErr != nil {
		return nil, m.notifyErr
	}
	return &model.Notification{UserID: recipientID, Text: text, Severity: severity}, nil
}

func setupTaskService(t *testing.T) (*TaskService, *mockTaskRepo, *mockNotifier) {
	t.Helper()

	repo := newMockTaskRepo()
	notifier := &mockNotifier{}
	svc := NewTaskService(TaskServiceConfig{
		TaskRepo: repo,
		Access:   NewAccessService(""),
		Notifier: notifier,
	})
	return svc, repo, notifier
}

func TestTaskService_CreateTask_SelfNoNotification(t *testing.T) {
	svc, _, notifier := setupTaskService(t)
	ctx := context.Background()
	actor := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}

	task, err := svc.CreateTask(ctx, actor, CreateTaskRequest{
		Title:    "Write script",
		Date:     "2026-09-10",
		Category: model.TaskCategoryPost,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.UserID != actor.ID {
		t.Errorf("expected task owned by actor, got %s", task.UserID)
	}
	if task.AssignedBy != nil {
		t.Error("self-created task must not record a delegate")
	}
	if len(notifier.calls) != 0 {
		t.Errorf("self-created task must not notify, got %d calls", len(notifier.calls))
	}
}

func TestTaskService_CreateTask_AssignmentNotifies(t *testing.T) {
	svc, _, notifier := setupTaskService(t)
	ctx := context.Background()
	admin := &model.User{ID: "user:admin", Name: "Мария", Role: model.UserRoleStudioAdmin}

	task, err := svc.CreateTask(ctx, admin, CreateTaskRequest{
		UserID:   "user:anna",
		Title:    "Снять ролик",
		Date:     "2026-09-10",
		Category: model.TaskCategoryShooting,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.AssignedBy == nil || *task.AssignedBy != "Мария" {
		t.Errorf("expected delegate name recorded, got %v", task.AssignedBy)
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifier.calls))
	}
	call := notifier.calls[0]
	if call.recipientID != "user:anna" {
		t.Errorf("expected notification to assignee, got %s", call.recipientID)
	}
	want := `Администратор Мария назначил вам задачу: "Снять ролик"`
	if call.text != want {
		t.Errorf("notification text mismatch:\n got: %s\nwant: %s", call.text, want)
	}
	if call.severity != model.NotificationAlert {
		t.Errorf("expected alert severity, got %s", call.severity)
	}
}

func TestTaskService_CreateTask_AssignmentByBlogger_Forbidden(t *testing.T) {
	svc, repo, _ := setupTaskService(t)
	ctx := context.Background()
	blogger := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}

	_, err := svc.CreateTask(ctx, blogger, CreateTaskRequest{
		UserID:   "user:boris",
		Title:    "Do my work",
		Date:     "2026-09-10",
		Category: model.TaskCategoryOther,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if len(repo.tasks) != 0 {
		t.Error("forbidden assignment must not persist a task")
	}
}

func TestTaskService_CreateTask_NotifyFailure_TaskStillPersists(t *testing.T) {
	svc, repo, notifier := setupTaskService(t)
	ctx := context.Background()
	admin := &model.User{ID: "user:admin", Name: "Мария", Role: model.UserRoleStudioAdmin}

	notifier.notifyErr = errors.New("push channel down")

	task, err := svc.CreateTask(ctx, admin, CreateTaskRequest{
		UserID:   "user:anna",
		Title:    "Снять ролик",
		Date:     "2026-09-10",
		Category: model.TaskCategoryShooting,
	})
	if err != nil {
		t.Fatalf("CreateTask must succeed despite notification failure: %v", err)
	}
	if repo.tasks[task.ID] == nil {
		t.Error("expected task persisted")
	}
	if len(notifier.calls) != 1 {
		t.Errorf("expected a single notify attempt, got %d", len(notifier.calls))
	}
}

func TestTaskService_CreateTask_InvalidDate(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := context.Background()
	actor := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}

	_, err := svc.CreateTask(ctx, actor, CreateTaskRequest{
		Title:    "Write script",
		Date:     "10.09.2026",
		Category: model.TaskCategoryPost,
	})
	if !errors.Is(err, ErrInvalidTaskDate) {
		t.Errorf("expected ErrInvalidTaskDate, got %v", err)
	}
}

func TestSortTasks_IncompleteFirstThenDateTime(t *testing.T) {
	at := func(s string) *string { return &s }

	tasks := []*model.UserTask{
		{ID: "t1", Date: "2026-09-12", IsCompleted: true},
		{ID: "t2", Date: "2026-09-10", Time: at("15:00")},
		{ID: "t3", Date: "2026-09-10", Time: at("09:00")},
		{ID: "t4", Date: "2026-09-11"},
		{ID: "t5", Date: "2026-09-09", IsCompleted: true},
		{ID: "t6", Date: "2026-09-10"}, // untimed sorts before timed on same day
	}

	SortTasks(tasks)

	wantOrder := []string{"t6", "t3", "t2", "t4", "t5", "t1"}
	for i, want := range wantOrder {
		if tasks[i].ID != want {
			got := make([]string, len(tasks))
			for j, task := range tasks {
				got[j] = task.ID
			}
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, wantOrder)
		}
	}
}

func TestTaskService_ListTasks_Sorted(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := context.Background()
	actor := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}

	// Two rapid creates for the same day both persist and come back ordered
	first, err := svc.CreateTask(ctx, actor, CreateTaskRequest{
		Title: "Evening edit", Date: "2026-09-10", Time: stringPtr("19:00"),
		Category: model.TaskCategoryPost,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	second, err := svc.CreateTask(ctx, actor, CreateTaskRequest{
		Title: "Morning shoot", Date: "2026-09-10", Time: stringPtr("08:00"),
		Category: model.TaskCategoryShooting,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks, err := svc.ListTasks(ctx, actor.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected both tasks persisted, got %d", len(tasks))
	}
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Error("expected tasks ordered by time-of-day")
	}
}

func TestTaskService_ToggleComplete(t *testing.T) {
	svc, repo, _ := setupTaskService(t)
	ctx := context.Background()
	actor := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}

	task, err := svc.CreateTask(ctx, actor, CreateTaskRequest{
		Title: "Write script", Date: "2026-09-10", Category: model.TaskCategoryPost,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	toggled, err := svc.ToggleComplete(ctx, actor, task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if !toggled.IsCompleted {
		t.Error("expected task completed after first toggle")
	}

	toggled, err = svc.ToggleComplete(ctx, actor, task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if toggled.IsCompleted {
		t.Error("expected task incomplete after second toggle")
	}
	if repo.tasks[task.ID].IsCompleted {
		t.Error("stored flag must match")
	}
}

func TestTaskService_TasksOnDay(t *testing.T) {
	svc, _, _ := setupTaskService(t)
	ctx := context.Background()
	actor := &model.User{ID: "user:anna", Name: "Anna", Role: model.UserRoleBlogger}

	mk := func(title, date string) {
		t.Helper()
		if _, err := svc.CreateTask(ctx, actor, CreateTaskRequest{
			Title: title, Date: date, Category: model.TaskCategoryOther,
		}); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	mk("A", "2026-09-10")
	mk("B", "2026-09-11")
	mk("C", "2026-09-10")

	onDay, err := svc.TasksOnDay(ctx, actor.ID, "2026-09-10")
	if err != nil {
		t.Fatalf("TasksOnDay failed: %v", err)
	}
	if len(onDay) != 2 {
		t.Errorf("expected 2 tasks on day, got %d", len(onDay))
	}

	if _, err := svc.TasksOnDay(ctx, actor.ID, "not-a-date"); !errors.Is(err, ErrInvalidTaskDate) {
		t.Errorf("expected ErrInvalidTaskDate, got %v", err)
	}
}
