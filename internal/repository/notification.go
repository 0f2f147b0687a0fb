package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/studiohub/api/internal/database"
	"github.com/studiohub/api/internal/model"
)

// NotificationRepository handles notification data access.
// Notifications are append-only: entries are created and flagged read,
// never edited or removed.
type NotificationRepository struct {
	db database.Database
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create appends a notification to the recipient's log
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		CREATE notification CONTENT {
			user: type::record($user),
			text: $text,
			is_read: false,
			severity: $severity,
			date: time::now()
		}
	`

	vars := map[string]interface{}{
		"user":     n.UserID,
		"text":     n.Text,
		"severity": n.Severity,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return fmt.Errorf("failed to extract created notification: %w", err)
	}

	n.ID = created.ID
	n.IsRead = false
	n.Date = created.CreatedOn
	return nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	query := `SELECT * FROM notification WHERE user = type::record($user) ORDER BY date DESC`
	vars := map[string]interface{}{"user": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*model.Notification, 0)
	for _, data := range unwrapRecords(result) {
		notifications = append(notifications, parseNotification(data))
	}
	return notifications, nil
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `SELECT count() FROM notification WHERE user = type::record($user) AND is_read = false GROUP ALL`
	vars := map[string]interface{}{"user": userID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return extractCount(result), nil
}

// MarkRead flags a single notification as read. The update is scoped
// to the recipient, so a caller cannot flag another user's entries.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	query := `UPDATE type::record($id) SET is_read = true WHERE user = type::record($user)`
	return r.db.Execute(ctx, query, map[string]interface{}{
		"id":   id,
		"user": userID,
	})
}

// MarkAllRead flags every notification of a user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notification SET is_read = true WHERE user = type::record($user)`
	return r.db.Execute(ctx, query, map[string]interface{}{"user": userID})
}

func parseNotification(data map[string]interface{}) *model.Notification {
	n := &model.Notification{
		ID:       convertSurrealID(data["id"]),
		UserID:   convertSurrealID(data["user"]),
		Text:     getString(data, "text"),
		IsRead:   getBool(data, "is_read"),
		Severity: model.NotificationSeverity(getString(data, "severity")),
	}

	if t := getTime(data, "date"); t != nil {
		n.Date = *t
	}

	return n
}
