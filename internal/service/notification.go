package service

import (
	"context"

	"github.com/studiohub/api/internal/model"
)

// NotificationRepository defines the interface for notification storage
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// NotificationService is the append-only fan-out log. Entries are created
// and flagged read; nothing is ever edited or expired (unbounded growth is
// an accepted property of the log).
type NotificationService struct {
	notificationRepo NotificationRepository
	hub              *PushHub
}

// NotificationServiceConfig holds configuration for the notification service
type NotificationServiceConfig struct {
	NotificationRepo NotificationRepository
	Hub              *PushHub
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg NotificationServiceConfig) *NotificationService {
	return &NotificationService{
		notificationRepo: cfg.NotificationRepo,
		hub:              cfg.Hub,
	}
}

// Notify appends an unread entry to the recipient's log and pushes it to
// any connected sessions (best-effort, non-blocking).
func (s *NotificationService) Notify(ctx context.Context, recipientID, text string, severity model.NotificationSeverity) (*model.Notification, error) {
	if !model.ValidSeverity(severity) {
		return nil, ErrInvalidSeverity
	}

	n := &model.Notification{
		UserID:   recipientID,
		Text:     text,
		Severity: severity,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.SendToUser(recipientID, &PushEvent{
			Type: PushNotification,
			Data: n,
		})
	}

	return n, nil
}

// List returns the recipient's notifications, newest first
func (s *NotificationService) List(ctx context.Context, recipientID string) ([]*model.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, recipientID)
}

// UnreadCount returns the recipient's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.notificationRepo.CountUnread(ctx, recipientID)
}

// MarkRead flips one entry's read flag, limited to the recipient's own log
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.notificationRepo.MarkRead(ctx, id, recipientID)
}

// MarkAllRead flips every entry of the recipient
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}
