package model

import "time"

// NotificationSeverity classifies a notification for display purposes
type NotificationSeverity string

const (
	NotificationInfo    NotificationSeverity = "info"
	NotificationAlert   NotificationSeverity = "alert"
	NotificationSuccess NotificationSeverity = "success"
)

// ValidSeverity reports whether s is a known severity class.
func ValidSeverity(s NotificationSeverity) bool {
	switch s {
	case NotificationInfo, NotificationAlert, NotificationSuccess:
		return true
	}
	return false
}

// Notification is one entry in a recipient's append-only notification log.
type Notification struct {
	ID       string               `json:"id"`
	UserID   string               `json:"user_id"` // Recipient
	Text     string               `json:"text"`
	IsRead   bool                 `json:"is_read"`
	Date     time.Time            `json:"date"`
	Severity NotificationSeverity `json:"severity"`
}
