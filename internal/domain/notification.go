package domain

import (
	"context"
	"time"
)

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	Category  string    `json:"category,omitempty"`
	IsRead    bool      `json:"isRead"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationStore is the read/write source of truth for notifications.
// Push delivery is a cache-invalidation hint on top of it, never a
// replacement: clients refetch through this interface after a push.
type NotificationStore interface {
	GetNotifications(ctx context.Context, userID int64) ([]Notification, error)
	GetUnreadCount(ctx context.Context, userID int64) (int, error)
	CreateNotification(ctx context.Context, userID int64, message, category string) (*Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) (*Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
}
