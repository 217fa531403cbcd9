package store

import (
	"context"
	"sort"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
)

// GetNotifications returns the user's notifications newest-first.
func (s *MemStore) GetNotifications(_ context.Context, userID int64) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := make([]domain.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			notifications = append(notifications, *n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if notifications[i].Timestamp.Equal(notifications[j].Timestamp) {
			return notifications[i].ID > notifications[j].ID
		}
		return notifications[i].Timestamp.After(notifications[j].Timestamp)
	})
	return notifications, nil
}

func (s *MemStore) GetUnreadCount(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *MemStore) CreateNotification(_ context.Context, userID int64, message, category string) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationID++
	notification := &domain.Notification{
		ID:        s.notificationID,
		UserID:    userID,
		Message:   message,
		Category:  category,
		IsRead:    false,
		Timestamp: s.now(),
	}
	s.notifications[notification.ID] = notification

	copied := *notification
	return &copied, nil
}

func (s *MemStore) MarkNotificationRead(_ context.Context, id int64) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	notification.IsRead = true

	copied := *notification
	return &copied, nil
}

func (s *MemStore) MarkAllNotificationsRead(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}
