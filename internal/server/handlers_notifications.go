package server

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListNotifications(c echo.Context) error {
	notifications, err := s.store.GetNotifications(c.Request().Context(), currentUserID(c))
	if err != nil {
		slog.Error("Failed to list notifications", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, notifications)
}

type createNotificationRequest struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// handleCreateNotification persists the notification first, then pushes it
// to the owner's connected clients. Push delivery is best effort: a client
// that misses it still sees the notification on its next fetch.
func (s *Server) handleCreateNotification(c echo.Context) error {
	var req createNotificationRequest
	if err := c.Bind(&req); err != nil || req.Message == "" {
		return c.JSON(400, map[string]string{"message": "Invalid notification data"})
	}

	userID := currentUserID(c)
	notification, err := s.store.CreateNotification(c.Request().Context(), userID, req.Message, req.Category)
	if err != nil {
		slog.Error("Failed to create notification", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	s.broadcaster.PushNewNotification(userID, notification)

	return c.JSON(201, notification)
}

func (s *Server) handleMarkNotificationRead(c echo.Context) error {
	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid notification id"})
	}

	ctx := c.Request().Context()
	userID := currentUserID(c)

	// Ownership check happens before the write so one user can never flip
	// another user's notification.
	owned, err := s.store.GetNotifications(ctx, userID)
	if err != nil {
		slog.Error("Failed to list notifications", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	if !containsNotification(owned, notificationID) {
		return c.JSON(404, map[string]string{"message": "Notification not found"})
	}

	notification, err := s.store.MarkNotificationRead(ctx, notificationID)
	if errors.Is(err, domain.ErrNotificationNotFound) {
		return c.JSON(404, map[string]string{"message": "Notification not found"})
	}
	if err != nil {
		slog.Error("Failed to mark notification read", "notification_id", notificationID, "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	s.broadcaster.PushUnreadCount(userID)

	return c.JSON(200, notification)
}

func containsNotification(notifications []domain.Notification, id int64) bool {
	for _, n := range notifications {
		if n.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) handleMarkAllNotificationsRead(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUserID(c)

	if err := s.store.MarkAllNotificationsRead(ctx, userID); err != nil {
		slog.Error("Failed to mark all notifications read", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	s.broadcaster.PushUnreadCount(userID)

	notifications, err := s.store.GetNotifications(ctx, userID)
	if err != nil {
		slog.Error("Failed to list notifications", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, notifications)
}
