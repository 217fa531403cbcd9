package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/gumallc/loanspa-ssp-v2/internal/metrics"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Same-origin enforcement is handled by the session cookie
	},
}

// handleWebSocket authenticates, applies connection limits, upgrades, and
// parks in a read pump until the client goes away. All checks happen before
// the upgrade so rejections are plain HTTP responses.
func (s *Server) handleWebSocket(c echo.Context) error {
	userID, ok := s.sessionUserID(c)
	if !ok {
		return c.JSON(401, map[string]string{"message": "Not authenticated"})
	}

	ip := c.RealIP()
	allowed, reason := s.limits.Acquire(ip)
	if !allowed {
		metrics.WebSocketConnectionsRejected.WithLabelValues(string(reason)).Inc()
		slog.Warn("WebSocket connection rejected", "user_id", userID, "ip", ip, "reason", reason)
		return c.JSON(429, map[string]string{"message": "Too many connections"})
	}
	defer s.limits.Release(ip)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	if err := s.broadcaster.Register(userID, conn); err != nil {
		slog.Error("Failed to register with broadcaster", "user_id", userID, "error", err)
		_ = conn.Close()
		return nil
	}

	// Read pump — blocks until the connection closes. Inbound payloads are
	// discarded; the push channel is one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				metrics.WebSocketIdleDisconnects.Inc()
			}
			break
		}
	}

	s.broadcaster.Unregister(userID, conn)

	return nil
}
