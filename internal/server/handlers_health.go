package server

import (
	"time"

	"github.com/gumallc/loanspa-ssp-v2/internal/version"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

// handleReadiness verifies the push layer is responsive. Users() round-trips
// through the broadcaster's event loop, so a wedged loop fails the check.
func (s *Server) handleReadiness(c echo.Context) error {
	pinger, ok := s.broadcaster.(interface{ Users() []int64 })
	if ok && pinger.Users() == nil {
		// nil means the round trip timed out or the broadcaster is stopped.
		return c.JSON(503, map[string]any{
			"status":       "unhealthy",
			"failed_check": "broadcaster",
			"error":        "broadcaster not responding",
		})
	}

	return c.JSON(200, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}
