package server

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListTransactions(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(400, map[string]string{"message": "Invalid limit"})
		}
		limit = parsed
	}

	transactions, err := s.store.GetTransactionsByUserID(c.Request().Context(), currentUserID(c), limit)
	if err != nil {
		slog.Error("Failed to list transactions", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, transactions)
}

func (s *Server) handleGetRewards(c echo.Context) error {
	reward, err := s.store.GetRewardsByUserID(c.Request().Context(), currentUserID(c))
	if errors.Is(err, domain.ErrRewardNotFound) {
		return c.JSON(404, map[string]string{"message": "Rewards not found"})
	}
	if err != nil {
		slog.Error("Failed to get rewards", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, reward)
}

func (s *Server) handleGetCreditScore(c echo.Context) error {
	score, err := s.store.GetCreditScore(c.Request().Context(), currentUserID(c))
	if errors.Is(err, domain.ErrCreditScoreNotFound) {
		return c.JSON(404, map[string]string{"message": "Credit score not found"})
	}
	if err != nil {
		slog.Error("Failed to get credit score", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, score)
}
