package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth routes
	s.echo.POST("/api/register", s.handleRegister)
	s.echo.POST("/api/login", s.handleLogin)
	s.echo.POST("/api/logout", s.handleLogout)
	s.echo.GET("/api/user", s.handleCurrentUser, s.requireAuth)

	// Loans and payments
	s.echo.GET("/api/loans", s.handleListLoans, s.requireAuth)
	s.echo.GET("/api/loans/:id", s.handleGetLoan, s.requireAuth)
	s.echo.GET("/api/loans/:id/payments", s.handleListPayments, s.requireAuth)
	s.echo.POST("/api/payments", s.handleCreatePayment, s.requireAuth)
	s.echo.PATCH("/api/payments/:id/status", s.handleUpdatePaymentStatus, s.requireAuth)
	s.echo.GET("/api/payment-methods", s.handleListPaymentMethods, s.requireAuth)
	s.echo.POST("/api/payment-methods/set-primary", s.handleSetPrimaryPaymentMethod, s.requireAuth)

	// Account
	s.echo.GET("/api/transactions", s.handleListTransactions, s.requireAuth)
	s.echo.GET("/api/rewards", s.handleGetRewards, s.requireAuth)
	s.echo.GET("/api/credit-score", s.handleGetCreditScore, s.requireAuth)

	// Notifications
	s.echo.GET("/api/notifications", s.handleListNotifications, s.requireAuth)
	s.echo.POST("/api/notifications", s.handleCreateNotification, s.requireAuth)
	s.echo.PATCH("/api/notifications/:id/read", s.handleMarkNotificationRead, s.requireAuth)
	s.echo.POST("/api/notifications/mark-all-read", s.handleMarkAllNotificationsRead, s.requireAuth)

	// Push channel. Auth happens inside the handler, before the upgrade.
	s.echo.GET("/ws", s.handleWebSocket)
}
