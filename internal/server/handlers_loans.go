package server

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/labstack/echo/v4"
)

// paymentRewardPoints is credited to the user's reward balance for each
// payment made through the API.
const paymentRewardPoints = 10

func (s *Server) handleListLoans(c echo.Context) error {
	loans, err := s.store.GetLoansByUserID(c.Request().Context(), currentUserID(c))
	if err != nil {
		slog.Error("Failed to list loans", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, loans)
}

func (s *Server) handleGetLoan(c echo.Context) error {
	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid loan id"})
	}

	loan, err := s.store.GetLoan(c.Request().Context(), loanID)
	if errors.Is(err, domain.ErrLoanNotFound) {
		return c.JSON(404, map[string]string{"message": "Loan not found"})
	}
	if err != nil {
		slog.Error("Failed to get loan", "loan_id", loanID, "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	if loan.UserID != currentUserID(c) {
		return c.JSON(404, map[string]string{"message": "Loan not found"})
	}

	return c.JSON(200, loan)
}

func (s *Server) handleListPayments(c echo.Context) error {
	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid loan id"})
	}

	loan, err := s.store.GetLoan(c.Request().Context(), loanID)
	if errors.Is(err, domain.ErrLoanNotFound) {
		return c.JSON(404, map[string]string{"message": "Loan not found"})
	}
	if err != nil {
		slog.Error("Failed to get loan", "loan_id", loanID, "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	if loan.UserID != currentUserID(c) {
		return c.JSON(404, map[string]string{"message": "Loan not found"})
	}

	payments, err := s.store.GetPayments(c.Request().Context(), loanID)
	if err != nil {
		slog.Error("Failed to list payments", "loan_id", loanID, "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, payments)
}

type createPaymentRequest struct {
	LoanID      int64     `json:"loanId"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"paymentDate"`
	Status      string    `json:"status"`
}

// handleCreatePayment records a payment and applies its side effects: the
// loan balance and remaining payment count shrink, and reward points accrue.
func (s *Server) handleCreatePayment(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid payment data"})
	}
	if req.LoanID == 0 || req.Amount <= 0 {
		return c.JSON(400, map[string]string{"message": "Invalid payment data"})
	}

	ctx := c.Request().Context()
	userID := currentUserID(c)

	loan, err := s.store.GetLoan(ctx, req.LoanID)
	if errors.Is(err, domain.ErrLoanNotFound) {
		return c.JSON(404, map[string]string{"message": "Loan not found"})
	}
	if err != nil {
		slog.Error("Failed to get loan", "loan_id", req.LoanID, "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	if loan.UserID != userID {
		return c.JSON(404, map[string]string{"message": "Loan not found"})
	}

	status := req.Status
	if status == "" {
		status = "scheduled"
	}
	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment, err := s.store.CreatePayment(ctx, domain.NewPayment{
		LoanID:      req.LoanID,
		UserID:      userID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Status:      status,
	})
	if err != nil {
		slog.Error("Failed to create payment", "loan_id", req.LoanID, "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	paymentsLeft := max(0, loan.PaymentsLeft-1)
	outstanding := loan.OutstandingAmount - payment.Amount
	if _, err := s.store.UpdateLoan(ctx, loan.ID, domain.LoanUpdate{
		OutstandingAmount: &outstanding,
		PaymentsLeft:      &paymentsLeft,
	}); err != nil {
		slog.Error("Failed to update loan after payment", "loan_id", loan.ID, "error", err)
	}

	if _, err := s.store.AddRewardPoints(ctx, userID, paymentRewardPoints); err != nil && !errors.Is(err, domain.ErrRewardNotFound) {
		slog.Error("Failed to add reward points", "user_id", userID, "error", err)
	}

	return c.JSON(201, payment)
}

type updatePaymentStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdatePaymentStatus(c echo.Context) error {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid payment id"})
	}

	var req updatePaymentStatusRequest
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(400, map[string]string{"message": "Invalid request"})
	}

	payment, err := s.store.UpdatePaymentStatus(c.Request().Context(), paymentID, req.Status)
	if errors.Is(err, domain.ErrPaymentNotFound) {
		return c.JSON(404, map[string]string{"message": "Payment not found"})
	}
	if err != nil {
		slog.Error("Failed to update payment status", "payment_id", paymentID, "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	return c.JSON(200, payment)
}

func (s *Server) handleListPaymentMethods(c echo.Context) error {
	methods, err := s.store.GetPaymentMethods(c.Request().Context(), currentUserID(c))
	if err != nil {
		slog.Error("Failed to list payment methods", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, methods)
}

type setPrimaryRequest struct {
	MethodID int64 `json:"methodId"`
}

func (s *Server) handleSetPrimaryPaymentMethod(c echo.Context) error {
	var req setPrimaryRequest
	if err := c.Bind(&req); err != nil || req.MethodID == 0 {
		return c.JSON(400, map[string]string{"message": "Invalid request"})
	}

	ctx := c.Request().Context()
	userID := currentUserID(c)

	if err := s.store.SetPrimaryPaymentMethod(ctx, userID, req.MethodID); err != nil {
		if errors.Is(err, domain.ErrMethodNotFound) {
			return c.JSON(400, map[string]string{"message": "Invalid request"})
		}
		slog.Error("Failed to set primary payment method", "method_id", req.MethodID, "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}

	methods, err := s.store.GetPaymentMethods(ctx, userID)
	if err != nil {
		slog.Error("Failed to list payment methods", "error", err)
		return c.JSON(500, map[string]string{"message": "Internal error"})
	}
	return c.JSON(200, methods)
}
