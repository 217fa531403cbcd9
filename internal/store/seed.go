package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gumallc/loanspa-ssp-v2/internal/crypto"
	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
)

// Seed loads the demo account used in development environments: one
// borrower with a personal loan, payment history, recent transactions,
// rewards, a credit score, and a handful of unread notifications.
func (s *MemStore) Seed(ctx context.Context) error {
	passwordHash, err := crypto.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	user, err := s.CreateUser(ctx, domain.NewUser{
		Username:     "adam.smith",
		PasswordHash: passwordHash,
		FullName:     "Adam Smith",
		Email:        "adam.smith@gmail.com",
	})
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	s.mu.Lock()
	u := s.users[user.ID]
	u.Address = "13 Grimmald Place"
	u.City = "Phoenix"
	u.State = "Arizona"
	u.ZipCode = "03151"
	u.ProfileImage = "/assets/profile.jpg"
	u.HomePhone = "111-333-444"
	u.CellPhone = "333-333-333"
	s.mu.Unlock()

	loan, err := s.CreateLoan(ctx, domain.Loan{
		UserID:            user.ID,
		LoanType:          "Personal Loan",
		LoanAmount:        80000.00,
		OutstandingAmount: 40000.00,
		InterestRate:      11.8,
		TermMonths:        60,
		PaymentsLeft:      10,
		LoanRef:           "PX3ERF9ND",
		DateFunded:        date(2024, 1, 10),
		Status:            "Current",
	})
	if err != nil {
		return fmt.Errorf("failed to seed loan: %w", err)
	}

	methods := []domain.PaymentMethod{
		{
			UserID:        user.ID,
			Type:          "Checking Account",
			BankName:      "JPMorgan Chase",
			AccountNumber: "6384918489",
			IsPrimary:     true,
		},
		{
			UserID:     user.ID,
			Type:       "Debit Card",
			BankName:   "JPMorgan Chase",
			CardNumber: "XXXX XXXX XXXX 4538",
		},
	}
	for _, m := range methods {
		if _, err := s.CreatePaymentMethod(ctx, m); err != nil {
			return fmt.Errorf("failed to seed payment method: %w", err)
		}
	}

	type seedPayment struct {
		date   time.Time
		status string
	}
	payments := []seedPayment{
		{date(2024, 1, 10), "Paid"},
		{date(2024, 2, 10), "Paid"},
		{date(2024, 4, 10), "Paid"},
		{date(2024, 5, 10), "Paid"},
		{date(2024, 6, 10), "Paid"},
		{date(2024, 7, 10), "Paid"},
		{date(2024, 9, 10), "Paid"},
		{date(2024, 10, 10), "Missed"},
		{date(2024, 11, 10), "Deferred"},
		{date(2024, 8, 10), "Deferred"},
		{date(2025, 4, 20), "Scheduled"},
		{date(2025, 5, 20), "Scheduled"},
		{date(2025, 6, 20), "Scheduled"},
	}
	for _, p := range payments {
		_, err := s.CreatePayment(ctx, domain.NewPayment{
			LoanID:      loan.ID,
			UserID:      user.ID,
			Amount:      1484.34,
			PaymentDate: p.date,
			Status:      p.status,
		})
		if err != nil {
			return fmt.Errorf("failed to seed payment: %w", err)
		}
	}

	type seedTransaction struct {
		name   string
		amount float64
		date   time.Time
		status string
		txType string
	}
	transactions := []seedTransaction{
		{"Payment ID 1", 350.00, date(2023, 4, 4), "Processing", "Payment"},
		{"Payment ID 2", 130.00, date(2023, 2, 11), "Paid", "Payment"},
		{"Payment ID 3", 100.00, date(2022, 12, 19), "In Progress", "Payment"},
		{"Payment ID 4", 410.00, date(2023, 4, 1), "Deferred", "Payment"},
		{"Payment ID 5", 275.50, date(2023, 6, 15), "Declined", "Payment"},
		{"Payment ID 6", 189.99, date(2023, 7, 22), "Rescheduled", "Payment"},
		{"Payment ID 7", 500.00, date(2023, 8, 5), "Paydown", "Payment"},
		{"Payment ID 8", 215.75, date(2023, 9, 10), "Pending Approval", "Payment"},
		{"Payment ID 9", 320.45, date(2023, 10, 18), "Failed", "Payment"},
		{"Payment ID 10", 75.00, date(2023, 11, 27), "Refunded", "Refund"},
	}
	for _, tx := range transactions {
		_, err := s.CreateTransaction(ctx, domain.Transaction{
			UserID: user.ID,
			Name:   tx.name,
			Amount: tx.amount,
			Date:   tx.date,
			Status: tx.status,
			Type:   tx.txType,
		})
		if err != nil {
			return fmt.Errorf("failed to seed transaction: %w", err)
		}
	}

	if _, err := s.CreateReward(ctx, domain.Reward{
		UserID:            user.ID,
		CurrentPoints:     630,
		TotalEarnedPoints: 1200,
	}); err != nil {
		return fmt.Errorf("failed to seed reward: %w", err)
	}

	if _, err := s.CreateCreditScore(ctx, domain.CreditScore{
		UserID:       user.ID,
		Score:        880,
		Provider:     "TransUnion",
		LastUpdated:  date(2025, 3, 11),
		PointsChange: 20,
	}); err != nil {
		return fmt.Errorf("failed to seed credit score: %w", err)
	}

	seedNotifications := []struct {
		message  string
		category string
	}{
		{"Your payment of $1,484.34 was received.", "payments"},
		{"Your next payment is scheduled for April 20.", "payments"},
		{"You earned 10 reward points for your last payment.", "rewards"},
		{"Your credit score was updated by TransUnion.", "credit"},
	}
	for _, n := range seedNotifications {
		if _, err := s.CreateNotification(ctx, user.ID, n.message, n.category); err != nil {
			return fmt.Errorf("failed to seed notification: %w", err)
		}
	}

	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
