package domain

import (
	"context"
	"time"
)

type Loan struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	LoanType          string    `json:"loanType"`
	LoanAmount        float64   `json:"loanAmount"`
	OutstandingAmount float64   `json:"outstandingAmount"`
	InterestRate      float64   `json:"interestRate"`
	TermMonths        int       `json:"termMonths"`
	PaymentsLeft      int       `json:"paymentsLeft"`
	LoanRef           string    `json:"loanId"`
	DateFunded        time.Time `json:"dateFunded"`
	Status            string    `json:"status"`
}

// LoanUpdate holds the mutable loan fields. Nil means "leave unchanged".
type LoanUpdate struct {
	OutstandingAmount *float64
	PaymentsLeft      *int
	Status            *string
}

type Payment struct {
	ID          int64     `json:"id"`
	LoanID      int64     `json:"loanId"`
	UserID      int64     `json:"userId"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"paymentDate"`
	Status      string    `json:"status"`
}

type NewPayment struct {
	LoanID      int64     `json:"loanId"`
	UserID      int64     `json:"userId"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"paymentDate"`
	Status      string    `json:"status"`
}

type PaymentMethod struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	Type          string `json:"type"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	CardNumber    string `json:"cardNumber,omitempty"`
	IsPrimary     bool   `json:"isPrimary"`
}

type LoanStore interface {
	GetLoan(ctx context.Context, id int64) (*Loan, error)
	GetLoansByUserID(ctx context.Context, userID int64) ([]Loan, error)
	UpdateLoan(ctx context.Context, id int64, update LoanUpdate) (*Loan, error)

	GetPayments(ctx context.Context, loanID int64) ([]Payment, error)
	CreatePayment(ctx context.Context, p NewPayment) (*Payment, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status string) (*Payment, error)

	GetPaymentMethods(ctx context.Context, userID int64) ([]PaymentMethod, error)
	SetPrimaryPaymentMethod(ctx context.Context, userID, methodID int64) error
}
