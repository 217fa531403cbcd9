package store

import (
	"context"
	"sort"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
)

func (s *MemStore) GetLoan(_ context.Context, id int64) (*domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	copied := *loan
	return &copied, nil
}

func (s *MemStore) GetLoansByUserID(_ context.Context, userID int64) ([]domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loans := make([]domain.Loan, 0)
	for _, loan := range s.loans {
		if loan.UserID == userID {
			loans = append(loans, *loan)
		}
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

func (s *MemStore) CreateLoan(_ context.Context, loan domain.Loan) (*domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loanID++
	loan.ID = s.loanID
	s.loans[loan.ID] = &loan

	copied := loan
	return &copied, nil
}

func (s *MemStore) UpdateLoan(_ context.Context, id int64, update domain.LoanUpdate) (*domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}

	if update.OutstandingAmount != nil {
		loan.OutstandingAmount = *update.OutstandingAmount
	}
	if update.PaymentsLeft != nil {
		loan.PaymentsLeft = *update.PaymentsLeft
	}
	if update.Status != nil {
		loan.Status = *update.Status
	}

	copied := *loan
	return &copied, nil
}

func (s *MemStore) GetPayments(_ context.Context, loanID int64) ([]domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments := make([]domain.Payment, 0)
	for _, p := range s.payments {
		if p.LoanID == loanID {
			payments = append(payments, *p)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaymentDate.Before(payments[j].PaymentDate)
	})
	return payments, nil
}

func (s *MemStore) CreatePayment(_ context.Context, np domain.NewPayment) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paymentID++
	payment := &domain.Payment{
		ID:          s.paymentID,
		LoanID:      np.LoanID,
		UserID:      np.UserID,
		Amount:      np.Amount,
		PaymentDate: np.PaymentDate,
		Status:      np.Status,
	}
	s.payments[payment.ID] = payment

	copied := *payment
	return &copied, nil
}

func (s *MemStore) UpdatePaymentStatus(_ context.Context, id int64, status string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	payment.Status = status

	copied := *payment
	return &copied, nil
}

func (s *MemStore) GetPaymentMethods(_ context.Context, userID int64) ([]domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods := make([]domain.PaymentMethod, 0)
	for _, m := range s.paymentMethods {
		if m.UserID == userID {
			methods = append(methods, *m)
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].ID < methods[j].ID })
	return methods, nil
}

func (s *MemStore) CreatePaymentMethod(_ context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paymentMethodID++
	method.ID = s.paymentMethodID
	s.paymentMethods[method.ID] = &method

	copied := method
	return &copied, nil
}

// SetPrimaryPaymentMethod marks one method primary and clears the flag on
// the user's other methods.
func (s *MemStore) SetPrimaryPaymentMethod(_ context.Context, userID, methodID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.paymentMethods[methodID]
	if !ok || target.UserID != userID {
		return domain.ErrMethodNotFound
	}

	for _, m := range s.paymentMethods {
		if m.UserID == userID {
			m.IsPrimary = m.ID == methodID
		}
	}
	return nil
}
