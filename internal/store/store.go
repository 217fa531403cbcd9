// Package store implements the in-memory data store backing the REST API
// and the push layer. State lives in maps keyed by auto-incrementing ids
// and is rebuilt from seed data on every process start; nothing persists.
package store

import (
	"sync"
	"time"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/jonboulle/clockwork"
)

// MemStore holds all application state behind a single mutex. Reads take
// the same lock as writes; the linear scans here are fine at this scale.
type MemStore struct {
	mu    sync.Mutex
	clock clockwork.Clock

	users          map[int64]*domain.User
	loans          map[int64]*domain.Loan
	paymentMethods map[int64]*domain.PaymentMethod
	payments       map[int64]*domain.Payment
	transactions   map[int64]*domain.Transaction
	rewards        map[int64]*domain.Reward
	creditScores   map[int64]*domain.CreditScore
	notifications  map[int64]*domain.Notification

	userID          int64
	loanID          int64
	paymentMethodID int64
	paymentID       int64
	transactionID   int64
	rewardID        int64
	creditScoreID   int64
	notificationID  int64
}

func New(clock clockwork.Clock) *MemStore {
	return &MemStore{
		clock:          clock,
		users:          make(map[int64]*domain.User),
		loans:          make(map[int64]*domain.Loan),
		paymentMethods: make(map[int64]*domain.PaymentMethod),
		payments:       make(map[int64]*domain.Payment),
		transactions:   make(map[int64]*domain.Transaction),
		rewards:        make(map[int64]*domain.Reward),
		creditScores:   make(map[int64]*domain.CreditScore),
		notifications:  make(map[int64]*domain.Notification),
	}
}

func (s *MemStore) now() time.Time {
	return s.clock.Now()
}
