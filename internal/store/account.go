package store

import (
	"context"
	"sort"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
)

// GetTransactionsByUserID returns the user's transactions newest-first.
// A limit <= 0 means no limit.
func (s *MemStore) GetTransactionsByUserID(_ context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := make([]domain.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			transactions = append(transactions, *tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

func (s *MemStore) CreateTransaction(_ context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactionID++
	tx.ID = s.transactionID
	s.transactions[tx.ID] = &tx

	copied := tx
	return &copied, nil
}

func (s *MemStore) CreateReward(_ context.Context, reward domain.Reward) (*domain.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rewardID++
	reward.ID = s.rewardID
	s.rewards[reward.ID] = &reward

	copied := reward
	return &copied, nil
}

func (s *MemStore) GetRewardsByUserID(_ context.Context, userID int64) (*domain.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reward := s.rewardByUserLocked(userID)
	if reward == nil {
		return nil, domain.ErrRewardNotFound
	}
	copied := *reward
	return &copied, nil
}

func (s *MemStore) AddRewardPoints(_ context.Context, userID int64, points int) (*domain.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reward := s.rewardByUserLocked(userID)
	if reward == nil {
		return nil, domain.ErrRewardNotFound
	}
	reward.CurrentPoints += points
	if points > 0 {
		reward.TotalEarnedPoints += points
	}

	copied := *reward
	return &copied, nil
}

func (s *MemStore) CreateCreditScore(_ context.Context, cs domain.CreditScore) (*domain.CreditScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creditScoreID++
	cs.ID = s.creditScoreID
	s.creditScores[cs.ID] = &cs

	copied := cs
	return &copied, nil
}

func (s *MemStore) GetCreditScore(_ context.Context, userID int64) (*domain.CreditScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cs := range s.creditScores {
		if cs.UserID == userID {
			copied := *cs
			return &copied, nil
		}
	}
	return nil, domain.ErrCreditScoreNotFound
}

func (s *MemStore) rewardByUserLocked(userID int64) *domain.Reward {
	for _, r := range s.rewards {
		if r.UserID == userID {
			return r
		}
	}
	return nil
}
