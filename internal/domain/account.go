package domain

import (
	"context"
	"time"
)

type Transaction struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"userId"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
	Type   string    `json:"type"`
}

type Reward struct {
	ID                int64 `json:"id"`
	UserID            int64 `json:"userId"`
	CurrentPoints     int   `json:"currentPoints"`
	TotalEarnedPoints int   `json:"totalEarnedPoints"`
}

type CreditScore struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Score        int       `json:"score"`
	Provider     string    `json:"provider"`
	LastUpdated  time.Time `json:"lastUpdated"`
	PointsChange int       `json:"pointsChange,omitempty"`
}

type AccountStore interface {
	GetTransactionsByUserID(ctx context.Context, userID int64, limit int) ([]Transaction, error)
	GetRewardsByUserID(ctx context.Context, userID int64) (*Reward, error)
	AddRewardPoints(ctx context.Context, userID int64, points int) (*Reward, error)
	GetCreditScore(ctx context.Context, userID int64) (*CreditScore, error)
}
