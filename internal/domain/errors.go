package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrMethodNotFound       = errors.New("payment method not found")
	ErrRewardNotFound       = errors.New("rewards not found")
	ErrCreditScoreNotFound  = errors.New("credit score not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
