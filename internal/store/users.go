package store

import (
	"context"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
)

func (s *MemStore) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *MemStore) CreateUser(_ context.Context, u domain.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUsernameTaken
		}
	}

	s.userID++
	user := &domain.User{
		ID:           s.userID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Email:        u.Email,
		CreatedAt:    s.now(),
	}
	s.users[user.ID] = user

	copied := *user
	return &copied, nil
}
