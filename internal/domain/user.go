package domain

import (
	"context"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	ZipCode      string    `json:"zipCode,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	HomePhone    string    `json:"homePhone,omitempty"`
	CellPhone    string    `json:"cellPhone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser carries the fields a caller provides when creating a user.
// The store assigns ID and CreatedAt.
type NewUser struct {
	Username     string
	PasswordHash string
	FullName     string
	Email        string
}

type UserStore interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, u NewUser) (*User, error)
}
