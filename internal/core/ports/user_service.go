package ports

import (
	"context"
	"time"
)

// UserView is the read projection of a user handed to the transport layer.
type UserView struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// UserService defines use-case operations for users.
type UserService interface {
	// CreateUser is idempotent by email: an existing user is returned unchanged.
	CreateUser(ctx context.Context, email string) (*UserView, error)
	// GetUserByEmail fails with domain.ErrUserNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*UserView, error)
}
