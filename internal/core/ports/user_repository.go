package ports

import (
	"context"

	"github.com/taskboard/task-system/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Lookups report absence as domain.ErrUserNotFound.
type UserRepository interface {
	FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// Create persists user and returns the stored form. Callers must use the
	// returned entity's id, which may differ from the input's.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
