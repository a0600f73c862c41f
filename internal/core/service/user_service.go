package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// CreateUser returns the user registered under email, creating it first when
// none exists.
func (s *UserService) CreateUser(ctx context.Context, rawEmail string) (*ports.UserView, error) {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		view := toUserView(existing)
		return &view, nil
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	created, err := s.users.Create(ctx, domain.NewUser(email))
	if errors.Is(err, domain.ErrUserExists) {
		// lost a race with a concurrent create for the same email
		existing, err = s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		view := toUserView(existing)
		return &view, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID().String()).Msg("user created")
	view := toUserView(created)
	return &view, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, rawEmail string) (*ports.UserView, error) {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	view := toUserView(user)
	return &view, nil
}
