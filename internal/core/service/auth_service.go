package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenGenerator
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenGenerator, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a new user and issues a token for it. A known email fails
// with domain.ErrUserExists before any token is generated.
func (s *AuthService) Register(ctx context.Context, rawEmail string) (*ports.RegisterResult, error) {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	created, err := s.users.Create(ctx, domain.NewUser(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	token, err := s.issue(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID().String()).Msg("user registered")
	return &ports.RegisterResult{Token: token, User: toUserView(created)}, nil
}

// Login issues a fresh token for a known email. An unknown email is not an
// error: the result carries ports.LoginNotFound and no token.
func (s *AuthService) Login(ctx context.Context, rawEmail string) (*ports.LoginResult, error) {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) || (err == nil && user == nil) {
		return &ports.LoginResult{Status: ports.LoginNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	view := toUserView(user)
	return &ports.LoginResult{Status: ports.LoginOK, Token: token, User: &view}, nil
}

func (s *AuthService) issue(u *domain.User) (string, error) {
	token, err := s.tokens.GenerateToken(ports.TokenPayload{
		UserID: u.ID().String(),
		Email:  u.Email().String(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID().String()).Msg("failed to issue token")
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
