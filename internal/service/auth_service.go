package service

import (
	"context"
	"fmt"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/auth"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

type authService struct {
	users  repository.UserRepository
	hasher auth.Hasher
	tokens auth.Tokens
	log    zerolog.Logger
}

func newAuthService(users repository.UserRepository, hasher auth.Hasher, tokens auth.Tokens, log zerolog.Logger) *authService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// Login checks credentials and issues a token. Unknown users, users without
// a password and wrong passwords all fail with the same InvalidCredentials
// error after one hash comparison.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil || user.PasswordHash() == "" {
		_ = s.hasher.Compare(auth.DummyHash, password)
		s.log.Debug().Str("username", username).Msg("Login rejected: unknown user")
		return "", apperror.NewInvalidCredentials()
	}

	if err := s.hasher.Compare(user.PasswordHash(), password); err != nil {
		s.log.Debug().Str("username", username).Msg("Login rejected: password mismatch")
		return "", apperror.NewInvalidCredentials()
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("issue token: %w", err))
	}
	s.log.Info().Str("username", user.Username).Msg("User logged in")
	return token, nil
}

// Authenticate verifies a bearer token
func (s *authService) Authenticate(token string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperror.Wrap(apperror.Unauthorized, apperror.MsgUnauthorized, err)
	}
	return claims, nil
}
