package service

import (
	"context"
	"fmt"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/auth"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

// NewUser is the input for creating a user. Password is optional.
type NewUser struct {
	Username  string
	Name      string
	AvatarURL string
	Password  string
}

type userService struct {
	users  repository.UserRepository
	hasher auth.Hasher
	log    zerolog.Logger
}

func newUserService(users repository.UserRepository, hasher auth.Hasher, log zerolog.Logger) *userService {
	return &userService{
		users:  users,
		hasher: hasher,
		log:    log.With().Str("service", "users").Logger(),
	}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFound(apperror.MsgUserNotFound)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, input NewUser) (*models.User, error) {
	user := &models.User{
		Username:  input.Username,
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
	}

	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("hash password: %w", err))
		}
		user.Password = &hash
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", created.Username).Msg("User created")
	return created, nil
}
