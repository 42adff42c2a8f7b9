package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	apperrors "todo-folders.com/todo-folders/internal/errors"
	model "todo-folders.com/todo-folders/internal/models"
	repository "todo-folders.com/todo-folders/internal/repositories"
)

type UserService struct {
	repo *repository.UserRepository
	sf   singleflight.Group
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register returns the user for email, creating it with a new API token if
// needed.
func (s *UserService) Register(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}

	return s.repo.FindOrCreateByEmail(ctx, email)
}

// Authenticate resolves an API token to its user. Concurrent lookups of the
// same token share one query, which does not stop when the caller that
// started it goes away.
func (s *UserService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	shared := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(token, func() (interface{}, error) {
		return s.repo.FindByToken(shared, token)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	user := *v.(*model.User)
	return &user, nil
}

// RotateToken replaces the API token of the user registered under email.
func (s *UserService) RotateToken(ctx context.Context, email string) (*model.User, error) {
	user, err := s.Register(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RotateToken(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
