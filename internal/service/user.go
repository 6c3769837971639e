package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/pkg/apperrors"
	"github.com/rafflehub/raffle-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
	ErrRoleExists   = repository.ErrRoleExists
	ErrInvalidRole  = apperrors.New(apperrors.KindValidation, "role must be user or admin")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	AssignRole(ctx context.Context, userID uint, role string) error
	FindRole(ctx context.Context, userID uint) (string, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) AssignRole(ctx context.Context, userID uint, role string) error {
	if !domain.IsValidRole(role) {
		return ErrInvalidRole
	}

	if err := s.repo.AssignRole(ctx, userID, role); err != nil {
		return fmt.Errorf("s.repo.AssignRole -> %w", err)
	}

	return nil
}

// IsAdmin reports whether the user holds the admin role. A missing role
// mapping means no, not an error.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	role, err := s.repo.FindRole(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("s.repo.FindRole -> %w", err)
	}

	return role == domain.RoleAdmin, nil
}
