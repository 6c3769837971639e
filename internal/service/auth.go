package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	AssignRole(ctx context.Context, userID uint, role string) error
	FindRole(ctx context.Context, userID uint) (string, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup creates the user and grants the default "user" role, the
// one-time role assignment every registration performs.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.repo.AssignRole(ctx, created.ID, domain.RoleUser); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.AssignRole -> %w", err)
	}
	created.Role = domain.RoleUser

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	// No role row means a role-less session, not a failure. Anything
	// else is a store problem and must surface.
	role, err := s.repo.FindRole(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return user, nil
		}

		return domain.User{}, fmt.Errorf("s.repo.FindRole -> %w", err)
	}
	user.Role = role

	return user, nil
}
