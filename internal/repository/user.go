package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrRoleExists      = dao.ErrRoleExists
	ErrRoleNotFound    = dao.ErrRoleNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	InsertRole(ctx context.Context, userID uint, role string) error
	FindRole(ctx context.Context, userID uint) (string, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	user := r.daoToDomain(found)

	// A user with no role row is legitimate; any other lookup failure
	// must not masquerade as one.
	role, err := r.dao.FindRole(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrRoleNotFound) {
			return user, nil
		}

		return domain.User{}, fmt.Errorf("r.dao.FindRole -> %w", err)
	}
	user.Role = role

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) AssignRole(ctx context.Context, userID uint, role string) error {
	if err := r.dao.InsertRole(ctx, userID, role); err != nil {
		return fmt.Errorf("r.dao.InsertRole -> %w", err)
	}

	return nil
}

// FindRole reads the role mapping fresh on every call; roles are never
// cached beyond a request.
func (r *UserRepository) FindRole(ctx context.Context, userID uint) (string, error) {
	role, err := r.dao.FindRole(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("r.dao.FindRole -> %w", err)
	}

	return role, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
