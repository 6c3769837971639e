package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/raffle-api/internal/repository/dao"
)

type stubUserDAO struct {
	user        dao.User
	role        string
	findRoleErr error
}

func (s *stubUserDAO) Insert(ctx context.Context, user dao.User) (dao.User, error) {
	return user, nil
}

func (s *stubUserDAO) FindByID(ctx context.Context, id uint) (dao.User, error) {
	return s.user, nil
}

func (s *stubUserDAO) FindByEmail(ctx context.Context, email string) (dao.User, error) {
	return s.user, nil
}

func (s *stubUserDAO) InsertRole(ctx context.Context, userID uint, role string) error {
	return nil
}

func (s *stubUserDAO) FindRole(ctx context.Context, userID uint) (string, error) {
	if s.findRoleErr != nil {
		return "", s.findRoleErr
	}
	return s.role, nil
}

func TestUserRepository_FindByID_EnrichesRole(t *testing.T) {
	repo := NewUserRepository(&stubUserDAO{
		user: dao.User{ID: 1, Email: "alice@example.com"},
		role: "admin",
	})

	user, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "admin", user.Role)
}

func TestUserRepository_FindByID_MissingRoleRowIsNotAnError(t *testing.T) {
	repo := NewUserRepository(&stubUserDAO{
		user:        dao.User{ID: 1, Email: "alice@example.com"},
		findRoleErr: dao.ErrRoleNotFound,
	})

	user, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, user.Role)
}

func TestUserRepository_FindByID_RoleLookupFailureSurfaces(t *testing.T) {
	repo := NewUserRepository(&stubUserDAO{
		user:        dao.User{ID: 1, Email: "alice@example.com"},
		findRoleErr: errors.New("connection reset"),
	})

	_, err := repo.FindByID(context.Background(), 1)
	assert.Error(t, err)
}
