package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/repositories"
	"github.com/shashiranjanraj/novamarket/pkg/auth"
)

func newAuthService(t *testing.T) (*AuthService, *repositories.UserRepository) {
	t.Helper()
	db := testDB(t)
	users := repositories.NewUserRepository(db)
	return NewAuthService(users), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	user, token, err := svc.Register("Asha", "asha@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "correct-horse", user.Password, "password must be hashed")

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)

	_, token, err = svc.Login("asha@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register("Asha", "asha@example.com", "correct-horse")
	require.NoError(t, err)

	_, _, err = svc.Register("Imposter", "asha@example.com", "other-pass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register("Asha", "asha@example.com", "correct-horse")
	require.NoError(t, err)

	_, _, err = svc.Login("asha@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
