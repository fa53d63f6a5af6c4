package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	userDomain "chart-insight-api/internal/domain/user"
	"chart-insight-api/internal/infrastructure/jwt"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()

	repo := newFakeUserRepo()
	svc := NewAuthService(jwt.New("test-secret"), repo).(*AuthService)

	return svc, repo
}

func TestAuthService_HashPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	hash, err := svc.HashPassword("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw123")))
}

func TestAuthService_GenerateToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	hash, err := svc.HashPassword("pw123")
	require.NoError(t, err)
	u := &userDomain.User{ID: 7, Email: "a@example.com", PasswordHash: hash}

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.GenerateToken(u, "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("correct password", func(t *testing.T) {
		token, err := svc.GenerateToken(u, "pw123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	svc, repo := newAuthFixture(t)

	hash, err := svc.HashPassword("pw123")
	require.NoError(t, err)
	u, err := repo.CreateUser(ctx, userDomain.User{Email: "a@example.com", PasswordHash: hash})
	require.NoError(t, err)

	token, err := svc.GenerateToken(u, "pw123")
	require.NoError(t, err)

	t.Run("valid token resolves the user", func(t *testing.T) {
		got, err := svc.CurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.Email, got.Email)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.CurrentUser(ctx, "not.a.token")
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		_, err := repo.DeleteUser(ctx, u.ID)
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
