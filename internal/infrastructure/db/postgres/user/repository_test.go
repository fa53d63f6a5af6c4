package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "chart-insight-api/internal/domain/user"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return mock
}

func userColumns() []string {
	return []string{"id", "email", "password_hash", "created_at"}
}

func TestRepository_FetchUserByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByID)).
			WithArgs(uint64(7)).
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow(uint64(7), "a@example.com", "hash", now))

		u, err := NewRepository(mock).FetchUserByID(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, domain.ID(7), u.ID)
		assert.Equal(t, "a@example.com", u.Email)
	})

	t.Run("no rows reads as nil", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByID)).
			WithArgs(uint64(7)).
			WillReturnError(pgx.ErrNoRows)

		u, err := NewRepository(mock).FetchUserByID(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestRepository_FetchUserByEmail(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(SelectUserByEmail)).
		WithArgs("a@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(uint64(1), "a@example.com", "hash", time.Now()))

	u, err := NewRepository(mock).FetchUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, domain.ID(1), u.ID)
}

func TestRepository_FetchUsers(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(SelectUsers)).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(uint64(51), "a@example.com", "hash", now).
			AddRow(uint64(52), "b@example.com", "hash", now))

	us, err := NewRepository(mock).FetchUsers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, us, 2)
	assert.Equal(t, domain.ID(51), us[0].ID)
	assert.Equal(t, domain.ID(52), us[1].ID)
}

func TestRepository_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
			WithArgs("a@example.com", "hash").
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow(uint64(1), "a@example.com", "hash", time.Now()))

		u, err := NewRepository(mock).CreateUser(ctx, domain.User{
			Email:        "a@example.com",
			PasswordHash: "hash",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ID(1), u.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
			WithArgs("a@example.com", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := NewRepository(mock).CreateUser(ctx, domain.User{
			Email:        "a@example.com",
			PasswordHash: "hash",
		})
		require.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestRepository_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(UpdateUserByID)).
			WithArgs("new@example.com", "newhash", uint64(7)).
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow(uint64(7), "new@example.com", "newhash", time.Now()))

		u, err := NewRepository(mock).UpdateUser(ctx, domain.User{
			ID:           7,
			Email:        "new@example.com",
			PasswordHash: "newhash",
		})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", u.Email)
	})

	t.Run("missing user reads as nil", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(UpdateUserByID)).
			WithArgs("new@example.com", "newhash", uint64(7)).
			WillReturnError(pgx.ErrNoRows)

		u, err := NewRepository(mock).UpdateUser(ctx, domain.User{
			ID:           7,
			Email:        "new@example.com",
			PasswordHash: "newhash",
		})
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestRepository_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted row comes back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(DeleteUserByID)).
			WithArgs(uint64(7)).
			WillReturnRows(pgxmock.NewRows(userColumns()).
				AddRow(uint64(7), "a@example.com", "hash", time.Now()))

		u, err := NewRepository(mock).DeleteUser(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, domain.ID(7), u.ID)
	})

	t.Run("missing user reads as nil", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(DeleteUserByID)).
			WithArgs(uint64(7)).
			WillReturnError(pgx.ErrNoRows)

		u, err := NewRepository(mock).DeleteUser(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestRepository_QueryFailure(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(SelectUserByID)).
		WithArgs(uint64(1)).
		WillReturnError(dbErr)

	_, err := NewRepository(mock).FetchUserByID(ctx, 1)
	require.ErrorIs(t, err, dbErr)
}
