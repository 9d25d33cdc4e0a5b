package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prudhvinik1/boxfleet/internal/apperr"
)

func newTestUserRepo(t *testing.T) (*PostgresUserRepository, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresUserRepository(mock), mock
}

func TestUserDelete(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	id := uuid.New()
	mock.ExpectExec(stmtRe("DELETE FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), id)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDelete_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	id := uuid.New()
	mock.ExpectExec(stmtRe("DELETE FROM users")).WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "user "+id.String(), apperr.Subject(err))
}

func TestUserDelete_StoreError(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	cause := errors.New("connection refused")
	mock.ExpectExec(stmtRe("DELETE FROM users")).WillReturnError(cause)

	err := repo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, apperr.ErrStore)
	assert.ErrorIs(t, err, cause)
}

func TestUserGetByID(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	id := uuid.New()
	mock.ExpectQuery(stmtRe("FROM users WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(id, "maker@example.com", "hash", fixedNow, fixedNow))

	user, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "maker@example.com", user.Email)
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	mock.ExpectQuery(stmtRe("FROM users WHERE email = $1")).
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
