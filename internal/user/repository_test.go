package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func userRows(id int, email, role string, active bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "password_hash", "role", "is_active", "created_at", "updated_at",
	}).AddRow(id, "Guest", email, nil, "hash", role, active, now, now)
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Guest", "guest@example.com", nil, "hash", RoleClient).
		WillReturnRows(userRows(1, "guest@example.com", RoleClient, true))

	user, err := repo.Create(context.Background(), "Guest", "guest@example.com", nil, "hash", RoleClient)

	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, RoleClient, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("guest@example.com").
		WillReturnRows(userRows(1, "guest@example.com", RoleClient, true))

	user, err := repo.FindByEmail(context.Background(), "guest@example.com")

	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryEmailExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("guest@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "guest@example.com")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepositoryListFiltered(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE is_active = TRUE AND role = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs(RoleManager, 10).
		WillReturnRows(userRows(3, "boss@example.com", RoleManager, true))

	users, err := repo.List(context.Background(), ListFilter{ActiveOnly: true, Role: RoleManager, Limit: 10})

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, RoleManager, users[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdate(t *testing.T) {
	t.Run("partial fields", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE users SET updated_at = NOW\(\), name = \$1, email = \$2 WHERE id = \$3`).
			WithArgs("New Name", "new@example.com", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		name := "New Name"
		email := "new@example.com"
		err := repo.Update(context.Background(), 1, UpdateParams{Name: &name, Email: &email})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no fields", func(t *testing.T) {
		repo, _ := newMockRepo(t)

		err := repo.Update(context.Background(), 1, UpdateParams{})

		assert.ErrorIs(t, err, ErrNoFields)
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE users SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		name := "Nobody"
		err := repo.Update(context.Background(), 42, UpdateParams{Name: &name})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepositoryDeactivate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users SET is_active = FALSE, updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Deactivate(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryHardDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.HardDelete(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCount(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE is_active = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), ListFilter{ActiveOnly: true})

	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
