package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersListsSafeColumnsOnly(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := sqlmock.NewRows([]string{
		"id",
		"first_name",
		"last_name",
		"email",
		"phone",
		"role",
		"created_at",
		"updated_at",
	}).AddRow(uuid.NewString(), "Grace", "Hopper", "grace@example.com", nil, "admin", time.Now().UTC(), nil)
	mock.ExpectQuery("SELECT id, first_name, last_name, email, phone, role, created_at, updated_at FROM users").
		WillReturnRows(rows)

	users, total, err := store.Users(context.Background(), Query{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "grace@example.com", users[0].Email)
	assert.Equal(t, "admin", users[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserByEmailNotFound(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectQuery("SELECT \\* FROM users").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := store.UserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIDFromEmail(t *testing.T) {
	store, mock := mockStore(t)
	id := uuid.New()
	mock.ExpectQuery(`SELECT id FROM users WHERE email = \?`).
		WithArgs("grace@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	found, got, err := store.IDFromEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIDFromEmailUnknownAddress(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectQuery(`SELECT id FROM users WHERE email = \?`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	found, _, err := store.IDFromEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertUserMapsUniqueViolation(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("UNIQUE constraint failed: users.email"))

	_, err := store.InsertUser(
		context.Background(),
		"Grace",
		"Hopper",
		"grace@example.com",
		"$2a$10$hash",
		nil,
		"reviewer",
	)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserNotFound(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectExec("DELETE FROM users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeRecoveryTokenMismatch(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := store.ConsumeRecoveryToken(context.Background(), uuid.New(), "stale-token")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserByRecoveryTokenEmptyToken(t *testing.T) {
	store, mock := mockStore(t)

	_, err := store.UserByRecoveryToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
