package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecowash/ecowash-backend/internal/model"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id,first_name,last_name,email,phone,password_hash,created_at)")).
		WithArgs(sqlmock.AnyArg(), "Awa", "Diallo", "awa@example.com", "5145550000", "hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &model.User{FirstName: "Awa", LastName: "Diallo", Email: "  Awa@Example.com ", Phone: "5145550000", PasswordHash: "hash"}
	require.NoError(t, NewUserRepo(db).Create(context.Background(), u))

	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, "awa@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'awa@example.com' for key 'users.email'"})

	err = NewUserRepo(db).Create(context.Background(), &model.User{Email: "awa@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewUserRepo(db).GetByEmail(context.Background(), "Ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_GetByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "first_name", "last_name", "email", "phone", "password_hash", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id IN (?,?)")).
		WithArgs("u1", "u2").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("u1", "Awa", "Diallo", "awa@example.com", "1", "h", created))

	got, err := NewUserRepo(db).GetByIDs(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Awa", got["u1"].FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByIDs_Empty(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	got, err := NewUserRepo(db).GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
