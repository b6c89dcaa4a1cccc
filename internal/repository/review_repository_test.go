package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecowash/ecowash-backend/internal/model"
)

func TestReviewRepo_Create_UniqueViolationIsDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'u1' for key 'reviews.user_id'"})

	err = NewReviewRepo(db).Create(context.Background(), &model.Review{UserID: "u1", Rating: 5, Comment: "Top"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestReviewRepo_DeleteByUser_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE user_id = ?")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewReviewRepo(db).DeleteByUser(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactRepo_CountUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM contact_messages WHERE is_read = FALSE")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	n, err := NewContactRepo(db).CountUnread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}
