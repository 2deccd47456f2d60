package notification

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNotificationMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func notificationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "account_id", "type", "message", "is_read", "created_at"})
}

func TestCreate_ReturnsRow(t *testing.T) {
	repo, mock, close := setupNotificationMock(t)
	defer close()

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(10, "job_accepted", "Anna Tran accepted your Plumbing job").
		WillReturnRows(notificationRows().AddRow(
			1, 10, "job_accepted", "Anna Tran accepted your Plumbing job", false, time.Now(),
		))

	n, err := repo.Create(context.Background(), 10, "job_accepted", "Anna Tran accepted your Plumbing job")
	require.NoError(t, err)
	assert.Equal(t, 10, n.AccountID)
	assert.False(t, n.IsRead)
}

func TestListByAccount_NewestFirst(t *testing.T) {
	repo, mock, close := setupNotificationMock(t)
	defer close()

	mock.ExpectQuery("SELECT (.+) FROM notifications").
		WithArgs(10, 50, 0).
		WillReturnRows(notificationRows().
			AddRow(2, 10, "new_message", "New message from Anna Tran in job chat", false, time.Now()).
			AddRow(1, 10, "job_accepted", "Anna Tran accepted your Plumbing job", true, time.Now().Add(-time.Hour)))

	notifications, err := repo.ListByAccount(context.Background(), 10, 50, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, 2, notifications[0].ID)
}

func TestMarkRead_FirstCallFlipsFlag(t *testing.T) {
	repo, mock, close := setupNotificationMock(t)
	defer close()

	mock.ExpectExec("UPDATE notifications SET is_read").
		WithArgs(1, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkRead(context.Background(), 1, 10)
	assert.NoError(t, err)
}

func TestMarkRead_RepeatIsNoOpSuccess(t *testing.T) {
	repo, mock, close := setupNotificationMock(t)
	defer close()

	mock.ExpectExec("UPDATE notifications SET is_read").
		WithArgs(1, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1, 10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.MarkRead(context.Background(), 1, 10)
	assert.NoError(t, err)
}

func TestMarkRead_UnknownID(t *testing.T) {
	repo, mock, close := setupNotificationMock(t)
	defer close()

	mock.ExpectExec("UPDATE notifications SET is_read").
		WithArgs(99, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(99, 10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.MarkRead(context.Background(), 99, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnreadCount(t *testing.T) {
	repo, mock, close := setupNotificationMock(t)
	defer close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.UnreadCount(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
