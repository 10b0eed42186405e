package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func bookingRows(bookings ...Booking) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "table_id", "booking_date", "booking_time", "status", "created_at", "updated_at",
	})
	now := time.Now()
	for _, b := range bookings {
		rows.AddRow(b.ID, b.UserID, b.TableID, b.BookingDate, b.BookingTime, b.Status, now, now)
	}
	return rows
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(1, 7, day, "19:30", StatusReserved).
		WillReturnRows(bookingRows(Booking{
			ID: 10, UserID: 1, TableID: 7, BookingDate: day, BookingTime: "19:30", Status: StatusReserved,
		}))

	booking, err := repo.Create(context.Background(), 1, 7, day, "19:30", StatusReserved)

	require.NoError(t, err)
	assert.Equal(t, 10, booking.ID)
	assert.Equal(t, StatusReserved, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListActiveByTableAndDate(t *testing.T) {
	repo, mock := newMockRepo(t)
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE table_id = \$1\s+AND booking_date = \$2\s+AND status = ANY\(\$3\)`).
		WithArgs(7, day, pq.Array(activeStatuses)).
		WillReturnRows(bookingRows(
			Booking{ID: 1, UserID: 1, TableID: 7, BookingDate: day, BookingTime: "19:00", Status: StatusReserved},
			Booking{ID: 2, UserID: 2, TableID: 7, BookingDate: day, BookingTime: "12:00", Status: StatusPending},
		))

	bookings, err := repo.ListActiveByTableAndDate(context.Background(), 7, day)

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListFiltered(t *testing.T) {
	repo, mock := newMockRepo(t)
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM bookings b WHERE b\.user_id = \$1 AND b\.status = \$2 ORDER BY booking_date DESC, booking_time DESC LIMIT \$3`).
		WithArgs(1, StatusReserved, 5).
		WillReturnRows(bookingRows(Booking{
			ID: 10, UserID: 1, TableID: 7, BookingDate: day, BookingTime: "19:30", Status: StatusReserved,
		}))

	bookings, err := repo.List(context.Background(), ListFilter{UserID: 1, Status: StatusReserved, Limit: 5})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 10, bookings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListDetailed(t *testing.T) {
	repo, mock := newMockRepo(t)
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "table_id", "booking_date", "booking_time", "status",
		"created_at", "updated_at", "user_name", "user_email", "table_number",
	}).AddRow(10, 1, 7, day, "19:30", StatusReserved, now, now, "Guest", "guest@example.com", 7)

	mock.ExpectQuery(`JOIN users u ON u\.id = b\.user_id`).
		WillReturnRows(rows)

	bookings, err := repo.ListDetailed(context.Background(), ListFilter{})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "guest@example.com", bookings[0].UserEmail)
	assert.Equal(t, 7, bookings[0].TableNumber)
}

func TestRepositoryUpdate(t *testing.T) {
	t.Run("status only", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE bookings SET updated_at = NOW\(\), status = \$1 WHERE id = \$2`).
			WithArgs(StatusCancelled, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))

		status := StatusCancelled
		err := repo.Update(context.Background(), 10, UpdateParams{Status: &status})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reschedule", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		day := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

		mock.ExpectExec(`UPDATE bookings SET updated_at = NOW\(\), booking_date = \$1, booking_time = \$2 WHERE id = \$3`).
			WithArgs(day, "20:00", 10).
			WillReturnResult(sqlmock.NewResult(0, 1))

		timeOfDay := "20:00"
		err := repo.Update(context.Background(), 10, UpdateParams{BookingDate: &day, BookingTime: &timeOfDay})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no fields", func(t *testing.T) {
		repo, _ := newMockRepo(t)

		err := repo.Update(context.Background(), 10, UpdateParams{})

		assert.ErrorIs(t, err, ErrNoFields)
	})

	t.Run("missing booking", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE bookings SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		status := StatusCancelled
		err := repo.Update(context.Background(), 404, UpdateParams{Status: &status})

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestRepositoryDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 10)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryStatsByDay(t *testing.T) {
	repo, mock := newMockRepo(t)
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"day", "total", "reserved", "pending"}).
		AddRow(day, 12, 9, 2)

	mock.ExpectQuery(`GROUP BY booking_date`).
		WithArgs(30).
		WillReturnRows(rows)

	stats, err := repo.StatsByDay(context.Background(), 30)

	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 12, stats[0].Total)
	assert.Equal(t, 9, stats[0].Reserved)
}
