package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const bookingColumns = "id, user_id, table_id, booking_date, booking_time, status, created_at, updated_at"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID, tableID int, date time.Time, timeOfDay, status string) (*Booking, error) {
	query := `
		INSERT INTO bookings (user_id, table_id, booking_date, booking_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + bookingColumns

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, userID, tableID, date, timeOfDay, status)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func buildFilter(filter ListFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.UserID > 0 {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("b.user_id = $%d", len(args)))
	}
	if filter.TableID > 0 {
		args = append(args, filter.TableID)
		conds = append(conds, fmt.Sprintf("b.table_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("b.status = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conds = append(conds, fmt.Sprintf("b.booking_date = $%d", len(args)))
	}

	clause := ""
	if len(conds) > 0 {
		clause = " WHERE " + strings.Join(conds, " AND ")
	}
	return clause, args
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Booking, error) {
	clause, args := buildFilter(filter)
	query := `SELECT ` + bookingColumns + ` FROM bookings b` + clause +
		` ORDER BY booking_date DESC, booking_time DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListDetailed(ctx context.Context, filter ListFilter) ([]BookingWithDetails, error) {
	clause, args := buildFilter(filter)
	query := `
		SELECT b.id, b.user_id, b.table_id, b.booking_date, b.booking_time, b.status,
		       b.created_at, b.updated_at,
		       u.name AS user_name, u.email AS user_email,
		       t.table_number
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN tables t ON t.id = b.table_id` + clause +
		` ORDER BY b.booking_date DESC, b.booking_time DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListUpcomingByUser(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		  AND booking_date >= CURRENT_DATE
		  AND status = ANY($2)
		ORDER BY booking_date ASC, booking_time ASC`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, userID, pq.Array(activeStatuses))
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListActiveByTableAndDate(ctx context.Context, tableID int, date time.Time) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE table_id = $1
		  AND booking_date = $2
		  AND status = ANY($3)`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, tableID, date, pq.Array(activeStatuses))
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) Update(ctx context.Context, id int, params UpdateParams) error {
	sets := []string{"updated_at = NOW()"}
	var args []interface{}

	if params.TableID != nil {
		args = append(args, *params.TableID)
		sets = append(sets, fmt.Sprintf("table_id = $%d", len(args)))
	}
	if params.BookingDate != nil {
		args = append(args, *params.BookingDate)
		sets = append(sets, fmt.Sprintf("booking_date = $%d", len(args)))
	}
	if params.BookingTime != nil {
		args = append(args, *params.BookingTime)
		sets = append(sets, fmt.Sprintf("booking_time = $%d", len(args)))
	}
	if params.Status != nil {
		args = append(args, *params.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(args) == 0 {
		return ErrNoFields
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) Count(ctx context.Context, filter ListFilter) (int, error) {
	clause, args := buildFilter(filter)
	query := `SELECT COUNT(*) FROM bookings b` + clause

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) StatsByDay(ctx context.Context, days int) ([]DayStat, error) {
	query := `
		SELECT booking_date AS day,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'reserved') AS reserved,
		       COUNT(*) FILTER (WHERE status = 'pending') AS pending
		FROM bookings
		WHERE booking_date >= CURRENT_DATE - $1::int
		GROUP BY booking_date
		ORDER BY booking_date DESC`

	var stats []DayStat
	err := r.db.SelectContext(ctx, &stats, query, days)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
