package booking

import (
	"fmt"
	"time"
)

const (
	StatusReserved  = "reserved"
	StatusCancelled = "cancelled"
	StatusPending   = "pending"
)

// Bookings with these statuses hold their slot on the calendar.
// Cancelled bookings do not block anything.
var activeStatuses = []string{StatusReserved, StatusPending}

func ValidStatus(s string) bool {
	return s == StatusReserved || s == StatusCancelled || s == StatusPending
}

const dateLayout = "2006-01-02"

// conflictWindowSeconds is the minimum gap between two active bookings
// on the same table. A gap of exactly one hour is allowed.
const conflictWindowSeconds = 3600

// parseTimeOfDay converts "HH:MM" or "HH:MM:SS" to seconds since midnight.
func parseTimeOfDay(s string) (int, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

type Booking struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	TableID     int       `db:"table_id" json:"table_id"`
	BookingDate time.Time `db:"booking_date" json:"booking_date"`
	BookingTime string    `db:"booking_time" json:"booking_time"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BookingWithDetails joins in the guest and table for operator views.
type BookingWithDetails struct {
	Booking
	UserName    string `db:"user_name" json:"user_name"`
	UserEmail   string `db:"user_email" json:"user_email"`
	TableNumber int    `db:"table_number" json:"table_number"`
}

type CreateBookingRequest struct {
	TableID int    `json:"table_id" binding:"required,min=1"`
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
	Time    string `json:"time" binding:"required,timeofday"`
}

type UpdateBookingRequest struct {
	TableID *int    `json:"table_id,omitempty" binding:"omitempty,min=1"`
	Date    *string `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Time    *string `json:"time,omitempty" binding:"omitempty,timeofday"`
	Status  *string `json:"status,omitempty" binding:"omitempty,oneof=reserved cancelled pending"`
}

// UpdateParams is the repository-level mutation set. Dates and times are
// already validated by the service.
type UpdateParams struct {
	TableID     *int
	BookingDate *time.Time
	BookingTime *string
	Status      *string
}

type ListFilter struct {
	UserID  int
	TableID int
	Status  string
	Date    *time.Time
	Limit   int
}

// DayStat is one row of the per-day booking report.
type DayStat struct {
	Day      time.Time `db:"day" json:"day"`
	Total    int       `db:"total" json:"total"`
	Reserved int       `db:"reserved" json:"reserved"`
	Pending  int       `db:"pending" json:"pending"`
}
