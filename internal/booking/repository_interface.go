package booking

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID, tableID int, date time.Time, timeOfDay, status string) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	List(ctx context.Context, filter ListFilter) ([]Booking, error)
	ListDetailed(ctx context.Context, filter ListFilter) ([]BookingWithDetails, error)
	ListUpcomingByUser(ctx context.Context, userID int) ([]Booking, error)
	ListActiveByTableAndDate(ctx context.Context, tableID int, date time.Time) ([]Booking, error)
	Update(ctx context.Context, id int, params UpdateParams) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context, filter ListFilter) (int, error)
	StatsByDay(ctx context.Context, days int) ([]DayStat, error)
}
