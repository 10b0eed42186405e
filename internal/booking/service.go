package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"tablebook/internal/logger"
	"tablebook/internal/metrics"
	"tablebook/internal/table"
	"tablebook/internal/user"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrTableUnavailable = errors.New("table is not available for booking")
	ErrSlotTaken        = errors.New("table is already booked within an hour of that time")
	ErrPastDate         = errors.New("booking date is in the past")
	ErrInvalidDate      = errors.New("invalid booking date")
	ErrInvalidTime      = errors.New("invalid booking time")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrNotOwner         = errors.New("booking belongs to another user")
	ErrNoFields         = errors.New("no fields to update")
)

// Mailer sends booking notifications. Delivery failures never fail the
// booking itself.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, email, name string, tableNumber int, date, timeOfDay string) error
	SendCancellation(ctx context.Context, email, name string, tableNumber int, date, timeOfDay string) error
}

// TableDirectory is the slice of the table service this package needs.
type TableDirectory interface {
	GetByID(ctx context.Context, id int) (*table.Table, error)
}

// UserDirectory resolves guests for notifications.
type UserDirectory interface {
	GetByID(ctx context.Context, userID int) (*user.User, error)
}

type Service interface {
	CheckAvailability(ctx context.Context, tableID int, date, timeOfDay string) (bool, error)
	Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	List(ctx context.Context, filter ListFilter) ([]Booking, error)
	ListDetailed(ctx context.Context, filter ListFilter) ([]BookingWithDetails, error)
	ListByUser(ctx context.Context, userID int) ([]Booking, error)
	ListUpcomingByUser(ctx context.Context, userID int) ([]Booking, error)
	Update(ctx context.Context, id int, req UpdateBookingRequest) (*Booking, error)
	Cancel(ctx context.Context, id, userID int, operator bool) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context, filter ListFilter) (int, error)
	StatsByDay(ctx context.Context, days int) ([]DayStat, error)
}

type service struct {
	repo   Repository
	tables TableDirectory
	users  UserDirectory
	mailer Mailer

	// One mutex per table serializes the availability check against the
	// insert or reschedule that follows it. Without this, two requests
	// for the same slot can both pass the check and both be written.
	tableLocks sync.Map
}

func NewService(repo Repository, tables TableDirectory, users UserDirectory, mailer Mailer) Service {
	return &service{repo: repo, tables: tables, users: users, mailer: mailer}
}

func (s *service) lockTable(tableID int) *sync.Mutex {
	v, _ := s.tableLocks.LoadOrStore(tableID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

// checkSlot applies the availability rules for one table on one date.
// Callers that intend to write the slot must hold the table's lock.
func (s *service) checkSlot(ctx context.Context, tableID int, date time.Time, reqSeconds, excludeID int) error {
	tbl, err := s.tables.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, table.ErrTableNotFound) {
			return ErrTableNotFound
		}
		return err
	}

	// An administratively closed table rejects every request, before any
	// time comparison happens.
	if tbl.Status != table.StatusAvailable {
		return ErrTableUnavailable
	}

	active, err := s.repo.ListActiveByTableAndDate(ctx, tableID, date)
	if err != nil {
		return err
	}

	for _, b := range active {
		if b.ID == excludeID {
			continue
		}
		seconds, err := parseTimeOfDay(b.BookingTime)
		if err != nil {
			logger.Error("skipping booking with unreadable time", "booking_id", b.ID, "time", b.BookingTime)
			continue
		}
		diff := reqSeconds - seconds
		if diff < 0 {
			diff = -diff
		}
		if diff < conflictWindowSeconds {
			return ErrSlotTaken
		}
	}

	return nil
}

func (s *service) CheckAvailability(ctx context.Context, tableID int, date, timeOfDay string) (bool, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return false, ErrInvalidDate
	}
	reqSeconds, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return false, ErrInvalidTime
	}

	err = s.checkSlot(ctx, tableID, day, reqSeconds, 0)
	switch {
	case err == nil:
		metrics.RecordAvailabilityCheck(true)
		return true, nil
	case errors.Is(err, ErrTableNotFound), errors.Is(err, ErrTableUnavailable), errors.Is(err, ErrSlotTaken):
		metrics.RecordAvailabilityCheck(false)
		return false, nil
	default:
		return false, err
	}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error) {
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	reqSeconds, err := parseTimeOfDay(req.Time)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if day.Before(today()) {
		return nil, ErrPastDate
	}

	mu := s.lockTable(req.TableID)
	defer mu.Unlock()

	if err := s.checkSlot(ctx, req.TableID, day, reqSeconds, 0); err != nil {
		return nil, err
	}

	// New bookings always enter the calendar as reserved, regardless of
	// what the storage default for the column is.
	booking, err := s.repo.Create(ctx, userID, req.TableID, day, req.Time, StatusReserved)
	if err != nil {
		return nil, err
	}

	metrics.RecordBooking(booking.Status)
	s.notify(ctx, booking, false)

	return booking, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Booking, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) ListDetailed(ctx context.Context, filter ListFilter) ([]BookingWithDetails, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListDetailed(ctx, filter)
}

func (s *service) ListByUser(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.List(ctx, ListFilter{UserID: userID})
}

func (s *service) ListUpcomingByUser(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.ListUpcomingByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, id int, req UpdateBookingRequest) (*Booking, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	params := UpdateParams{TableID: req.TableID, BookingTime: req.Time}

	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		params.Status = req.Status
	}

	day := dateOnly(existing.BookingDate)
	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if parsed.Before(today()) {
			return nil, ErrPastDate
		}
		day = parsed
		params.BookingDate = &parsed
	}

	timeOfDay := existing.BookingTime
	if req.Time != nil {
		timeOfDay = *req.Time
	}
	reqSeconds, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return nil, ErrInvalidTime
	}

	tableID := existing.TableID
	if req.TableID != nil {
		tableID = *req.TableID
	}

	// Moving a booking re-runs the same availability check a new booking
	// gets, with the booking itself excluded from the scan.
	if req.TableID != nil || req.Date != nil || req.Time != nil {
		mu := s.lockTable(tableID)
		defer mu.Unlock()

		if err := s.checkSlot(ctx, tableID, day, reqSeconds, existing.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, id, params); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Setting the status to cancelled through an edit is still a
	// cancellation, so it gets the same bookkeeping as Cancel.
	if params.Status != nil && *params.Status == StatusCancelled && existing.Status != StatusCancelled {
		metrics.RecordBookingCancellation()
		s.notify(ctx, updated, true)
	}

	return updated, nil
}

func (s *service) Cancel(ctx context.Context, id, userID int, operator bool) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrBookingNotFound
	}
	if !operator && booking.UserID != userID {
		return ErrNotOwner
	}
	if booking.Status == StatusCancelled {
		return nil
	}

	status := StatusCancelled
	if err := s.repo.Update(ctx, id, UpdateParams{Status: &status}); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()
	booking.Status = StatusCancelled
	s.notify(ctx, booking, true)

	return nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Count(ctx context.Context, filter ListFilter) (int, error) {
	return s.repo.Count(ctx, filter)
}

func (s *service) StatsByDay(ctx context.Context, days int) ([]DayStat, error) {
	if days <= 0 {
		days = 30
	}
	return s.repo.StatsByDay(ctx, days)
}

// notify emails the guest about a confirmed or cancelled booking.
// Failures are logged and swallowed.
func (s *service) notify(ctx context.Context, b *Booking, cancelled bool) {
	if s.mailer == nil {
		return
	}

	guest, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		logger.Error("booking notification skipped", "booking_id", b.ID, "error", err)
		return
	}
	tbl, err := s.tables.GetByID(ctx, b.TableID)
	if err != nil {
		logger.Error("booking notification skipped", "booking_id", b.ID, "error", err)
		return
	}

	date := b.BookingDate.Format(dateLayout)
	if cancelled {
		err = s.mailer.SendCancellation(ctx, guest.Email, guest.Name, tbl.TableNumber, date, b.BookingTime)
	} else {
		err = s.mailer.SendBookingConfirmation(ctx, guest.Email, guest.Name, tbl.TableNumber, date, b.BookingTime)
	}
	if err != nil {
		logger.Error("booking notification failed", "booking_id", b.ID, "error", err)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
