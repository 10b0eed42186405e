package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tablebook/internal/api"
	"tablebook/internal/auth"
	"tablebook/internal/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Check slot availability
// @Description  Reports whether a table is free around the requested time.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        table_id query int    true "Table ID"
// @Param        date     query string true "Date (YYYY-MM-DD)"
// @Param        time     query string true "Time (HH:MM)"
// @Success      200 {object} api.AvailabilityResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/availability [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Query("table_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid table ID"})
		return
	}
	date := c.Query("date")
	timeOfDay := c.Query("time")

	ctx := c.Request.Context()
	available, err := h.service.CheckAvailability(ctx, tableID, date, timeOfDay)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidTime) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, api.AvailabilityResponse{
		TableID:   tableID,
		Date:      date,
		Time:      timeOfDay,
		Available: available,
	})
}

// @Summary      Create a booking
// @Description  Books a table for the authenticated guest. The slot must be
// @Description  at least an hour away from every other active booking on
// @Description  that table.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	booking, err := h.service.Create(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime), errors.Is(err, ErrPastDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrTableNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Table not found"})
		case errors.Is(err, ErrTableUnavailable), errors.Is(err, ErrSlotTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} booking.Booking
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	ctx := c.Request.Context()
	bookings, err := h.service.ListByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      List my upcoming bookings
// @Description  Active bookings from today onward, soonest first.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} booking.Booking
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/upcoming [get]
func (h *Handler) ListUpcoming(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	ctx := c.Request.Context()
	bookings, err := h.service.ListUpcomingByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      Get a booking
// @Description  Guests can only read their own bookings.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /bookings/{bookingID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	ctx := c.Request.Context()
	booking, err := h.service.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		return
	}

	userID, _ := auth.GetUserID(c)
	if booking.UserID != userID && !isOperator(c) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// @Summary      Cancel a booking
// @Description  Marks the booking cancelled; the slot becomes bookable again.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Cancel(ctx, id, userID, isOperator(c)); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Forbidden"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled"})
}

// @Summary      List bookings
// @Description  Operator view with guest and table details.
// @Tags         admin,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query int    false "Guest filter"
// @Param        table_id query int    false "Table filter"
// @Param        status   query string false "Status filter" Enums(reserved, cancelled, pending)
// @Param        date     query string false "Date filter (YYYY-MM-DD)"
// @Param        limit    query int    false "Limit"
// @Success      200 {array} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/bookings [get]
func (h *Handler) ListAll(c *gin.Context) {
	filter := ListFilter{
		UserID:  intQuery(c, "user_id"),
		TableID: intQuery(c, "table_id"),
		Status:  c.Query("status"),
		Limit:   intQuery(c, "limit"),
	}
	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date"})
			return
		}
		filter.Date = &day
	}

	ctx := c.Request.Context()
	bookings, err := h.service.ListDetailed(ctx, filter)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      Update a booking
// @Description  Admin-only partial update. Moving the booking re-checks the
// @Description  target slot.
// @Tags         admin,bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Param        request body booking.UpdateBookingRequest true "Fields to update"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/bookings/{bookingID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	booking, err := h.service.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime),
			errors.Is(err, ErrPastDate), errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrNoFields):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrTableNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Table not found"})
		case errors.Is(err, ErrTableUnavailable), errors.Is(err, ErrSlotTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// @Summary      Delete a booking
// @Description  Admin-only: removes the row entirely. Cancelling is the
// @Description  normal path; this is for cleanup.
// @Tags         admin,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/bookings/{bookingID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete booking"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking deleted"})
}

// @Summary      Booking stats
// @Description  Per-day totals for the recent period.
// @Tags         admin,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "Window in days (default 30)"
// @Success      200 {array} booking.DayStat
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/bookings/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := h.service.StatsByDay(ctx, intQuery(c, "days"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func isOperator(c *gin.Context) bool {
	role, ok := auth.GetUserRole(c)
	return ok && (role == user.RoleAdmin || role == user.RoleManager)
}

func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
