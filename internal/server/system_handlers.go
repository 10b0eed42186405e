package server

import (
	"net/http"
	"time"

	"tablebook/internal/api"
	"tablebook/internal/booking"
	"tablebook/internal/email"
	"tablebook/internal/table"
	"tablebook/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OverviewResponse summarizes the restaurant for the operator dashboard.
type OverviewResponse struct {
	ActiveUsers     int `json:"active_users"`
	Tables          int `json:"tables"`
	TablesAvailable int `json:"tables_available"`
	Bookings        int `json:"bookings"`
	BookingsToday   int `json:"bookings_today"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Queue a test email
// @Tags         system
// @Produce      json
// @Param        email query string true "Recipient email"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /test-email [get]
func TestEmail(emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		testEmail := c.Query("email")
		if testEmail == "" {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "email parameter required"})
			return
		}

		if err := emailService.Send(c.Request.Context(), testEmail, "Test User", "Test Email from TableBook", "Email is working!"); err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, api.MessageResponse{Message: "Email queued successfully"})
	}
}

// @Summary      Operator overview
// @Description  Counts of users, tables and bookings.
// @Tags         admin,system
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} OverviewResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/overview [get]
func Overview(users user.Service, tables table.Service, bookings booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		var resp OverviewResponse
		var err error

		resp.ActiveUsers, err = users.Count(ctx, user.ListFilter{ActiveOnly: true})
		if err == nil {
			resp.Tables, err = tables.Count(ctx, "")
		}
		if err == nil {
			resp.TablesAvailable, err = tables.Count(ctx, table.StatusAvailable)
		}
		if err == nil {
			resp.Bookings, err = bookings.Count(ctx, booking.ListFilter{})
		}
		if err == nil {
			resp.BookingsToday, err = bookings.Count(ctx, booking.ListFilter{Date: &today})
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build overview"})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
