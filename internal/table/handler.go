package table

import (
	"errors"
	"net/http"
	"strconv"

	"tablebook/internal/api"

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

// @Summary      Create a table
// @Description  Admin-only: register a new restaurant table
// @Tags         admin,tables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body table.CreateTableRequest true "Table payload"
// @Success      201 {object} table.Table
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/tables [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	table, err := h.service.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSeats), errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrDuplicateNumber):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Table number already exists"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create table"})
		}
		return
	}

	c.JSON(http.StatusCreated, table)
}

// @Summary      List tables
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Param        status    query string false "Status filter" Enums(available, unavailable)
// @Param        min_seats query int    false "Minimum seats"
// @Param        max_seats query int    false "Maximum seats"
// @Param        limit     query int    false "Limit"
// @Success      200 {array} table.Table
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /tables [get]
func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		Status:   c.Query("status"),
		MinSeats: intQuery(c, "min_seats"),
		MaxSeats: intQuery(c, "max_seats"),
		Limit:    intQuery(c, "limit"),
	}

	ctx := c.Request.Context()
	tables, err := h.service.List(ctx, filter)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch tables"})
		return
	}

	c.JSON(http.StatusOK, tables)
}

// @Summary      List available tables
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Param        min_seats query int false "Minimum seats"
// @Param        limit     query int false "Limit"
// @Success      200 {array} table.Table
// @Failure      500 {object} api.ErrorResponse
// @Router       /tables/available [get]
func (h *Handler) ListAvailable(c *gin.Context) {
	ctx := c.Request.Context()
	tables, err := h.service.ListAvailable(ctx, intQuery(c, "min_seats"), intQuery(c, "limit"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch tables"})
		return
	}

	c.JSON(http.StatusOK, tables)
}

// @Summary      Get a table
// @Description  Looks up a table by id, or by table number when ?by=number.
// @Tags         tables
// @Produce      json
// @Security     BearerAuth
// @Param        tableID path int true "Table ID (or number with ?by=number)"
// @Param        by query string false "Lookup mode" Enums(id, number)
// @Success      200 {object} table.Table
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /tables/{tableID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tableID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid table ID"})
		return
	}

	ctx := c.Request.Context()

	var table *Table
	if c.Query("by") == "number" {
		table, err = h.service.GetByNumber(ctx, id)
	} else {
		table, err = h.service.GetByID(ctx, id)
	}
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Table not found"})
		return
	}

	c.JSON(http.StatusOK, table)
}

// @Summary      Update a table
// @Description  Admin-only: partial update of number, seats or status
// @Tags         admin,tables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tableID path int true "Table ID"
// @Param        request body table.UpdateTableRequest true "Fields to update"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/tables/{tableID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tableID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid table ID"})
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Update(ctx, id, req); err != nil {
		switch {
		case errors.Is(err, ErrInvalidSeats), errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrNoFields):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrDuplicateNumber):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Table number already exists"})
		case errors.Is(err, ErrTableNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Table not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update table"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Table updated"})
}

// @Summary      Delete a table
// @Description  Admin-only: removes the table; its bookings are removed by cascade.
// @Tags         admin,tables
// @Produce      json
// @Security     BearerAuth
// @Param        tableID path int true "Table ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/tables/{tableID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tableID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid table ID"})
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTableNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Table not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete table"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Table deleted"})
}

func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
