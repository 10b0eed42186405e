package table

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("available"))
	assert.True(t, ValidStatus("unavailable"))
	assert.False(t, ValidStatus("reserved"))
	assert.False(t, ValidStatus(""))
}

func TestCreateTableRequest_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req CreateTableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, req)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "TableNumber")
		assert.Contains(t, w.Body.String(), "Seats")
	})

	t.Run("bad status enum rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := bytes.NewBufferString(`{"table_number": 7, "seats": 4, "status": "broken"}`)
		req, _ := http.NewRequest(http.MethodPost, "/", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "oneof")
	})

	t.Run("valid payload accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := bytes.NewBufferString(`{"table_number": 7, "seats": 4}`)
		req, _ := http.NewRequest(http.MethodPost, "/", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
