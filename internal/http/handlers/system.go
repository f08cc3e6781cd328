package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// GET /api/db-check — verifies the database connection end to end.
func (h *Handler) DBCheck(c *gin.Context) {
	var count int64
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT COUNT(*) FROM users WHERE deleted_at IS NULL").Scan(&count)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "database unreachable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"users":  count,
	})
}
