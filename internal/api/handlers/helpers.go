package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/rangecard/backend/internal/admin"
	"github.com/rangecard/backend/internal/cartridges"
	"github.com/rangecard/backend/internal/solutions"
)

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, solutions.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cartridges.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// queryInt reads a positive integer query parameter, clamped to max
func queryInt(c *gin.Context, key string, def, max int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

// audit records an admin action when a database is available
func audit(db *sqlx.DB, c *gin.Context, action string, details map[string]interface{}, success bool) {
	if db == nil {
		return
	}
	admin.LogAdminAction(db, c.GetString("admin_username"), c.ClientIP(), c.FullPath(), action, details, success)
}
