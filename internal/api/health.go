package api

import (
	"context"  // Ping deadline
	"net/http" // HTTP status codes
	"time"     // Ping timeout

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RootHandler answers the plain liveness probe
func RootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Hello from backend!")
}

// HealthHandler reports whether the database answers a ping
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
