package api

import (
	"net/http" // HTTP status codes

	"booking_system/internal/service" // Service error kinds

	"github.com/gin-gonic/gin" // Gin web framework
)

// statusOf maps a service error kind to its HTTP status
func statusOf(kind service.Kind) int {
	switch kind {
	case service.KindValidation, service.KindConflict:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindTooManyAttempts:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// userError writes the `{error}` envelope of the user routes
func userError(c *gin.Context, err error) {
	c.JSON(statusOf(service.KindOf(err)), gin.H{"error": service.MessageOf(err)})
}

// paymentError writes the `{success:false,...}` envelope of the payment routes.
// A missing payment carries only the message; other failures name the action and the cause.
func paymentError(c *gin.Context, err error, action string) {
	kind := service.KindOf(err)
	if kind == service.KindNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": service.MessageOf(err)})
		return
	}
	c.JSON(statusOf(kind), gin.H{"success": false, "message": action, "error": service.MessageOf(err)})
}
