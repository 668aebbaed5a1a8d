package api

import (
	"booking_system/internal/middleware" // Session token check
	"booking_system/internal/service"    // Services behind the handlers

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Deps holds what the route handlers need
type Deps struct {
	DB        *gorm.DB
	Users     *service.UserService
	Payments  *service.PaymentService
	JWTSecret string
}

// RegisterRoutes mounts the user, payment and probe routes
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", RootHandler)
	r.GET("/health", HealthHandler(d.DB))

	// User routes
	users := r.Group("/api/users")
	users.GET("", ListUsersHandler(d.Users))                              // List users endpoint
	users.POST("", RegisterHandler(d.Users))                              // Registration endpoint
	users.POST("/login", LoginHandler(d.Users))                           // Login endpoint
	users.GET("/me", middleware.JWTAuth(d.JWTSecret), MeHandler(d.Users)) // Current session user
	users.GET("/:id", GetUserHandler(d.Users))                            // Get user endpoint
	users.PUT("/:id", UpdateUserHandler(d.Users))                         // Update user endpoint
	users.DELETE("/:id", DeleteUserHandler(d.Users))                      // Delete user endpoint

	// Payment routes; stats is registered ahead of :id
	payments := r.Group("/api/payments")
	payments.GET("", ListPaymentsHandler(d.Payments))         // List payments endpoint
	payments.GET("/stats", PaymentStatsHandler(d.Payments))   // Statistics endpoint
	payments.GET("/:id", GetPaymentHandler(d.Payments))       // Get payment endpoint
	payments.POST("", CreatePaymentHandler(d.Payments))       // Create payment endpoint
	payments.PUT("/:id", UpdatePaymentHandler(d.Payments))    // Update payment endpoint
	payments.DELETE("/:id", DeletePaymentHandler(d.Payments)) // Delete payment endpoint
}
