package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"booking_system/internal/service" // User service

	"github.com/gin-gonic/gin" // Gin web framework
)

// LoginRequest carries login credentials
type LoginRequest struct {
	Gmail    string `json:"gmail"`    // Login identifier
	Password string `json:"password"` // Plain password, compared against the stored hash
}

// ListUsersHandler returns every user.
// search, gender, min_age, max_age, sort and order narrow or order the result when present.
func ListUsersHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := service.ListUsersQuery{
			Search: c.Query("search"), // Matches name, gmail, address or phone
			Gender: c.Query("gender"), // Exact gender
			Sort:   c.Query("sort"),
			Order:  c.Query("order"),
		}
		if v, err := strconv.Atoi(c.Query("min_age")); err == nil && v > 0 {
			q.MinAge = v
		}
		if v, err := strconv.Atoi(c.Query("max_age")); err == nil && v > 0 {
			q.MaxAge = v
		}
		users, err := svc.List(c.Request.Context(), q)
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// RegisterHandler creates a user
func RegisterHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
	}
}

// GetUserHandler returns one user as a bare object
func GetUserHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUserHandler merges the request fields into a user and returns it as a bare object
func UpdateUserHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UserUpdateInput // Absent fields stay nil
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler removes a user
func DeleteUserHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// LoginHandler authenticates a user and returns a session token
func LoginHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Missing fields fail as bad credentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		res, err := svc.Login(c.Request.Context(), req.Gmail, req.Password)
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   res.Token,
			"user":    res.User,
		})
	}
}

// MeHandler returns the user of the current session; requires middleware.JWTAuth
func MeHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.Me(c.Request.Context(), c.GetString("userID"))
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
