package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"booking_system/internal/service" // Payment service

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListPaymentsHandler returns payments newest first.
// status, search, sort, order, page and page_size narrow the result when present.
func ListPaymentsHandler(svc *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := service.ListPaymentsQuery{
			Status: c.Query("status"),
			Search: c.Query("search"),
			Sort:   c.Query("sort"),
			Order:  c.Query("order"),
		}
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				q.Page = v // Set page if valid
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 {
				q.PageSize = v // Clamped by the service
			}
		}

		page, err := svc.List(c.Request.Context(), q)
		if err != nil {
			paymentError(c, err, "Failed to fetch payments")
			return
		}
		resp := gin.H{
			"success":  true,
			"count":    len(page.Payments),
			"payments": page.Payments,
		}
		if page.Paginated {
			resp["total"] = page.Total
			resp["page"] = page.Page
			resp["pageSize"] = page.PageSize
		}
		c.JSON(http.StatusOK, resp)
	}
}

// PaymentStatsHandler returns the aggregate payment counters
func PaymentStatsHandler(svc *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			paymentError(c, err, "Failed to fetch payment statistics")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
	}
}

// GetPaymentHandler returns one payment
func GetPaymentHandler(svc *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payment, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			paymentError(c, err, "Failed to fetch payment")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "payment": payment})
	}
}

// CreatePaymentHandler stores a new payment
func CreatePaymentHandler(svc *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PaymentInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to create payment", "error": "Invalid request"})
			return
		}
		payment, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			paymentError(c, err, "Failed to create payment")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Payment created successfully",
			"payment": payment,
		})
	}
}

// UpdatePaymentHandler merges the request fields into a payment
func UpdatePaymentHandler(svc *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PaymentInput // Absent fields stay nil
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update payment", "error": "Invalid request"})
			return
		}
		payment, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			paymentError(c, err, "Failed to update payment")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment updated successfully",
			"payment": payment,
		})
	}
}

// DeletePaymentHandler removes a payment
func DeletePaymentHandler(svc *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			paymentError(c, err, "Failed to delete payment")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment deleted successfully"})
	}
}
