package api

import (
	"net/http" // HTTP status codes

	"event_management/internal/service" // Booking and payment workflow

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact amounts
)

// BookingRequest represents a booking request
type BookingRequest struct {
	EventName    string `json:"eventName" binding:"required"`    // Free text event name
	CustomerName string `json:"customerName" binding:"required"` // Free text customer name
}

// PaymentRequest represents a payment request
type PaymentRequest struct {
	BookingID uint            `json:"bookingId" binding:"required,gt=0"` // Booking being paid
	Amount    decimal.Decimal `json:"amount"`                            // Checked positive by the service
}

// CreateBookingHandler creates a PENDING booking
func CreateBookingHandler(bookings *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BookingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		id, err := bookings.CreateBooking(c.Request.Context(), service.CreateBookingParams{
			EventName:    req.EventName,
			CustomerName: req.CustomerName,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.String(http.StatusOK, "Booking created successfully. Booking ID: %d", id)
	}
}

// GetBookingHandler returns a booking with its payment
func GetBookingHandler(bookings *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		booking, err := bookings.GetBooking(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// GetBookingStatusHandler returns {"status": ...} for a booking
func GetBookingStatusHandler(bookings *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		status, err := bookings.GetBookingStatus(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": status})
	}
}

// MakePaymentHandler pays a booking and confirms it
func MakePaymentHandler(payments *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		id, err := payments.MakePayment(c.Request.Context(), service.MakePaymentParams{
			BookingID: req.BookingID,
			Amount:    req.Amount,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.String(http.StatusOK, "Payment completed successfully. Payment ID: %d", id)
	}
}

// GetPaymentStatusHandler returns {"status": ...} for a payment
func GetPaymentStatusHandler(payments *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		status, err := payments.GetPaymentStatus(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": status})
	}
}
