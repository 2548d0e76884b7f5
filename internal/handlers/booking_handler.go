package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/receipt"
	"github.com/opendoorexp/wildex-frontend/internal/upstream"
)

// BookingHandler serves the customer's bookings, payment status and
// receipt downloads.
type BookingHandler struct {
	bookings *upstream.BookingsClient
	payments *upstream.PaymentsClient
	logger   *logrus.Logger
}

// NewBookingHandler creates a booking handler
func NewBookingHandler(bookings *upstream.BookingsClient, payments *upstream.PaymentsClient, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		payments: payments,
		logger:   logger,
	}
}

// List handles GET /api/v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	sess := requireAuth(c)
	if sess == nil {
		return
	}

	bookings, result := h.bookings.ByCustomer(c.Request.Context(), sess.Token(), sess.CurrentCustomerID())
	if !result.Success {
		c.JSON(http.StatusBadGateway, upstreamError(result.Message))
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Get handles GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	sess := requireAuth(c)
	if sess == nil {
		return
	}

	booking, result := h.bookings.Get(c.Request.Context(), sess.Token(), c.Param("id"))
	if !result.Success {
		c.JSON(http.StatusNotFound, upstreamError(result.Message))
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// Cancel handles POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	sess := requireAuth(c)
	if sess == nil {
		return
	}

	bookingID := c.Param("id")
	result := h.bookings.Cancel(c.Request.Context(), sess.Token(), bookingID)
	if !result.Success {
		c.JSON(http.StatusBadGateway, upstreamError(result.Message))
		return
	}

	h.logger.WithField("booking_id", bookingID).Info("Booking cancelled")
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// PaymentStatus handles GET /api/v1/bookings/:id/payment
func (h *BookingHandler) PaymentStatus(c *gin.Context) {
	sess := requireAuth(c)
	if sess == nil {
		return
	}

	payment, err := h.payments.ByBooking(c.Request.Context(), sess.Token(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "payment_not_found",
			Message: "No payment record for this booking",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment":   payment,
		"status":    payment.DisplayStatus(),
		"completed": payment.IsCompleted(),
	})
}

// Receipt handles GET /api/v1/bookings/:id/receipt and streams the
// payment receipt PDF.
func (h *BookingHandler) Receipt(c *gin.Context) {
	sess := requireAuth(c)
	if sess == nil {
		return
	}

	bookingID := c.Param("id")
	booking, result := h.bookings.Get(c.Request.Context(), sess.Token(), bookingID)
	if !result.Success {
		c.JSON(http.StatusNotFound, upstreamError(result.Message))
		return
	}

	payment, err := h.payments.ByBooking(c.Request.Context(), sess.Token(), bookingID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "payment_not_found",
			Message: "No payment record for this booking",
		})
		return
	}

	data := receipt.Data{
		Booking: booking,
		Payment: payment,
	}
	if sess.CustomerName != nil {
		data.CustomerName = *sess.CustomerName
	}
	if sess.CustomerPhone != nil {
		data.CustomerPhone = *sess.CustomerPhone
	}

	pdf, filename, err := receipt.Generate(data)
	if err != nil {
		if errors.Is(err, receipt.ErrPaymentNotCompleted) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "payment_not_completed",
				Message: "Receipt is available after the payment is completed",
			})
			return
		}
		h.logger.WithError(err).WithField("booking_id", bookingID).Error("Failed to generate receipt")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "receipt_failed",
			Message: "Failed to generate receipt",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
