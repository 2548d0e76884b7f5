package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/checkout"
	"github.com/opendoorexp/wildex-frontend/internal/middleware"
)

// CheckoutHandler drives the confirm-and-pay sequence
type CheckoutHandler struct {
	checkout *checkout.Orchestrator
	logger   *logrus.Logger
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(orchestrator *checkout.Orchestrator, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: orchestrator, logger: logger}
}

// ConfirmRequest submits the basket as a booking
type ConfirmRequest struct {
	TravelDate string `json:"travel_date"`
}

// Confirm handles POST /api/v1/checkout/confirm
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	sess := middleware.CurrentSession(c)
	outcome := h.checkout.Confirm(c.Request.Context(), sess, req.TravelDate)
	c.JSON(http.StatusOK, outcome)
}

// PaymentSuccessRequest carries the widget's success callback
type PaymentSuccessRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// PaymentSuccess handles POST /api/v1/checkout/payment/success
func (h *CheckoutHandler) PaymentSuccess(c *gin.Context) {
	var req PaymentSuccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	sess := middleware.CurrentSession(c)
	outcome := h.checkout.HandlePaymentSuccess(c.Request.Context(), sess, req.OrderID, req.PaymentID, req.Signature)
	c.JSON(http.StatusOK, outcome)
}

// PaymentDismissed handles POST /api/v1/checkout/payment/dismissed
func (h *CheckoutHandler) PaymentDismissed(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	outcome := h.checkout.HandlePaymentDismissal(sess)
	c.JSON(http.StatusOK, outcome)
}

// Reset handles POST /api/v1/checkout/reset
func (h *CheckoutHandler) Reset(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	h.checkout.Reset(sess.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Checkout reset"})
}

// State handles GET /api/v1/checkout/state
func (h *CheckoutHandler) State(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	resp := gin.H{"phase": h.checkout.Phase(sess.ID)}
	if bookingID, paymentID, ok := h.checkout.Settled(sess.ID); ok {
		resp["booking_id"] = bookingID
		resp["payment_id"] = paymentID
	}
	c.JSON(http.StatusOK, resp)
}
