package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/activity"
	"github.com/opendoorexp/wildex-frontend/internal/currency"
	"github.com/opendoorexp/wildex-frontend/internal/middleware"
	"github.com/opendoorexp/wildex-frontend/internal/session"
)

// SessionHandler serves the current session state: who is logged in,
// the display currency and any pending booking intent.
type SessionHandler struct {
	sessions  *session.Store
	converter *currency.Converter
	tracker   *activity.Tracker
	logger    *logrus.Logger
}

// NewSessionHandler creates a session handler
func NewSessionHandler(sessions *session.Store, converter *currency.Converter, tracker *activity.Tracker, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		converter: converter,
		tracker:   tracker,
		logger:    logger,
	}
}

// SessionResponse is the session state handed to the browser
type SessionResponse struct {
	Authenticated      bool    `json:"authenticated"`
	CustomerName       *string `json:"customer_name,omitempty"`
	CustomerPhone      *string `json:"customer_phone,omitempty"`
	CustomerEmail      *string `json:"customer_email,omitempty"`
	Avatar             *string `json:"avatar,omitempty"`
	Currency           string  `json:"currency"`
	CurrencySymbol     string  `json:"currency_symbol"`
	PendingPackageID   *string `json:"pending_package_id,omitempty"`
	RedirectAfterLogin *string `json:"redirect_after_login,omitempty"`
}

// GetSession handles GET /api/v1/session
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	c.JSON(http.StatusOK, SessionResponse{
		Authenticated:      sess.IsAuthenticated(),
		CustomerName:       sess.CustomerName,
		CustomerPhone:      sess.CustomerPhone,
		CustomerEmail:      sess.CustomerEmail,
		Avatar:             sess.Avatar,
		Currency:           sess.Currency,
		CurrencySymbol:     currency.Symbol(sess.Currency),
		PendingPackageID:   sess.PendingPackageID,
		RedirectAfterLogin: sess.RedirectAfterLogin,
	})
}

// Logout handles POST /api/v1/session/logout
func (h *SessionHandler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	if err := h.sessions.Clear(sess.ID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "logout_failed",
			Message: "Failed to log out",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// SetCurrencyRequest selects a display currency
type SetCurrencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

// SetCurrency handles PUT /api/v1/session/currency
func (h *SessionHandler) SetCurrency(c *gin.Context) {
	var req SetCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	if !currency.IsSupported(req.Currency) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "unsupported_currency",
			Message: "Unsupported currency",
		})
		return
	}

	sess := middleware.CurrentSession(c)
	if err := h.sessions.SetCurrency(sess.ID, req.Currency); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "currency_update_failed",
			Message: "Failed to update currency",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currency": req.Currency,
		"symbol":   currency.Symbol(req.Currency),
	})
}

// Currencies handles GET /api/v1/currencies
func (h *SessionHandler) Currencies(c *gin.Context) {
	codes := currency.Supported()
	options := make([]gin.H, 0, len(codes))
	for _, code := range codes {
		options = append(options, gin.H{
			"code":   code,
			"symbol": currency.Symbol(code),
		})
	}
	c.JSON(http.StatusOK, gin.H{"currencies": options})
}

// BookingIntentRequest captures a booking attempt made before login
type BookingIntentRequest struct {
	PackageID string `json:"package_id" binding:"required"`
	Redirect  string `json:"redirect"`
}

// SetBookingIntent handles POST /api/v1/session/booking-intent
func (h *SessionHandler) SetBookingIntent(c *gin.Context) {
	var req BookingIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	sess := middleware.CurrentSession(c)
	if err := h.sessions.SetBookingIntent(sess.ID, req.PackageID, req.Redirect); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "intent_save_failed",
			Message: "Failed to save booking intent",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking intent saved"})
}

// ClearBookingIntent handles DELETE /api/v1/session/booking-intent
func (h *SessionHandler) ClearBookingIntent(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.sessions.ClearBookingIntent(sess.ID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "intent_clear_failed",
			Message: "Failed to clear booking intent",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking intent cleared"})
}

// LoaderStatus handles GET /api/v1/status/loader. The browser polls it
// to decide whether the loading overlay should be visible.
func (h *SessionHandler) LoaderStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"visible": h.tracker.Visible(),
		"active":  h.tracker.Active(),
	})
}
