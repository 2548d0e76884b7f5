package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/auth"
	"github.com/opendoorexp/wildex-frontend/internal/middleware"
)

// AuthFlowHandler drives the OTP login and registration flow
type AuthFlowHandler struct {
	flow   *auth.Flow
	logger *logrus.Logger
}

// NewAuthFlowHandler creates an auth flow handler
func NewAuthFlowHandler(flow *auth.Flow, logger *logrus.Logger) *AuthFlowHandler {
	return &AuthFlowHandler{flow: flow, logger: logger}
}

// BeginRequest starts a login or registration flow
type BeginRequest struct {
	Mode     string `json:"mode"`
	Redirect string `json:"redirect"`
}

// Begin handles POST /api/v1/auth/begin
func (h *AuthFlowHandler) Begin(c *gin.Context) {
	var req BeginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	mode := auth.ModeLogin
	if req.Mode == string(auth.ModeRegistration) {
		mode = auth.ModeRegistration
	}

	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, h.flow.Begin(sess.ID, mode, req.Redirect))
}

// SubmitPhoneRequest carries the entered phone number
type SubmitPhoneRequest struct {
	Phone string `json:"phone"`
}

// SubmitPhone handles POST /api/v1/auth/phone
func (h *AuthFlowHandler) SubmitPhone(c *gin.Context) {
	var req SubmitPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	sess := middleware.CurrentSession(c)
	outcome := h.flow.SubmitPhone(c.Request.Context(), sess.ID, req.Phone)
	c.JSON(http.StatusOK, outcome)
}

// SubmitOTPRequest carries the entered OTP
type SubmitOTPRequest struct {
	OTP string `json:"otp"`
}

// SubmitOTP handles POST /api/v1/auth/otp
func (h *AuthFlowHandler) SubmitOTP(c *gin.Context) {
	var req SubmitOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	sess := middleware.CurrentSession(c)
	outcome := h.flow.SubmitOTP(c.Request.Context(), sess.ID, req.OTP)
	c.JSON(http.StatusOK, outcome)
}

// Resend handles POST /api/v1/auth/resend
func (h *AuthFlowHandler) Resend(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	outcome := h.flow.Resend(c.Request.Context(), sess.ID)
	c.JSON(http.StatusOK, outcome)
}

// State handles GET /api/v1/auth/state. The browser polls it to render
// the countdown and the resend button.
func (h *AuthFlowHandler) State(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	countdown, resendEnabled := h.flow.Countdown(sess.ID)

	c.JSON(http.StatusOK, gin.H{
		"step":           h.flow.Step(sess.ID),
		"countdown":      countdown,
		"resend_enabled": resendEnabled,
	})
}
