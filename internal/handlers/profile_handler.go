package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/middleware"
	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/internal/session"
	"github.com/opendoorexp/wildex-frontend/internal/upstream"
)

// ProfileHandler serves the customer profile and wishlist
type ProfileHandler struct {
	customers *upstream.CustomersClient
	sessions  *session.Store
	logger    *logrus.Logger
}

// NewProfileHandler creates a profile handler
func NewProfileHandler(customers *upstream.CustomersClient, sessions *session.Store, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		customers: customers,
		sessions:  sessions,
		logger:    logger,
	}
}

func requireAuth(c *gin.Context) *models.Session {
	sess := middleware.CurrentSession(c)
	if !sess.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "not_authenticated",
			Message: "Please log in to continue",
		})
		return nil
	}
	return sess
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	sess := requireAuth(c)
	if sess == nil {
		return
	}

	customer, result := h.customers.GetProfile(c.Request.Context(), sess.Token(), sess.CurrentCustomerID())
	if !result.Success {
		c.JSON(http.StatusBadGateway, upstreamError(result.Message))
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// UpdateProfile handles PUT /api/v1/profile. Accepts a multipart form
// with name, email and an optional avatar image; the form is forwarded
// upstream as-is.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	sess := requireAuth(c)
	if sess == nil {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	avatarName := ""
	var avatar io.Reader
	if fileHeader, err := c.FormFile("avatar"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, validationError("Failed to read avatar upload"))
			return
		}
		defer file.Close()
		avatarName = fileHeader.Filename
		avatar = file
	}

	result := h.customers.UpdateProfile(c.Request.Context(), sess.Token(), sess.CurrentCustomerID(), req, avatarName, avatar)
	if !result.Success {
		c.JSON(http.StatusBadGateway, upstreamError(result.Message))
		return
	}

	// Refresh the cached identity so the header shows the new name
	customer, profileResult := h.customers.GetProfile(c.Request.Context(), sess.Token(), sess.CurrentCustomerID())
	if profileResult.Success {
		if err := h.sessions.Save(sess.ID, customer, sess.Token()); err != nil {
			h.logger.WithError(err).Warn("Failed to refresh session after profile update")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// GetWishlist handles GET /api/v1/profile/wishlist
func (h *ProfileHandler) GetWishlist(c *gin.Context) {
	sess := requireAuth(c)
	if sess == nil {
		return
	}

	packages, result := h.customers.GetWishlist(c.Request.Context(), sess.Token(), sess.CurrentCustomerID())
	if !result.Success {
		c.JSON(http.StatusBadGateway, upstreamError(result.Message))
		return
	}

	c.JSON(http.StatusOK, gin.H{"packages": packages})
}
