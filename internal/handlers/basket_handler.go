package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/basket"
	"github.com/opendoorexp/wildex-frontend/internal/catalog"
	"github.com/opendoorexp/wildex-frontend/internal/middleware"
	"github.com/opendoorexp/wildex-frontend/internal/utils"
)

// BasketHandler serves the booking basket for the current session
type BasketHandler struct {
	baskets *basket.Manager
	catalog *catalog.Service
	logger  *logrus.Logger
}

// NewBasketHandler creates a basket handler
func NewBasketHandler(baskets *basket.Manager, service *catalog.Service, logger *logrus.Logger) *BasketHandler {
	return &BasketHandler{
		baskets: baskets,
		catalog: service,
		logger:  logger,
	}
}

// BasketResponse is the basket state plus its price breakdown
type BasketResponse struct {
	PackageID       string             `json:"package_id"`
	PackageName     string             `json:"package_name"`
	Participants    int                `json:"participants"`
	PaymentType     basket.PaymentType `json:"payment_type"`
	AddOns          []string           `json:"addons"`
	CouponCode      string             `json:"coupon_code,omitempty"`
	Quote           basket.Quote       `json:"quote"`
	DisplayDue      string             `json:"display_due"`
	DisplaySavings  string             `json:"display_savings,omitempty"`
	DisplayDiscount string             `json:"display_discount,omitempty"`
}

func (h *BasketHandler) respond(c *gin.Context, b *basket.Basket) {
	quote := b.Quote()
	pkg := b.Package()

	addOns := make([]string, 0, len(b.AddOns()))
	for _, service := range b.AddOns() {
		addOns = append(addOns, service.Name)
	}

	resp := BasketResponse{
		PackageID:    pkg.ID,
		PackageName:  pkg.Name,
		Participants: b.Participants(),
		PaymentType:  b.PaymentType(),
		AddOns:       addOns,
		Quote:        quote,
		DisplayDue:   utils.FormatRupees(int64(quote.AmountDue)),
	}
	if coupon := b.Coupon(); coupon != nil {
		resp.CouponCode = coupon.Code
	}
	if quote.Savings > 0 {
		resp.DisplaySavings = utils.FormatRupees(int64(quote.Savings))
	}
	if quote.Discount > 0 {
		resp.DisplayDiscount = utils.FormatRupees(int64(quote.Discount))
	}

	c.JSON(http.StatusOK, resp)
}

// OpenRequest starts a basket for a package
type OpenRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}

// Open handles POST /api/v1/basket
func (h *BasketHandler) Open(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	pkg, result := h.catalog.Detail(c.Request.Context(), req.PackageID)
	if !result.Success {
		c.JSON(http.StatusNotFound, upstreamError(result.Message))
		return
	}

	sess := middleware.CurrentSession(c)
	h.respond(c, h.baskets.Open(sess.ID, pkg))
}

// Get handles GET /api/v1/basket
func (h *BasketHandler) Get(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	b, err := h.baskets.Get(sess.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "no_basket",
			Message: "No active basket",
		})
		return
	}
	h.respond(c, b)
}

// Close handles DELETE /api/v1/basket
func (h *BasketHandler) Close(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	h.baskets.Close(sess.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Basket closed"})
}

// SetParticipantsRequest changes the traveler count
type SetParticipantsRequest struct {
	Participants int `json:"participants" binding:"required"`
}

// SetParticipants handles PUT /api/v1/basket/participants
func (h *BasketHandler) SetParticipants(c *gin.Context) {
	var req SetParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	h.update(c, func(b *basket.Basket) error {
		return b.SetParticipants(req.Participants)
	})
}

// ToggleAddOnRequest toggles an additional service
type ToggleAddOnRequest struct {
	Name string `json:"name" binding:"required"`
}

// ToggleAddOn handles PUT /api/v1/basket/addons
func (h *BasketHandler) ToggleAddOn(c *gin.Context) {
	var req ToggleAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	h.update(c, func(b *basket.Basket) error {
		return b.ToggleAddOn(req.Name)
	})
}

// SetPaymentTypeRequest selects full or advance payment
type SetPaymentTypeRequest struct {
	PaymentType string `json:"payment_type" binding:"required"`
}

// SetPaymentType handles PUT /api/v1/basket/payment-type
func (h *BasketHandler) SetPaymentType(c *gin.Context) {
	var req SetPaymentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	paymentType := basket.PaymentFull
	if req.PaymentType == string(basket.PaymentAdvance) {
		paymentType = basket.PaymentAdvance
	}

	h.update(c, func(b *basket.Basket) error {
		b.SetPaymentType(paymentType)
		return nil
	})
}

// ApplyCouponRequest applies a coupon code
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon handles POST /api/v1/basket/coupon
func (h *BasketHandler) ApplyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid request body"))
		return
	}

	sess := middleware.CurrentSession(c)
	result := h.baskets.ApplyCoupon(c.Request.Context(), sess.ID, sess.Token(), req.Code)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "coupon_rejected",
			Message: result.Message,
		})
		return
	}

	b, err := h.baskets.Get(sess.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "no_basket",
			Message: "No active basket",
		})
		return
	}
	h.respond(c, b)
}

// RemoveCoupon handles DELETE /api/v1/basket/coupon
func (h *BasketHandler) RemoveCoupon(c *gin.Context) {
	h.update(c, func(b *basket.Basket) error {
		b.ClearCoupon()
		return nil
	})
}

func (h *BasketHandler) update(c *gin.Context, fn func(*basket.Basket) error) {
	sess := middleware.CurrentSession(c)

	if err := h.baskets.Update(sess.ID, fn); err != nil {
		switch {
		case errors.Is(err, basket.ErrNoActiveBasket):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "no_basket",
				Message: "No active basket",
			})
		case errors.Is(err, basket.ErrParticipantsOutOfRange):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "participants_out_of_range",
				Message: "Participant count is out of range",
			})
		case errors.Is(err, basket.ErrUnknownAddOn):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "unknown_addon",
				Message: "This package does not offer that service",
			})
		case errors.Is(err, basket.ErrCouponOnAdvance):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "coupon_rejected",
				Message: basket.MsgCouponOnAdvance,
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "basket_update_failed",
				Message: "Failed to update basket",
			})
		}
		return
	}

	b, err := h.baskets.Get(sess.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "no_basket",
			Message: "No active basket",
		})
		return
	}
	h.respond(c, b)
}
