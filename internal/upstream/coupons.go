package upstream

import (
	"context"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// CouponsClient handles coupon endpoints
type CouponsClient struct {
	client *Client
}

// Verify checks a coupon code upstream. Eligibility is entirely the
// backend's decision; on success the returned coupon carries the
// discount percentage to apply.
func (c *CouponsClient) Verify(ctx context.Context, token string, req models.VerifyCouponRequest) (models.Coupon, models.Result) {
	result := c.client.call(ctx, "POST", routeVerifyCoupon, token, req)

	var coupon models.Coupon
	if result.Success {
		if err := decodeData(result, &coupon); err != nil {
			return coupon, models.Result{Success: false, Message: MsgNetworkError}
		}
		if coupon.Code == "" {
			coupon.Code = req.Code
		}
	}
	return coupon, result
}
