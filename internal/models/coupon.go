package models

// Coupon represents a verified discount coupon. Eligibility is decided
// upstream; the client only applies the returned percentage.
type Coupon struct {
	ID              string  `json:"_id,omitempty"`
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discountPercent"`
}

// VerifyCouponRequest is the payload for coupon verification
type VerifyCouponRequest struct {
	Code      string `json:"code"`
	PackageID string `json:"packageId,omitempty"`
}
