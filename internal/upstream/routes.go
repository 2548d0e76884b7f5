package upstream

import "strings"

// Route templates for the upstream Wildex API. Path parameters use the
// :name form and are substituted by buildPath.
const (
	// Registration uses the bare customer OTP endpoints; login has its
	// own pair under /customers/login.
	routeSendOTP        = "/customers/send-otp"
	routeVerifyOTP      = "/customers/verify-otp"
	routeLoginSendOTP   = "/customers/login/send-otp"
	routeLoginVerifyOTP = "/customers/login/verify-otp"

	routeCustomerByID     = "/customers/:id"
	routeCustomerWishlist = "/customers/:id/wishlist"

	routeCreateBooking      = "/bookings/create"
	routeBookings           = "/bookings"
	routeBookingByID        = "/bookings/:id"
	routeBookingsByCustomer = "/bookings/customer/:customerId"
	routeBookingStatus      = "/bookings/:id/status"
	routeCollectPayment     = "/bookings/:id/collect-payment"

	routeCreateOrder      = "/payments/create-order"
	routeVerifyPayment    = "/payments/verify"
	routePaymentByBooking = "/payments/booking/:bookingId"

	// Package listings filter through query parameters on /packages
	routePackages      = "/packages"
	routePackageByID   = "/packages/:id"
	routePackageBySlug = "/packages/slug/:slug"

	routeVerifyCoupon = "/coupons/verify"
)

// buildPath substitutes :param segments in a route template
func buildPath(template string, params map[string]string) string {
	if len(params) == 0 {
		return template
	}

	segments := strings.Split(template, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		if value, ok := params[segment[1:]]; ok {
			segments[i] = value
		}
	}
	return strings.Join(segments, "/")
}
