package models

import (
	"strings"
	"time"
)

// PaymentStatus is the display classification of a payment
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// ClassifyPaymentStatus maps the raw upstream status string onto the
// four display statuses. Unknown values count as pending.
func ClassifyPaymentStatus(raw string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "captured", "success", "completed":
		return PaymentStatusPaid
	case "failed", "cancelled":
		return PaymentStatusFailed
	case "refunded":
		return PaymentStatusRefunded
	default:
		return PaymentStatusPending
	}
}

// CreateOrderRequest asks the upstream to create a gateway order.
// Amount is in paise.
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// PaymentOrder is the gateway order returned by the upstream
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

// VerifyPaymentRequest carries the checkout widget's success callback
// parameters upstream for signature verification.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	BookingID string `json:"bookingId,omitempty"`
}

// CollectPaymentRequest records an amount collected against a booking.
// The booking id is a path parameter, not part of the body.
type CollectPaymentRequest struct {
	Amount      Amount `json:"amount"`
	Method      string `json:"method"`
	CollectedBy string `json:"collectedBy"`
	Notes       string `json:"notes,omitempty"`
}

// PaymentDetails is the payment record for a booking as returned upstream
type PaymentDetails struct {
	ID        string     `json:"_id"`
	BookingID string     `json:"booking"`
	OrderID   string     `json:"orderId,omitempty"`
	PaymentID string     `json:"paymentId,omitempty"`
	Amount    Amount     `json:"amount"`
	Currency  string     `json:"currency,omitempty"`
	Status    string     `json:"status"`
	Method    string     `json:"method,omitempty"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// DisplayStatus returns the classified display status of the payment
func (p *PaymentDetails) DisplayStatus() PaymentStatus {
	return ClassifyPaymentStatus(p.Status)
}

// IsCompleted reports whether the payment has been captured
func (p *PaymentDetails) IsCompleted() bool {
	return p.DisplayStatus() == PaymentStatusPaid
}
