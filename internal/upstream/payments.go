package upstream

import (
	"context"
	"errors"
	"fmt"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// ErrPaymentFailed is the generic payment failure when the upstream
// gave no message of its own
var ErrPaymentFailed = errors.New("Payment request failed. Please try again.")

// PaymentsClient handles payment endpoints. Unlike the other
// sub-clients it returns errors instead of failed results: checkout
// must distinguish payment failures and must never mistake one for an
// empty success.
type PaymentsClient struct {
	client *Client
}

// upstreamError carries the server's message for a failed payment call
func paymentError(envelope *models.Envelope) error {
	if envelope.Message != "" {
		return errors.New(envelope.Message)
	}
	return ErrPaymentFailed
}

// Collect records a collected payment against a booking. The booking
// id travels in the path; the body carries the amount and method.
func (p *PaymentsClient) Collect(ctx context.Context, token, bookingID string, req models.CollectPaymentRequest) error {
	if req.CollectedBy == "" {
		req.CollectedBy = "Self"
	}

	path := buildPath(routeCollectPayment, map[string]string{"id": bookingID})
	envelope, err := p.client.do(ctx, "POST", path, token, req)
	if err != nil {
		return fmt.Errorf("failed to collect payment: %w", err)
	}
	if !envelope.Success {
		return paymentError(envelope)
	}
	return nil
}

// CreateOrder creates a payment gateway order. Amount is in paise.
func (p *PaymentsClient) CreateOrder(ctx context.Context, token string, req models.CreateOrderRequest) (models.PaymentOrder, error) {
	var order models.PaymentOrder

	envelope, err := p.client.do(ctx, "POST", routeCreateOrder, token, req)
	if err != nil {
		return order, fmt.Errorf("failed to create payment order: %w", err)
	}
	if !envelope.Success {
		return order, paymentError(envelope)
	}

	if err := decodeData(models.Result{Success: true, Data: envelope.Data}, &order); err != nil {
		return order, fmt.Errorf("failed to decode payment order: %w", err)
	}
	if order.ID == "" {
		return order, ErrPaymentFailed
	}
	return order, nil
}

// Verify asks the upstream to verify a gateway payment signature
func (p *PaymentsClient) Verify(ctx context.Context, token string, req models.VerifyPaymentRequest) error {
	envelope, err := p.client.do(ctx, "POST", routeVerifyPayment, token, req)
	if err != nil {
		return fmt.Errorf("failed to verify payment: %w", err)
	}
	if !envelope.Success {
		return paymentError(envelope)
	}
	return nil
}

// ByBooking fetches the payment record for a booking
func (p *PaymentsClient) ByBooking(ctx context.Context, token, bookingID string) (models.PaymentDetails, error) {
	var details models.PaymentDetails

	path := buildPath(routePaymentByBooking, map[string]string{"bookingId": bookingID})
	envelope, err := p.client.do(ctx, "GET", path, token, nil)
	if err != nil {
		return details, fmt.Errorf("failed to fetch payment details: %w", err)
	}
	if !envelope.Success {
		return details, paymentError(envelope)
	}

	if err := decodeData(models.Result{Success: true, Data: envelope.Data}, &details); err != nil {
		return details, fmt.Errorf("failed to decode payment details: %w", err)
	}
	return details, nil
}
