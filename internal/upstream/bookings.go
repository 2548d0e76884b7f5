package upstream

import (
	"context"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// BookingsClient handles booking endpoints
type BookingsClient struct {
	client *Client
}

// Create creates a booking. The server message on failure is passed
// through verbatim so the visitor sees what the backend said.
func (b *BookingsClient) Create(ctx context.Context, token string, req models.CreateBookingRequest) (models.Booking, models.Result) {
	result := b.client.call(ctx, "POST", routeCreateBooking, token, req)

	var booking models.Booking
	if result.Success {
		if err := decodeData(result, &booking); err != nil {
			return booking, models.Result{Success: false, Message: MsgNetworkError}
		}
	}
	return booking, result
}

// List fetches all bookings
func (b *BookingsClient) List(ctx context.Context, token string) ([]models.Booking, models.Result) {
	result := b.client.call(ctx, "GET", routeBookings, token, nil)

	var bookings []models.Booking
	if result.Success {
		if err := decodeData(result, &bookings); err != nil {
			return nil, models.Result{Success: false, Message: MsgNetworkError}
		}
	}
	return bookings, result
}

// Get fetches one booking by id
func (b *BookingsClient) Get(ctx context.Context, token, bookingID string) (models.Booking, models.Result) {
	path := buildPath(routeBookingByID, map[string]string{"id": bookingID})
	result := b.client.call(ctx, "GET", path, token, nil)

	var booking models.Booking
	if result.Success {
		if err := decodeData(result, &booking); err != nil {
			return booking, models.Result{Success: false, Message: MsgNetworkError}
		}
	}
	return booking, result
}

// ByCustomer fetches a customer's bookings
func (b *BookingsClient) ByCustomer(ctx context.Context, token, customerID string) ([]models.Booking, models.Result) {
	path := buildPath(routeBookingsByCustomer, map[string]string{"customerId": customerID})
	result := b.client.call(ctx, "GET", path, token, nil)

	var bookings []models.Booking
	if result.Success {
		if err := decodeData(result, &bookings); err != nil {
			return nil, models.Result{Success: false, Message: MsgNetworkError}
		}
	}
	return bookings, result
}

// Update updates a booking
func (b *BookingsClient) Update(ctx context.Context, token, bookingID string, booking models.Booking) models.Result {
	path := buildPath(routeBookingByID, map[string]string{"id": bookingID})
	return b.client.call(ctx, "PUT", path, token, booking)
}

// Cancel marks a booking cancelled via a status PATCH
func (b *BookingsClient) Cancel(ctx context.Context, token, bookingID string) models.Result {
	path := buildPath(routeBookingStatus, map[string]string{"id": bookingID})
	return b.client.call(ctx, "PATCH", path, token, models.CancelBookingRequest{
		Status: models.BookingStatusCancelled,
	})
}
