package models

import (
	"errors"
	"time"
)

// BookingStatus represents the status of a booking upstream
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// BookingAddOn is one additional-service line on a booking.
// Quantity always mirrors the participant count.
type BookingAddOn struct {
	Name     string `json:"name"`
	Price    Amount `json:"price"`
	Quantity int    `json:"quantity"`
	Total    Amount `json:"total"`
}

// CreateBookingRequest is the payload sent upstream to create a booking.
// Amount is the full undiscounted base-plus-addons total; Advance is the
// amount actually being collected now.
type CreateBookingRequest struct {
	Customer     string         `json:"customer"`
	Package      string         `json:"package"`
	TravelDate   string         `json:"travelDate"`
	Participants int            `json:"participants"`
	Amount       Amount         `json:"amount"`
	Advance      Amount         `json:"advance"`
	BookedBy     string         `json:"bookedBy"`
	AddOns       []BookingAddOn `json:"addons"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if r.Customer == "" {
		return errors.New("customer is required")
	}
	if r.Package == "" {
		return errors.New("package is required")
	}
	if r.TravelDate == "" {
		return errors.New("travelDate is required")
	}
	if r.Participants < 1 {
		return errors.New("participants must be at least 1")
	}
	return nil
}

// Booking represents a booking record returned by the upstream API
type Booking struct {
	ID           string         `json:"_id"`
	Customer     string         `json:"customer"`
	Package      string         `json:"package"`
	PackageName  string         `json:"packageName,omitempty"`
	TravelDate   string         `json:"travelDate"`
	Participants int            `json:"participants"`
	Amount       Amount         `json:"amount"`
	Advance      Amount         `json:"advance"`
	BookedBy     string         `json:"bookedBy,omitempty"`
	Status       BookingStatus  `json:"status,omitempty"`
	AddOns       []BookingAddOn `json:"addons,omitempty"`
	CreatedAt    *time.Time     `json:"createdAt,omitempty"`
}

// CancelBookingRequest is the PATCH payload for cancelling a booking
type CancelBookingRequest struct {
	Status BookingStatus `json:"status"`
}

// BookingConfirmedEvent is published after a verified payment for
// downstream consumers.
type BookingConfirmedEvent struct {
	BookingID  string `json:"booking_id"`
	CustomerID string `json:"customer_id"`
	PaymentID  string `json:"payment_id"`
	OrderID    string `json:"order_id"`
}
