// Package checkout walks a basket through booking creation, the
// payment gateway widget and verification. Each session has at most
// one checkout in flight; widget callbacks resolve exactly once.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/basket"
	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// Phase is the checkout state for one session
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseSubmitting      Phase = "submitting-booking"
	PhaseAwaitingPayment Phase = "awaiting-payment"
	PhaseVerifying       Phase = "verifying"
	PhaseSettledSuccess  Phase = "settled-success"
	PhaseSettledFailure  Phase = "settled-failure"
)

// User-facing messages
const (
	MsgSelectDate       = "Please select a travel date."
	MsgLoginRequired    = "Please log in to book this package."
	MsgPaymentInitiate  = "Failed to initiate payment. Please try again."
	MsgPaymentCancelled = "Payment cancelled. Your booking has been created but not confirmed."
	MsgBookingFailed    = "Failed to create booking. Please try again."
)

// SuccessRedirectDelaySeconds is how long the success view lingers
// before the UI redirects.
const SuccessRedirectDelaySeconds = 3

// BookingAPI creates bookings upstream
type BookingAPI interface {
	Create(ctx context.Context, token string, req models.CreateBookingRequest) (models.Booking, models.Result)
}

// PaymentAPI creates orders and verifies gateway payments
type PaymentAPI interface {
	CreateOrder(ctx context.Context, token string, req models.CreateOrderRequest) (models.PaymentOrder, error)
	Verify(ctx context.Context, token string, req models.VerifyPaymentRequest) error
}

// EventPublisher announces confirmed bookings downstream.
// Failures must never affect the checkout outcome.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event models.BookingConfirmedEvent) error
}

// Config holds the gateway widget settings handed to the browser
type Config struct {
	GatewayKeyID string
	DisplayName  string
	ThemeColor   string
	LogoURL      string
	Currency     string
}

// DefaultConfig returns sensible widget defaults
func DefaultConfig() Config {
	return Config{
		DisplayName: "Open Door Expeditions",
		ThemeColor:  "#F5AD4C",
		Currency:    "INR",
	}
}

// WidgetOptions is everything the browser needs to open the payment
// widget for an order.
type WidgetOptions struct {
	Key         string        `json:"key"`
	OrderID     string        `json:"order_id"`
	Amount      int64         `json:"amount"`
	Currency    string        `json:"currency"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image,omitempty"`
	ThemeColor  string        `json:"theme_color,omitempty"`
	Prefill     WidgetPrefill `json:"prefill"`
}

// WidgetPrefill carries the visitor's identity into the widget
type WidgetPrefill struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// Outcome is the result of a checkout operation
type Outcome struct {
	Success              bool           `json:"success"`
	Message              string         `json:"message,omitempty"`
	Phase                Phase          `json:"phase"`
	BookingID            string         `json:"bookingId,omitempty"`
	PaymentID            string         `json:"paymentId,omitempty"`
	Widget               *WidgetOptions `json:"widget,omitempty"`
	ReceiptAvailable     bool           `json:"receiptAvailable,omitempty"`
	RedirectDelaySeconds int            `json:"redirectDelaySeconds,omitempty"`
}

// state tracks one session's checkout
type state struct {
	phase     Phase
	bookingID string
	orderID   string
	paymentID string
	amountDue models.Amount
}

// Orchestrator drives checkouts
type Orchestrator struct {
	mu       sync.Mutex
	states   map[uuid.UUID]*state
	bookings BookingAPI
	payments PaymentAPI
	baskets  *basket.Manager
	events   EventPublisher
	config   Config
	logger   *logrus.Logger
}

// NewOrchestrator creates a checkout orchestrator. events may be nil
// when no broker is configured.
func NewOrchestrator(bookings BookingAPI, payments PaymentAPI, baskets *basket.Manager, events EventPublisher, config Config, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		states:   make(map[uuid.UUID]*state),
		bookings: bookings,
		payments: payments,
		baskets:  baskets,
		events:   events,
		config:   config,
		logger:   logger,
	}
}

// Phase returns the session's current checkout phase
func (o *Orchestrator) Phase(sessionID uuid.UUID) Phase {
	o.mu.Lock()
	defer o.mu.Unlock()

	if st, ok := o.states[sessionID]; ok {
		return st.phase
	}
	return PhaseIdle
}

// Confirm submits the basket as a booking and opens a payment order.
// A failed booking creation returns the visitor to idle with the
// server's message verbatim; the submit button is usable again.
func (o *Orchestrator) Confirm(ctx context.Context, session *models.Session, travelDate string) Outcome {
	if !session.IsAuthenticated() {
		return Outcome{Success: false, Message: MsgLoginRequired, Phase: PhaseIdle}
	}
	if travelDate == "" {
		return Outcome{Success: false, Message: MsgSelectDate, Phase: PhaseIdle}
	}

	b, err := o.baskets.Get(session.ID)
	if err != nil {
		return Outcome{Success: false, Message: basket.ErrNoActiveBasket.Error(), Phase: PhaseIdle}
	}

	quote := b.Quote()
	if quote.Participants < 1 {
		return Outcome{Success: false, Message: MsgBookingFailed, Phase: PhaseIdle}
	}

	o.mu.Lock()
	st, ok := o.states[session.ID]
	if ok && st.phase != PhaseIdle && st.phase != PhaseSettledSuccess && st.phase != PhaseSettledFailure {
		phase := st.phase
		o.mu.Unlock()
		return Outcome{Success: false, Message: MsgBookingFailed, Phase: phase}
	}
	st = &state{phase: PhaseSubmitting, amountDue: quote.AmountDue}
	o.states[session.ID] = st
	o.mu.Unlock()

	// The booking records the full undiscounted total as its amount
	// and the amount actually collected now as the advance.
	req := models.CreateBookingRequest{
		Customer:     session.CurrentCustomerID(),
		Package:      b.Package().ID,
		TravelDate:   travelDate,
		Participants: quote.Participants,
		Amount:       b.UndiscountedTotal(),
		Advance:      quote.AmountDue,
		BookedBy:     "Self",
		AddOns:       b.BookingAddOns(),
	}

	if req.Advance > req.Amount {
		// The upstream enforces this; the mismatch is only recorded
		o.logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"amount":     req.Amount,
			"advance":    req.Advance,
		}).Warn("Advance exceeds booking amount")
	}

	booking, result := o.bookings.Create(ctx, session.Token(), req)
	if !result.Success {
		o.setPhase(session.ID, PhaseIdle)
		message := result.Message
		if message == "" {
			message = MsgBookingFailed
		}
		return Outcome{Success: false, Message: message, Phase: PhaseIdle}
	}

	o.mu.Lock()
	st.bookingID = booking.ID
	o.mu.Unlock()

	o.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"booking_id": booking.ID,
		"amount_due": quote.AmountDue,
	}).Info("Booking created, creating payment order")

	order, err := o.payments.CreateOrder(ctx, session.Token(), models.CreateOrderRequest{
		Amount:   quote.AmountDue.Paise(),
		Currency: o.config.Currency,
		Receipt:  fmt.Sprintf("receipt_%s", booking.ID),
	})
	if err != nil {
		o.logger.WithError(err).WithField("booking_id", booking.ID).Error("Payment order creation failed")
		o.setPhase(session.ID, PhaseSettledFailure)
		return Outcome{Success: false, Message: MsgPaymentInitiate, Phase: PhaseSettledFailure, BookingID: booking.ID}
	}

	o.mu.Lock()
	st.phase = PhaseAwaitingPayment
	st.orderID = order.ID
	o.mu.Unlock()

	// The basket is consumed once the booking exists
	o.baskets.Close(session.ID)

	widget := &WidgetOptions{
		Key:         o.config.GatewayKeyID,
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        o.config.DisplayName,
		Description: fmt.Sprintf("Booking for %s", b.Package().Name),
		ImageURL:    o.config.LogoURL,
		ThemeColor:  o.config.ThemeColor,
		Prefill: WidgetPrefill{
			Name:    deref(session.CustomerName),
			Email:   deref(session.CustomerEmail),
			Contact: deref(session.CustomerPhone),
		},
	}

	return Outcome{Success: true, Phase: PhaseAwaitingPayment, BookingID: booking.ID, Widget: widget}
}

// HandlePaymentSuccess is the widget's success callback: verify the
// signature upstream and settle. Resolves at most once; late or
// duplicate callbacks are ignored.
func (o *Orchestrator) HandlePaymentSuccess(ctx context.Context, session *models.Session, orderID, paymentID, signature string) Outcome {
	o.mu.Lock()
	st, ok := o.states[session.ID]
	if !ok || st.phase != PhaseAwaitingPayment {
		phase := PhaseIdle
		if ok {
			phase = st.phase
		}
		o.mu.Unlock()
		return Outcome{Success: false, Phase: phase}
	}
	st.phase = PhaseVerifying
	st.paymentID = paymentID
	bookingID := st.bookingID
	o.mu.Unlock()

	err := o.payments.Verify(ctx, session.Token(), models.VerifyPaymentRequest{
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: signature,
		BookingID: bookingID,
	})
	if err != nil {
		o.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": bookingID,
			"payment_id": paymentID,
		}).Error("Payment verification failed")

		o.setPhase(session.ID, PhaseSettledFailure)
		return Outcome{
			Success:   false,
			Message:   fmt.Sprintf("Payment verification failed. Please contact support with payment ID: %s", paymentID),
			Phase:     PhaseSettledFailure,
			BookingID: bookingID,
			PaymentID: paymentID,
		}
	}

	o.setPhase(session.ID, PhaseSettledSuccess)

	o.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"payment_id": paymentID,
	}).Info("Payment verified, booking confirmed")

	if o.events != nil {
		event := models.BookingConfirmedEvent{
			BookingID:  bookingID,
			CustomerID: session.CurrentCustomerID(),
			PaymentID:  paymentID,
			OrderID:    orderID,
		}
		if err := o.events.PublishBookingConfirmed(ctx, event); err != nil {
			o.logger.WithError(err).WithField("booking_id", bookingID).Warn("Failed to publish booking confirmed event")
		}
	}

	return Outcome{
		Success:              true,
		Phase:                PhaseSettledSuccess,
		BookingID:            bookingID,
		PaymentID:            paymentID,
		ReceiptAvailable:     true,
		RedirectDelaySeconds: SuccessRedirectDelaySeconds,
	}
}

// HandlePaymentDismissal is the widget's dismissal/failure callback.
// The booking already exists upstream; it just is not confirmed.
func (o *Orchestrator) HandlePaymentDismissal(session *models.Session) Outcome {
	o.mu.Lock()
	st, ok := o.states[session.ID]
	if !ok || st.phase != PhaseAwaitingPayment {
		phase := PhaseIdle
		if ok {
			phase = st.phase
		}
		o.mu.Unlock()
		return Outcome{Success: false, Phase: phase}
	}
	st.phase = PhaseSettledFailure
	bookingID := st.bookingID
	o.mu.Unlock()

	o.logger.WithField("booking_id", bookingID).Info("Payment widget dismissed")

	return Outcome{
		Success:   false,
		Message:   MsgPaymentCancelled,
		Phase:     PhaseSettledFailure,
		BookingID: bookingID,
	}
}

// Reset clears a settled checkout so the session can start another
func (o *Orchestrator) Reset(sessionID uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if st, ok := o.states[sessionID]; ok {
		if st.phase == PhaseSettledSuccess || st.phase == PhaseSettledFailure || st.phase == PhaseIdle {
			delete(o.states, sessionID)
		}
	}
}

// Settled returns the booking and payment ids of a settled checkout,
// for the receipt and status views.
func (o *Orchestrator) Settled(sessionID uuid.UUID) (bookingID, paymentID string, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	st, found := o.states[sessionID]
	if !found || st.phase != PhaseSettledSuccess {
		return "", "", false
	}
	return st.bookingID, st.paymentID, true
}

func (o *Orchestrator) setPhase(sessionID uuid.UUID, phase Phase) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if st, ok := o.states[sessionID]; ok {
		st.phase = phase
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
