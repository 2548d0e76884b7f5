// Package basket holds the in-progress booking for one session:
// selected package, participants, add-ons, payment type and coupon.
// All money is whole rupees; every mutation recomputes the quote.
package basket

import (
	"errors"
	"math"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// PaymentType selects how much of the booking is paid now
type PaymentType string

const (
	PaymentFull    PaymentType = "full"
	PaymentAdvance PaymentType = "advance"
)

var (
	// ErrParticipantsOutOfRange indicates a participant count outside
	// the allowed limits. The count is rejected, not clamped.
	ErrParticipantsOutOfRange = errors.New("participant count is out of range")

	// ErrCouponOnAdvance indicates a coupon was applied while the
	// advance payment type is selected
	ErrCouponOnAdvance = errors.New("coupons apply to full payments only")

	// ErrUnknownAddOn indicates a toggle for a service the package
	// does not offer
	ErrUnknownAddOn = errors.New("unknown additional service")
)

// Limits bound the participant count
type Limits struct {
	MinParticipants int
	MaxParticipants int
}

// DefaultLimits matches the booking form's traveler selector
var DefaultLimits = Limits{MinParticipants: 1, MaxParticipants: 20}

// Quote is the computed price breakdown for the current basket state
type Quote struct {
	UnitPrice    models.Amount `json:"unitPrice"`
	Participants int           `json:"participants"`
	Subtotal     models.Amount `json:"subtotal"`
	Discount     models.Amount `json:"discount"`
	FullTotal    models.Amount `json:"fullTotal"`
	AdvanceTotal models.Amount `json:"advanceTotal"`
	AmountDue    models.Amount `json:"amountDue"`
	Savings      models.Amount `json:"savings"`
}

// Basket is the booking state for one session. Not safe for concurrent
// use; the manager serializes access.
type Basket struct {
	pkg          models.Package
	limits       Limits
	participants int
	paymentType  PaymentType
	addOns       []models.AddOnService
	coupon       *models.Coupon
}

// Open starts a basket for a package with everything reset:
// one participant, full payment, no add-ons, no coupon.
func Open(pkg models.Package, limits Limits) *Basket {
	return &Basket{
		pkg:          pkg,
		limits:       limits,
		participants: 1,
		paymentType:  PaymentFull,
	}
}

// Package returns the package being booked
func (b *Basket) Package() models.Package {
	return b.pkg
}

// Participants returns the current participant count
func (b *Basket) Participants() int {
	return b.participants
}

// PaymentType returns the selected payment type
func (b *Basket) PaymentType() PaymentType {
	return b.paymentType
}

// Coupon returns the applied coupon, or nil
func (b *Basket) Coupon() *models.Coupon {
	return b.coupon
}

// AddOns returns the selected additional services
func (b *Basket) AddOns() []models.AddOnService {
	return b.addOns
}

// SetParticipants updates the traveler count. Values outside the
// limits are rejected and leave the basket unchanged.
func (b *Basket) SetParticipants(count int) error {
	if count < b.limits.MinParticipants || count > b.limits.MaxParticipants {
		return ErrParticipantsOutOfRange
	}
	b.participants = count
	return nil
}

// ToggleAddOn selects or deselects one of the package's additional
// services by name.
func (b *Basket) ToggleAddOn(name string) error {
	for i, selected := range b.addOns {
		if selected.Name == name {
			b.addOns = append(b.addOns[:i], b.addOns[i+1:]...)
			return nil
		}
	}

	for _, offered := range b.pkg.AdditionalServices {
		if offered.Name == name {
			b.addOns = append(b.addOns, offered)
			return nil
		}
	}

	return ErrUnknownAddOn
}

// SetPaymentType switches between full and advance payment. Switching
// to advance drops any applied coupon.
func (b *Basket) SetPaymentType(paymentType PaymentType) {
	b.paymentType = paymentType
	if paymentType == PaymentAdvance {
		b.coupon = nil
	}
}

// SetCoupon applies a verified coupon. Rejected while the advance
// payment type is selected.
func (b *Basket) SetCoupon(coupon models.Coupon) error {
	if b.paymentType == PaymentAdvance {
		return ErrCouponOnAdvance
	}
	b.coupon = &coupon
	return nil
}

// ClearCoupon removes any applied coupon
func (b *Basket) ClearCoupon() {
	b.coupon = nil
}

// Quote computes the price breakdown for the current state.
//
// subtotal     = (unit price + sum of add-on unit prices) x participants
// discount     = round(subtotal x coupon% / 100), full payment only
// advanceTotal = advance per person x participants, never discounted
func (b *Basket) Quote() Quote {
	unit := b.pkg.UnitPrice()

	perPerson := int64(unit)
	for _, addOn := range b.addOns {
		perPerson += int64(addOn.Price)
	}

	n := int64(b.participants)
	subtotal := perPerson * n

	var discount int64
	if b.coupon != nil && b.paymentType == PaymentFull {
		discount = int64(math.Round(float64(subtotal) * b.coupon.DiscountPercent / 100))
	}

	fullTotal := subtotal - discount
	advanceTotal := int64(b.pkg.AdvancePayment) * n

	amountDue := fullTotal
	if b.paymentType == PaymentAdvance {
		amountDue = advanceTotal
	}

	return Quote{
		UnitPrice:    unit,
		Participants: b.participants,
		Subtotal:     models.Amount(subtotal),
		Discount:     models.Amount(discount),
		FullTotal:    models.Amount(fullTotal),
		AdvanceTotal: models.Amount(advanceTotal),
		AmountDue:    models.Amount(amountDue),
		Savings:      models.Amount(int64(b.pkg.Savings()) * n),
	}
}

// BookingAddOns returns the selected services as booking line items,
// each with quantity equal to the participant count.
func (b *Basket) BookingAddOns() []models.BookingAddOn {
	if len(b.addOns) == 0 {
		return nil
	}

	lines := make([]models.BookingAddOn, 0, len(b.addOns))
	for _, addOn := range b.addOns {
		lines = append(lines, models.BookingAddOn{
			Name:     addOn.Name,
			Price:    addOn.Price,
			Quantity: b.participants,
			Total:    models.Amount(int64(addOn.Price) * int64(b.participants)),
		})
	}
	return lines
}

// UndiscountedTotal is the full base-plus-addons amount before any
// coupon, the figure recorded on the booking itself.
func (b *Basket) UndiscountedTotal() models.Amount {
	unit := int64(b.pkg.UnitPrice())
	for _, addOn := range b.addOns {
		unit += int64(addOn.Price)
	}
	return models.Amount(unit * int64(b.participants))
}
