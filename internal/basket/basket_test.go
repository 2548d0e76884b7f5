package basket

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// trekPackage builds the package from raw JSON so the comma-grouped
// advance string goes through the same decoding as a live response.
func trekPackage(t *testing.T) models.Package {
	t.Helper()

	raw := `{
		"_id": "pkg-1",
		"name": "Roopkund Trek",
		"originalPrice": 20000,
		"offerPrice": 18000,
		"advancePayment": "5,000",
		"additionalServices": [
			{"name": "Porter", "price": 1000},
			{"name": "Insurance", "price": 500}
		]
	}`

	var pkg models.Package
	require.NoError(t, json.Unmarshal([]byte(raw), &pkg))
	return pkg
}

func TestQuote_FullPaymentWithCoupon(t *testing.T) {
	b := Open(trekPackage(t), DefaultLimits)

	require.NoError(t, b.SetParticipants(2))
	require.NoError(t, b.ToggleAddOn("Porter"))
	require.NoError(t, b.SetCoupon(models.Coupon{Code: "SAVE10", DiscountPercent: 10}))

	q := b.Quote()
	assert.Equal(t, models.Amount(18000), q.UnitPrice)
	assert.Equal(t, models.Amount(38000), q.Subtotal)
	assert.Equal(t, models.Amount(3800), q.Discount)
	assert.Equal(t, models.Amount(34200), q.FullTotal)
	assert.Equal(t, models.Amount(10000), q.AdvanceTotal)
	assert.Equal(t, models.Amount(34200), q.AmountDue)
	assert.Equal(t, models.Amount(4000), q.Savings)
}

func TestQuote_SwitchToAdvanceClearsCoupon(t *testing.T) {
	b := Open(trekPackage(t), DefaultLimits)

	require.NoError(t, b.SetParticipants(2))
	require.NoError(t, b.ToggleAddOn("Porter"))
	require.NoError(t, b.SetCoupon(models.Coupon{Code: "SAVE10", DiscountPercent: 10}))

	b.SetPaymentType(PaymentAdvance)

	assert.Nil(t, b.Coupon())

	q := b.Quote()
	assert.Equal(t, models.Amount(0), q.Discount)
	assert.Equal(t, models.Amount(10000), q.AmountDue)

	// The advance amount is never discounted even if a coupon is
	// somehow reapplied later.
	b.SetPaymentType(PaymentFull)
	q = b.Quote()
	assert.Equal(t, models.Amount(38000), q.AmountDue)
}

func TestSetCoupon_RejectedOnAdvance(t *testing.T) {
	b := Open(trekPackage(t), DefaultLimits)
	b.SetPaymentType(PaymentAdvance)

	err := b.SetCoupon(models.Coupon{Code: "SAVE10", DiscountPercent: 10})
	assert.ErrorIs(t, err, ErrCouponOnAdvance)
	assert.Nil(t, b.Coupon())
}

func TestOpen_ResetsState(t *testing.T) {
	b := Open(trekPackage(t), DefaultLimits)

	assert.Equal(t, 1, b.Participants())
	assert.Equal(t, PaymentFull, b.PaymentType())
	assert.Empty(t, b.AddOns())
	assert.Nil(t, b.Coupon())
}

func TestSetParticipants_RejectsOutOfRange(t *testing.T) {
	b := Open(trekPackage(t), DefaultLimits)
	require.NoError(t, b.SetParticipants(3))

	assert.ErrorIs(t, b.SetParticipants(0), ErrParticipantsOutOfRange)
	assert.ErrorIs(t, b.SetParticipants(21), ErrParticipantsOutOfRange)
	assert.ErrorIs(t, b.SetParticipants(-1), ErrParticipantsOutOfRange)

	// Unchanged after rejections
	assert.Equal(t, 3, b.Participants())
}

func TestToggleAddOn(t *testing.T) {
	b := Open(trekPackage(t), DefaultLimits)

	require.NoError(t, b.ToggleAddOn("Porter"))
	require.NoError(t, b.ToggleAddOn("Insurance"))
	assert.Len(t, b.AddOns(), 2)

	// Toggling again removes
	require.NoError(t, b.ToggleAddOn("Porter"))
	assert.Len(t, b.AddOns(), 1)
	assert.Equal(t, "Insurance", b.AddOns()[0].Name)

	assert.ErrorIs(t, b.ToggleAddOn("Helicopter"), ErrUnknownAddOn)
}

func TestBookingAddOns_QuantityMirrorsParticipants(t *testing.T) {
	b := Open(trekPackage(t), DefaultLimits)
	require.NoError(t, b.SetParticipants(4))
	require.NoError(t, b.ToggleAddOn("Porter"))

	lines := b.BookingAddOns()
	require.Len(t, lines, 1)
	assert.Equal(t, "Porter", lines[0].Name)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, models.Amount(4000), lines[0].Total)
}

func TestUndiscountedTotal_IgnoresCoupon(t *testing.T) {
	b := Open(trekPackage(t), DefaultLimits)
	require.NoError(t, b.SetParticipants(2))
	require.NoError(t, b.ToggleAddOn("Porter"))
	require.NoError(t, b.SetCoupon(models.Coupon{Code: "SAVE10", DiscountPercent: 10}))

	assert.Equal(t, models.Amount(38000), b.UndiscountedTotal())
}

func TestQuote_NoOfferFallsBackToOriginal(t *testing.T) {
	pkg := models.Package{ID: "pkg-2", Name: "City Tour", OriginalPrice: 5000}
	b := Open(pkg, DefaultLimits)

	q := b.Quote()
	assert.Equal(t, models.Amount(5000), q.UnitPrice)
	assert.Equal(t, models.Amount(0), q.Savings)
}

// fakeCouponVerifier scripts upstream coupon verification
type fakeCouponVerifier struct {
	coupon models.Coupon
	result models.Result
}

func (f *fakeCouponVerifier) Verify(ctx context.Context, token string, req models.VerifyCouponRequest) (models.Coupon, models.Result) {
	return f.coupon, f.result
}

func newTestManager(verifier CouponVerifier) *Manager {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewManager(verifier, DefaultLimits, logger)
}

func TestManager_OpenReplacesBasket(t *testing.T) {
	m := newTestManager(&fakeCouponVerifier{})
	sessionID := uuid.New()

	first := m.Open(sessionID, trekPackage(t))
	require.NoError(t, first.SetParticipants(5))

	second := m.Open(sessionID, models.Package{ID: "pkg-2", OriginalPrice: 5000})
	got, err := m.Get(sessionID)
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, 1, got.Participants())
}

func TestManager_GetWithoutOpen(t *testing.T) {
	m := newTestManager(&fakeCouponVerifier{})

	_, err := m.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNoActiveBasket)
}

func TestManager_ApplyCoupon(t *testing.T) {
	sessionID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		m := newTestManager(&fakeCouponVerifier{
			coupon: models.Coupon{Code: "SAVE10", DiscountPercent: 10},
			result: models.Result{Success: true},
		})
		m.Open(sessionID, trekPackage(t))

		result := m.ApplyCoupon(context.Background(), sessionID, "tok", "SAVE10")
		require.True(t, result.Success)

		b, _ := m.Get(sessionID)
		require.NotNil(t, b.Coupon())
		assert.Equal(t, "SAVE10", b.Coupon().Code)
	})

	t.Run("Failure clears prior coupon", func(t *testing.T) {
		verifier := &fakeCouponVerifier{
			coupon: models.Coupon{Code: "SAVE10", DiscountPercent: 10},
			result: models.Result{Success: true},
		}
		m := newTestManager(verifier)
		m.Open(sessionID, trekPackage(t))

		require.True(t, m.ApplyCoupon(context.Background(), sessionID, "tok", "SAVE10").Success)

		verifier.result = models.Result{Success: false, Message: "Coupon expired"}
		result := m.ApplyCoupon(context.Background(), sessionID, "tok", "SAVE10")
		assert.False(t, result.Success)
		assert.Equal(t, "Coupon expired", result.Message)

		b, _ := m.Get(sessionID)
		assert.Nil(t, b.Coupon())
	})

	t.Run("Rejected while advance selected", func(t *testing.T) {
		m := newTestManager(&fakeCouponVerifier{result: models.Result{Success: true}})
		b := m.Open(sessionID, trekPackage(t))
		b.SetPaymentType(PaymentAdvance)

		result := m.ApplyCoupon(context.Background(), sessionID, "tok", "SAVE10")
		assert.False(t, result.Success)
		assert.Equal(t, MsgCouponOnAdvance, result.Message)
	})

	t.Run("No basket", func(t *testing.T) {
		m := newTestManager(&fakeCouponVerifier{})
		result := m.ApplyCoupon(context.Background(), uuid.New(), "tok", "SAVE10")
		assert.False(t, result.Success)
	})
}
