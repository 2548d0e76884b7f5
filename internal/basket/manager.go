package basket

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/internal/upstream"
)

// ErrNoActiveBasket indicates the session has no open basket
var ErrNoActiveBasket = errors.New("no active basket for session")

// MsgCouponOnAdvance is shown when a coupon is applied while advance
// payment is selected.
const MsgCouponOnAdvance = "Coupons can only be applied to full payments."

// CouponVerifier checks a coupon code upstream
type CouponVerifier interface {
	Verify(ctx context.Context, token string, req models.VerifyCouponRequest) (models.Coupon, models.Result)
}

// Manager keeps one basket per session. Opening a basket for a session
// that already has one replaces it.
type Manager struct {
	mu      sync.Mutex
	baskets map[uuid.UUID]*Basket
	coupons CouponVerifier
	limits  Limits
	logger  *logrus.Logger
}

// NewManager creates a basket manager
func NewManager(coupons CouponVerifier, limits Limits, logger *logrus.Logger) *Manager {
	return &Manager{
		baskets: make(map[uuid.UUID]*Basket),
		coupons: coupons,
		limits:  limits,
		logger:  logger,
	}
}

// Open starts a fresh basket for the session, replacing any prior one
func (m *Manager) Open(sessionID uuid.UUID, pkg models.Package) *Basket {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := Open(pkg, m.limits)
	m.baskets[sessionID] = b

	m.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"package_id": pkg.ID,
	}).Info("Basket opened")

	return b
}

// Get returns the session's basket
func (m *Manager) Get(sessionID uuid.UUID) (*Basket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.baskets[sessionID]
	if !ok {
		return nil, ErrNoActiveBasket
	}
	return b, nil
}

// Close discards the session's basket, typically after checkout
func (m *Manager) Close(sessionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.baskets, sessionID)
}

// Update runs fn against the session's basket under the manager lock
func (m *Manager) Update(sessionID uuid.UUID, fn func(*Basket) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.baskets[sessionID]
	if !ok {
		return ErrNoActiveBasket
	}
	return fn(b)
}

// ApplyCoupon verifies a code upstream and applies it to the basket.
// Eligibility is the backend's call. Any failure clears a previously
// applied coupon so a stale discount can never linger.
func (m *Manager) ApplyCoupon(ctx context.Context, sessionID uuid.UUID, authToken, code string) models.Result {
	m.mu.Lock()
	b, ok := m.baskets[sessionID]
	m.mu.Unlock()
	if !ok {
		return models.Result{Success: false, Message: ErrNoActiveBasket.Error()}
	}

	if b.PaymentType() == PaymentAdvance {
		return models.Result{Success: false, Message: MsgCouponOnAdvance}
	}

	coupon, result := m.coupons.Verify(ctx, authToken, models.VerifyCouponRequest{
		Code:      code,
		PackageID: b.Package().ID,
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	if !result.Success {
		b.ClearCoupon()
		return result
	}

	if err := b.SetCoupon(coupon); err != nil {
		b.ClearCoupon()
		return models.Result{Success: false, Message: MsgCouponOnAdvance}
	}

	m.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"coupon":     coupon.Code,
	}).Info("Coupon applied")

	return result
}

var _ CouponVerifier = (*upstream.CouponsClient)(nil)
