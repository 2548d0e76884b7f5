// Package session owns per-visitor server-side state: who is logged
// in, their display currency and any pending booking intent. It is
// pure persistence; validation happens in the flows that call it.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/pkg/jwt"
)

// ErrSessionNotFound indicates the session token was valid but the
// row no longer exists
var ErrSessionNotFound = errors.New("session not found")

// Repository defines the persistence operations the store needs
type Repository interface {
	Create(userAgent, deviceType string) (*models.Session, error)
	GetByID(sessionID uuid.UUID) (*models.Session, error)
	SaveAuth(sessionID uuid.UUID, customer models.Customer, token string) error
	ClearAuth(sessionID uuid.UUID) error
	SetCurrency(sessionID uuid.UUID, currency string) error
	SetBookingIntent(sessionID uuid.UUID, packageID, redirect string) error
	ClearBookingIntent(sessionID uuid.UUID) error
}

// Store manages browser sessions
type Store struct {
	repo   Repository
	tokens *jwt.Service
	logger *logrus.Logger
}

// NewStore creates a new session store
func NewStore(repo Repository, tokens *jwt.Service, logger *logrus.Logger) *Store {
	return &Store{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// Establish creates a fresh anonymous session for a browser and
// returns it with the signed token to hand back as a cookie.
func (s *Store) Establish(userAgentHeader string) (*models.Session, string, error) {
	deviceType := classifyDevice(userAgentHeader)

	session, err := s.repo.Create(userAgentHeader, deviceType)
	if err != nil {
		return nil, "", fmt.Errorf("failed to establish session: %w", err)
	}

	token, err := s.tokens.GenerateSessionToken(session.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"session_id":  session.ID,
		"device_type": deviceType,
	}).Info("Session established")

	return session, token, nil
}

// Resolve loads the session behind a signed token
func (s *Store) Resolve(signedToken string) (*models.Session, error) {
	claims, err := s.tokens.ValidateSessionToken(signedToken)
	if err != nil {
		return nil, fmt.Errorf("failed to validate session token: %w", err)
	}

	session, err := s.repo.GetByID(claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// Save persists the customer identity and upstream auth token after a
// successful OTP verification.
func (s *Store) Save(sessionID uuid.UUID, customer models.Customer, token string) error {
	if err := s.repo.SaveAuth(sessionID, customer, token); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"customer_id": customer.EffectiveID(),
	}).Info("Session authenticated")

	return nil
}

// Clear logs the session out, removing identity, token and any
// pending booking intent.
func (s *Store) Clear(sessionID uuid.UUID) error {
	if err := s.repo.ClearAuth(sessionID); err != nil {
		return err
	}

	s.logger.WithField("session_id", sessionID).Info("Session cleared")
	return nil
}

// SetCurrency stores the display-currency preference
func (s *Store) SetCurrency(sessionID uuid.UUID, currency string) error {
	return s.repo.SetCurrency(sessionID, currency)
}

// SetBookingIntent records the package a visitor wanted before login
func (s *Store) SetBookingIntent(sessionID uuid.UUID, packageID, redirect string) error {
	return s.repo.SetBookingIntent(sessionID, packageID, redirect)
}

// ClearBookingIntent removes a consumed booking intent
func (s *Store) ClearBookingIntent(sessionID uuid.UUID) error {
	return s.repo.ClearBookingIntent(sessionID)
}

// classifyDevice maps a User-Agent header onto a coarse device type
func classifyDevice(userAgentHeader string) string {
	if userAgentHeader == "" {
		return "unknown"
	}

	ua := user_agent.New(userAgentHeader)
	switch {
	case ua.Bot():
		return "bot"
	case ua.Mobile():
		return "mobile"
	default:
		return "desktop"
	}
}
