package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one browser session's server-side state. It is the
// persistence record behind authentication, currency preference and
// pending booking intent; basket and checkout state live in memory.
type Session struct {
	ID            uuid.UUID `json:"id" db:"id"`
	AuthToken     *string   `json:"-" db:"auth_token"`
	CustomerID    *string   `json:"customer_id,omitempty" db:"customer_id"`
	CustomerName  *string   `json:"customer_name,omitempty" db:"customer_name"`
	CustomerPhone *string   `json:"customer_phone,omitempty" db:"customer_phone"`
	CustomerEmail *string   `json:"customer_email,omitempty" db:"customer_email"`
	Avatar        *string   `json:"avatar,omitempty" db:"avatar"`
	Currency      string    `json:"currency" db:"currency"`

	// Booking intent captured before a login redirect
	PendingPackageID   *string `json:"pending_package_id,omitempty" db:"pending_package_id"`
	RedirectAfterLogin *string `json:"redirect_after_login,omitempty" db:"redirect_after_login"`

	UserAgent  *string   `json:"-" db:"user_agent"`
	DeviceType *string   `json:"-" db:"device_type"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// IsAuthenticated reports whether the session holds both an auth token
// and a customer id. Both are required; one without the other counts
// as logged out.
func (s *Session) IsAuthenticated() bool {
	return s.AuthToken != nil && *s.AuthToken != "" &&
		s.CustomerID != nil && *s.CustomerID != ""
}

// Token returns the upstream auth token or an empty string
func (s *Session) Token() string {
	if s.AuthToken == nil {
		return ""
	}
	return *s.AuthToken
}

// CurrentCustomerID returns the customer id or an empty string
func (s *Session) CurrentCustomerID() string {
	if s.CustomerID == nil {
		return ""
	}
	return *s.CustomerID
}
