package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

const sessionColumns = `id, auth_token, customer_id, customer_name, customer_phone,
		customer_email, avatar, currency, pending_package_id, redirect_after_login,
		user_agent, device_type, created_at, updated_at`

// SessionRepository handles browser session database operations
type SessionRepository struct {
	db DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

// Create inserts a fresh anonymous session row
func (r *SessionRepository) Create(userAgent, deviceType string) (*models.Session, error) {
	query := `
		INSERT INTO sessions (
			id, currency, user_agent, device_type, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING ` + sessionColumns

	now := time.Now()
	sessionID := uuid.New()

	session := &models.Session{}
	err := r.scanSession(r.db.QueryRow(
		query,
		sessionID,
		"INR",
		nullString(userAgent),
		nullString(deviceType),
		now,
		now,
	), session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetByID retrieves a session by id. Returns nil when no row exists.
func (r *SessionRepository) GetByID(sessionID uuid.UUID) (*models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = $1
		LIMIT 1
	`

	session := &models.Session{}
	err := r.scanSession(r.db.QueryRow(query, sessionID), session)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// SaveAuth stores the customer identity and upstream auth token on a
// session after successful OTP verification.
func (r *SessionRepository) SaveAuth(sessionID uuid.UUID, customer models.Customer, token string) error {
	query := `
		UPDATE sessions
		SET auth_token = $2,
		    customer_id = $3,
		    customer_name = $4,
		    customer_phone = $5,
		    customer_email = $6,
		    avatar = $7,
		    updated_at = $8
		WHERE id = $1
	`

	avatar := customer.Avatar
	if avatar == "" {
		avatar = customer.ProfileImage
	}

	_, err := r.db.Exec(
		query,
		sessionID,
		nullString(token),
		nullString(customer.EffectiveID()),
		nullString(customer.Name),
		nullString(customer.Phone),
		nullString(customer.Email),
		nullString(avatar),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session auth: %w", err)
	}

	return nil
}

// ClearAuth removes the customer identity, token and booking intent
// from a session (logout). The row itself survives so currency and
// device info persist.
func (r *SessionRepository) ClearAuth(sessionID uuid.UUID) error {
	query := `
		UPDATE sessions
		SET auth_token = NULL,
		    customer_id = NULL,
		    customer_name = NULL,
		    customer_phone = NULL,
		    customer_email = NULL,
		    avatar = NULL,
		    pending_package_id = NULL,
		    redirect_after_login = NULL,
		    updated_at = $2
		WHERE id = $1
	`

	_, err := r.db.Exec(query, sessionID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to clear session auth: %w", err)
	}

	return nil
}

// SetCurrency stores the display-currency preference
func (r *SessionRepository) SetCurrency(sessionID uuid.UUID, currency string) error {
	query := `
		UPDATE sessions
		SET currency = $2,
		    updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.Exec(query, sessionID, currency, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set session currency: %w", err)
	}

	return nil
}

// SetBookingIntent records the package a visitor tried to book before
// being sent to login, plus where to send them afterwards.
func (r *SessionRepository) SetBookingIntent(sessionID uuid.UUID, packageID, redirect string) error {
	query := `
		UPDATE sessions
		SET pending_package_id = $2,
		    redirect_after_login = $3,
		    updated_at = $4
		WHERE id = $1
	`

	_, err := r.db.Exec(query, sessionID, nullString(packageID), nullString(redirect), time.Now())
	if err != nil {
		return fmt.Errorf("failed to set booking intent: %w", err)
	}

	return nil
}

// ClearBookingIntent removes a consumed booking intent
func (r *SessionRepository) ClearBookingIntent(sessionID uuid.UUID) error {
	query := `
		UPDATE sessions
		SET pending_package_id = NULL,
		    redirect_after_login = NULL,
		    updated_at = $2
		WHERE id = $1
	`

	_, err := r.db.Exec(query, sessionID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to clear booking intent: %w", err)
	}

	return nil
}

// CleanupStaleSessions removes anonymous sessions idle longer than the
// given duration.
func (r *SessionRepository) CleanupStaleSessions(olderThan time.Duration) (int64, error) {
	cutoffTime := time.Now().Add(-olderThan)

	query := `
		DELETE FROM sessions
		WHERE auth_token IS NULL AND updated_at < $1
	`

	result, err := r.db.Exec(query, cutoffTime)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup stale sessions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *SessionRepository) scanSession(row *sql.Row, session *models.Session) error {
	return row.Scan(
		&session.ID,
		&session.AuthToken,
		&session.CustomerID,
		&session.CustomerName,
		&session.CustomerPhone,
		&session.CustomerEmail,
		&session.Avatar,
		&session.Currency,
		&session.PendingPackageID,
		&session.RedirectAfterLogin,
		&session.UserAgent,
		&session.DeviceType,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
}

// nullString returns sql.NullString for empty strings
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
