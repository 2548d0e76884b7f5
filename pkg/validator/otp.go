package validator

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyOTP indicates the OTP is empty
	ErrEmptyOTP = errors.New("OTP cannot be empty")

	// ErrInvalidOTPLength indicates the OTP is not 4 digits
	ErrInvalidOTPLength = errors.New("OTP must be exactly 4 digits")

	// ErrInvalidOTPFormat indicates the OTP contains non-digit characters
	ErrInvalidOTPFormat = errors.New("OTP can only contain digits")
)

// OTPValidator handles one-time password validation.
// The verification UI collects a 4-digit code.
type OTPValidator struct{}

// NewOTPValidator creates a new OTP validator instance
func NewOTPValidator() *OTPValidator {
	return &OTPValidator{}
}

// Validate validates a 4-digit OTP
// Returns the trimmed OTP and error if invalid
func (v *OTPValidator) Validate(otp string) (string, error) {
	trimmed := strings.TrimSpace(otp)

	if trimmed == "" {
		return "", ErrEmptyOTP
	}

	if !phoneRegex.MatchString(trimmed) {
		return "", ErrInvalidOTPFormat
	}

	if len(trimmed) != 4 {
		return "", ErrInvalidOTPLength
	}

	return trimmed, nil
}

// IsValid is a convenience method that returns true if the OTP is valid
func (v *OTPValidator) IsValid(otp string) bool {
	_, err := v.Validate(otp)
	return err == nil
}
