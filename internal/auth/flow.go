// Package auth drives the OTP login and registration flow for a
// session: phone entry, OTP entry, resend countdown and session
// persistence on success.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/internal/upstream"
	"github.com/opendoorexp/wildex-frontend/pkg/validator"
)

// Step is the visitor's position in the flow
type Step string

const (
	StepPhoneEntry Step = "phone-entry"
	StepOTPEntry   Step = "otp-entry"
)

// Mode selects login or registration endpoints
type Mode string

const (
	ModeLogin        Mode = "login"
	ModeRegistration Mode = "registration"
)

// OTPCountdownSeconds is how long the visitor waits before resending
const OTPCountdownSeconds = 120

// User-facing messages
const (
	MsgInvalidPhone     = "Please enter a valid 10-digit mobile number."
	MsgInvalidOTP       = "Please enter the 4-digit OTP."
	MsgSessionExpired   = "Session expired. Please request a new OTP."
	MsgConnectionError  = "Network error. Please check your connection."
	MsgSendOTPFailed    = "Failed to send OTP. Please try again."
	MsgVerifyOTPFailed  = "OTP verification failed. Please try again."
	MsgPhoneRequired    = "Please enter your mobile number first."
	defaultRedirectPath = "/"
)

// API is the slice of the upstream client the flow needs
type API interface {
	SendOTP(ctx context.Context, phone string) upstream.SendOTPResult
	SendRegistrationOTP(ctx context.Context, phone string) upstream.SendOTPResult
	VerifyOTP(ctx context.Context, customerID, phone, otp string) upstream.VerifyOTPResult
	VerifyRegistrationOTP(ctx context.Context, customerID, phone, otp string) upstream.VerifyOTPResult
}

// SessionSaver persists the authenticated customer on the session
type SessionSaver interface {
	Save(sessionID uuid.UUID, customer models.Customer, token string) error
}

// Outcome is the result of a flow operation, shaped for the UI
type Outcome struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Step     Step   `json:"step"`
	Redirect string `json:"redirect,omitempty"`
}

// state is one session's flow position
type state struct {
	mode           Mode
	step           Step
	phone          string
	tempCustomerID string
	otpSentAt      time.Time
	redirect       string
}

// Flow manages auth flow state per session
type Flow struct {
	mu       sync.Mutex
	states   map[uuid.UUID]*state
	api      API
	sessions SessionSaver
	phones   *validator.PhoneValidator
	otps     *validator.OTPValidator
	clock    func() time.Time
	logger   *logrus.Logger
}

// NewFlow creates an auth flow controller
func NewFlow(api API, sessions SessionSaver, logger *logrus.Logger) *Flow {
	return &Flow{
		states:   make(map[uuid.UUID]*state),
		api:      api,
		sessions: sessions,
		phones:   validator.NewPhoneValidator(),
		otps:     validator.NewOTPValidator(),
		clock:    time.Now,
		logger:   logger,
	}
}

// SetClock replaces the time source, for tests
func (f *Flow) SetClock(clock func() time.Time) {
	f.clock = clock
}

// Begin puts a session at phone entry. The redirect hint says where to
// send the visitor after a successful login, typically back to the
// booking they were starting.
func (f *Flow) Begin(sessionID uuid.UUID, mode Mode, redirect string) Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.states[sessionID] = &state{
		mode:     mode,
		step:     StepPhoneEntry,
		redirect: redirect,
	}
	return Outcome{Success: true, Step: StepPhoneEntry}
}

// SubmitPhone validates the phone and requests an OTP. An invalid
// phone never reaches the network.
func (f *Flow) SubmitPhone(ctx context.Context, sessionID uuid.UUID, phone string) Outcome {
	f.mu.Lock()
	st := f.ensureState(sessionID)
	f.mu.Unlock()

	sanitized, err := f.phones.Validate(phone)
	if err != nil {
		return Outcome{Success: false, Message: MsgInvalidPhone, Step: st.step}
	}

	result := f.sendOTP(ctx, st.mode, sanitized)
	if !result.Success {
		message := result.Message
		if message == upstream.MsgNetworkError {
			message = MsgConnectionError
		}
		if message == "" {
			message = MsgSendOTPFailed
		}
		return Outcome{Success: false, Message: message, Step: st.step}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	st.phone = sanitized
	st.tempCustomerID = result.TempCustomerID
	st.otpSentAt = f.clock()
	st.step = StepOTPEntry

	f.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"mode":       st.mode,
	}).Info("OTP sent")

	return Outcome{Success: true, Step: StepOTPEntry}
}

// SubmitOTP verifies the code. Success persists the session and
// reports where to redirect; failures keep the visitor at OTP entry
// with the server's message.
func (f *Flow) SubmitOTP(ctx context.Context, sessionID uuid.UUID, otp string) Outcome {
	f.mu.Lock()
	st := f.ensureState(sessionID)
	f.mu.Unlock()

	code, err := f.otps.Validate(otp)
	if err != nil {
		return Outcome{Success: false, Message: MsgInvalidOTP, Step: st.step}
	}

	// Without the temporary id verification cannot succeed; start over
	if st.tempCustomerID == "" {
		f.mu.Lock()
		st.step = StepPhoneEntry
		f.mu.Unlock()
		return Outcome{Success: false, Message: MsgSessionExpired, Step: StepPhoneEntry}
	}

	result := f.verifyOTP(ctx, st.mode, st.tempCustomerID, st.phone, code)
	if !result.Success {
		message := result.Message
		if message == upstream.MsgNetworkError {
			message = MsgConnectionError
		}
		if message == "" {
			message = MsgVerifyOTPFailed
		}
		return Outcome{Success: false, Message: message, Step: st.step}
	}

	if err := f.sessions.Save(sessionID, result.Customer, result.Token); err != nil {
		f.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to persist authenticated session")
		return Outcome{Success: false, Message: MsgVerifyOTPFailed, Step: st.step}
	}

	redirect := st.redirect
	if redirect == "" {
		redirect = defaultRedirectPath
	}

	f.mu.Lock()
	delete(f.states, sessionID)
	f.mu.Unlock()

	f.logger.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"customer_id": result.Customer.EffectiveID(),
	}).Info("OTP verified, session authenticated")

	return Outcome{Success: true, Step: StepOTPEntry, Redirect: redirect}
}

// Resend re-sends the OTP and restarts the countdown. Without a phone
// on record the visitor is sent back to phone entry.
func (f *Flow) Resend(ctx context.Context, sessionID uuid.UUID) Outcome {
	f.mu.Lock()
	st := f.ensureState(sessionID)
	phone := st.phone
	f.mu.Unlock()

	if phone == "" {
		f.mu.Lock()
		st.step = StepPhoneEntry
		f.mu.Unlock()
		return Outcome{Success: false, Message: MsgPhoneRequired, Step: StepPhoneEntry}
	}

	return f.SubmitPhone(ctx, sessionID, phone)
}

// Countdown reports the resend countdown for the UI: the remaining
// time as "m:ss", blank once it reaches zero, and whether resend is
// enabled.
func (f *Flow) Countdown(sessionID uuid.UUID) (display string, resendEnabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.states[sessionID]
	if !ok || st.step != StepOTPEntry || st.otpSentAt.IsZero() {
		return "", true
	}

	elapsed := int(f.clock().Sub(st.otpSentAt).Seconds())
	remaining := OTPCountdownSeconds - elapsed
	if remaining <= 0 {
		return "", true
	}

	return fmt.Sprintf("%d:%02d", remaining/60, remaining%60), false
}

// Step returns the session's current flow step
func (f *Flow) Step(sessionID uuid.UUID) Step {
	f.mu.Lock()
	defer f.mu.Unlock()

	if st, ok := f.states[sessionID]; ok {
		return st.step
	}
	return StepPhoneEntry
}

func (f *Flow) ensureState(sessionID uuid.UUID) *state {
	st, ok := f.states[sessionID]
	if !ok {
		st = &state{mode: ModeLogin, step: StepPhoneEntry}
		f.states[sessionID] = st
	}
	return st
}

func (f *Flow) sendOTP(ctx context.Context, mode Mode, phone string) upstream.SendOTPResult {
	if mode == ModeRegistration {
		return f.api.SendRegistrationOTP(ctx, phone)
	}
	return f.api.SendOTP(ctx, phone)
}

func (f *Flow) verifyOTP(ctx context.Context, mode Mode, customerID, phone, otp string) upstream.VerifyOTPResult {
	if mode == ModeRegistration {
		return f.api.VerifyRegistrationOTP(ctx, customerID, phone, otp)
	}
	return f.api.VerifyOTP(ctx, customerID, phone, otp)
}
