package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/internal/upstream"
)

// fakeAPI scripts upstream auth responses and records calls
type fakeAPI struct {
	sendResult   upstream.SendOTPResult
	verifyResult upstream.VerifyOTPResult
	sendCalls    int
	verifyCalls  int
}

func (f *fakeAPI) SendOTP(ctx context.Context, phone string) upstream.SendOTPResult {
	f.sendCalls++
	return f.sendResult
}

func (f *fakeAPI) SendRegistrationOTP(ctx context.Context, phone string) upstream.SendOTPResult {
	f.sendCalls++
	return f.sendResult
}

func (f *fakeAPI) VerifyOTP(ctx context.Context, customerID, phone, otp string) upstream.VerifyOTPResult {
	f.verifyCalls++
	return f.verifyResult
}

func (f *fakeAPI) VerifyRegistrationOTP(ctx context.Context, customerID, phone, otp string) upstream.VerifyOTPResult {
	f.verifyCalls++
	return f.verifyResult
}

// fakeSaver records session persistence
type fakeSaver struct {
	saved    bool
	customer models.Customer
	token    string
	err      error
}

func (f *fakeSaver) Save(sessionID uuid.UUID, customer models.Customer, token string) error {
	if f.err != nil {
		return f.err
	}
	f.saved = true
	f.customer = customer
	f.token = token
	return nil
}

func okSend() upstream.SendOTPResult {
	return upstream.SendOTPResult{
		Result:         models.Result{Success: true},
		TempCustomerID: "tmp-1",
	}
}

func okVerify() upstream.VerifyOTPResult {
	return upstream.VerifyOTPResult{
		Result:   models.Result{Success: true},
		Customer: models.Customer{CustomerID: "cust-1", Name: "Asha", Phone: "9876543210"},
		Token:    "upstream-tok",
	}
}

func newTestFlow(api API, saver SessionSaver) *Flow {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewFlow(api, saver, logger)
}

func TestSubmitPhone_InvalidPhoneNeverHitsNetwork(t *testing.T) {
	api := &fakeAPI{sendResult: okSend()}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")

	out := flow.SubmitPhone(context.Background(), sessionID, "12345")
	assert.False(t, out.Success)
	assert.Equal(t, MsgInvalidPhone, out.Message)
	assert.Equal(t, StepPhoneEntry, out.Step)
	assert.Equal(t, 0, api.sendCalls)
}

func TestSubmitPhone_SuccessAdvancesToOTPEntry(t *testing.T) {
	api := &fakeAPI{sendResult: okSend()}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")

	out := flow.SubmitPhone(context.Background(), sessionID, "98765 43210")
	require.True(t, out.Success)
	assert.Equal(t, StepOTPEntry, out.Step)
	assert.Equal(t, 1, api.sendCalls)
}

func TestSubmitPhone_NetworkFailureKeepsStep(t *testing.T) {
	api := &fakeAPI{sendResult: upstream.SendOTPResult{
		Result: models.Result{Success: false, Message: upstream.MsgNetworkError},
	}}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")

	out := flow.SubmitPhone(context.Background(), sessionID, "9876543210")
	assert.False(t, out.Success)
	assert.Equal(t, MsgConnectionError, out.Message)
	assert.Equal(t, StepPhoneEntry, out.Step)
}

func TestCountdown(t *testing.T) {
	api := &fakeAPI{sendResult: okSend()}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	now := base
	flow.SetClock(func() time.Time { return now })

	require.True(t, flow.SubmitPhone(context.Background(), sessionID, "9876543210").Success)

	display, resend := flow.Countdown(sessionID)
	assert.Equal(t, "2:00", display)
	assert.False(t, resend)

	now = base.Add(55 * time.Second)
	display, resend = flow.Countdown(sessionID)
	assert.Equal(t, "1:05", display)
	assert.False(t, resend)

	now = base.Add(115 * time.Second)
	display, resend = flow.Countdown(sessionID)
	assert.Equal(t, "0:05", display)
	assert.False(t, resend)

	// After 125 seconds the display is blank and resend is enabled
	now = base.Add(125 * time.Second)
	display, resend = flow.Countdown(sessionID)
	assert.Equal(t, "", display)
	assert.True(t, resend)
}

func TestResend_RestartsCountdown(t *testing.T) {
	api := &fakeAPI{sendResult: okSend()}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	now := base
	flow.SetClock(func() time.Time { return now })

	require.True(t, flow.SubmitPhone(context.Background(), sessionID, "9876543210").Success)

	now = base.Add(130 * time.Second)
	out := flow.Resend(context.Background(), sessionID)
	require.True(t, out.Success)
	assert.Equal(t, 2, api.sendCalls)

	display, resend := flow.Countdown(sessionID)
	assert.Equal(t, "2:00", display)
	assert.False(t, resend)
}

func TestResend_WithoutPhoneDropsToPhoneEntry(t *testing.T) {
	api := &fakeAPI{sendResult: okSend()}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")

	out := flow.Resend(context.Background(), sessionID)
	assert.False(t, out.Success)
	assert.Equal(t, StepPhoneEntry, out.Step)
	assert.Equal(t, MsgPhoneRequired, out.Message)
	assert.Equal(t, 0, api.sendCalls)
}

func TestSubmitOTP_Success(t *testing.T) {
	api := &fakeAPI{sendResult: okSend(), verifyResult: okVerify()}
	saver := &fakeSaver{}
	flow := newTestFlow(api, saver)
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "/packages/pkg-1")

	require.True(t, flow.SubmitPhone(context.Background(), sessionID, "9876543210").Success)

	out := flow.SubmitOTP(context.Background(), sessionID, "1234")
	require.True(t, out.Success)
	assert.Equal(t, "/packages/pkg-1", out.Redirect)
	assert.True(t, saver.saved)
	assert.Equal(t, "cust-1", saver.customer.EffectiveID())
	assert.Equal(t, "upstream-tok", saver.token)
}

func TestSubmitOTP_DefaultRedirect(t *testing.T) {
	api := &fakeAPI{sendResult: okSend(), verifyResult: okVerify()}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")

	require.True(t, flow.SubmitPhone(context.Background(), sessionID, "9876543210").Success)

	out := flow.SubmitOTP(context.Background(), sessionID, "1234")
	require.True(t, out.Success)
	assert.Equal(t, "/", out.Redirect)
}

func TestSubmitOTP_InvalidCodeNeverHitsNetwork(t *testing.T) {
	api := &fakeAPI{sendResult: okSend(), verifyResult: okVerify()}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")
	require.True(t, flow.SubmitPhone(context.Background(), sessionID, "9876543210").Success)

	out := flow.SubmitOTP(context.Background(), sessionID, "12")
	assert.False(t, out.Success)
	assert.Equal(t, MsgInvalidOTP, out.Message)
	assert.Equal(t, StepOTPEntry, out.Step)
	assert.Equal(t, 0, api.verifyCalls)
}

func TestSubmitOTP_LostTempIDDropsToPhoneEntry(t *testing.T) {
	api := &fakeAPI{
		sendResult:   upstream.SendOTPResult{Result: models.Result{Success: true}},
		verifyResult: okVerify(),
	}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")

	// Send succeeded but the upstream returned no temporary id
	require.True(t, flow.SubmitPhone(context.Background(), sessionID, "9876543210").Success)

	out := flow.SubmitOTP(context.Background(), sessionID, "1234")
	assert.False(t, out.Success)
	assert.Equal(t, MsgSessionExpired, out.Message)
	assert.Equal(t, StepPhoneEntry, out.Step)
	assert.Equal(t, StepPhoneEntry, flow.Step(sessionID))
	assert.Equal(t, 0, api.verifyCalls)
}

func TestSubmitOTP_ServerMessagePassedThrough(t *testing.T) {
	api := &fakeAPI{
		sendResult: okSend(),
		verifyResult: upstream.VerifyOTPResult{
			Result: models.Result{Success: false, Message: "Invalid OTP"},
		},
	}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")
	require.True(t, flow.SubmitPhone(context.Background(), sessionID, "9876543210").Success)

	out := flow.SubmitOTP(context.Background(), sessionID, "9999")
	assert.False(t, out.Success)
	assert.Equal(t, "Invalid OTP", out.Message)
	assert.Equal(t, StepOTPEntry, out.Step)
}

func TestSubmitOTP_NetworkFailureKeepsStep(t *testing.T) {
	api := &fakeAPI{
		sendResult: okSend(),
		verifyResult: upstream.VerifyOTPResult{
			Result: models.Result{Success: false, Message: upstream.MsgNetworkError},
		},
	}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeLogin, "")
	require.True(t, flow.SubmitPhone(context.Background(), sessionID, "9876543210").Success)

	out := flow.SubmitOTP(context.Background(), sessionID, "1234")
	assert.False(t, out.Success)
	assert.Equal(t, MsgConnectionError, out.Message)
	assert.Equal(t, StepOTPEntry, out.Step)
}

func TestRegistrationModeUsesRegistrationEndpoints(t *testing.T) {
	api := &fakeAPI{sendResult: okSend(), verifyResult: okVerify()}
	flow := newTestFlow(api, &fakeSaver{})
	sessionID := uuid.New()
	flow.Begin(sessionID, ModeRegistration, "")

	require.True(t, flow.SubmitPhone(context.Background(), sessionID, "9876543210").Success)
	require.True(t, flow.SubmitOTP(context.Background(), sessionID, "1234").Success)
	assert.Equal(t, 1, api.sendCalls)
	assert.Equal(t, 1, api.verifyCalls)
}
