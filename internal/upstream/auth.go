package upstream

import (
	"context"
	"encoding/json"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// AuthClient handles OTP login and registration endpoints
type AuthClient struct {
	client *Client
}

// SendOTPResult is the outcome of an OTP send. On success the upstream
// issues a temporary customer id that must accompany verification.
type SendOTPResult struct {
	models.Result
	TempCustomerID string
}

// VerifyOTPResult is the outcome of an OTP verification. On success it
// carries the authenticated customer and the upstream auth token.
type VerifyOTPResult struct {
	models.Result
	Customer models.Customer
	Token    string
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	CustomerID string `json:"customerId"`
	Phone      string `json:"phone"`
	OTP        string `json:"otp"`
}

// SendOTP requests a login OTP for an existing customer's phone
func (a *AuthClient) SendOTP(ctx context.Context, phone string) SendOTPResult {
	return a.sendOTP(ctx, routeLoginSendOTP, phone)
}

// SendRegistrationOTP requests an OTP for a new customer's phone
func (a *AuthClient) SendRegistrationOTP(ctx context.Context, phone string) SendOTPResult {
	return a.sendOTP(ctx, routeSendOTP, phone)
}

func (a *AuthClient) sendOTP(ctx context.Context, route, phone string) SendOTPResult {
	result := a.client.call(ctx, "POST", route, "", sendOTPRequest{Phone: phone})
	out := SendOTPResult{Result: result}
	if !result.Success {
		return out
	}

	// The temporary id arrives as customerId or _id depending on the
	// endpoint.
	var payload struct {
		CustomerID string `json:"customerId"`
		ID         string `json:"_id"`
	}
	if err := decodeData(result, &payload); err == nil {
		out.TempCustomerID = payload.CustomerID
		if out.TempCustomerID == "" {
			out.TempCustomerID = payload.ID
		}
	}
	return out
}

// VerifyOTP verifies a login OTP
func (a *AuthClient) VerifyOTP(ctx context.Context, customerID, phone, otp string) VerifyOTPResult {
	return a.verifyOTP(ctx, routeLoginVerifyOTP, customerID, phone, otp)
}

// VerifyRegistrationOTP verifies a registration OTP
func (a *AuthClient) VerifyRegistrationOTP(ctx context.Context, customerID, phone, otp string) VerifyOTPResult {
	return a.verifyOTP(ctx, routeVerifyOTP, customerID, phone, otp)
}

func (a *AuthClient) verifyOTP(ctx context.Context, route, customerID, phone, otp string) VerifyOTPResult {
	body := verifyOTPRequest{CustomerID: customerID, Phone: phone, OTP: otp}

	envelope, err := a.client.do(ctx, "POST", route, "", body)
	if err != nil {
		return VerifyOTPResult{Result: models.Result{Success: false, Message: MsgNetworkError}}
	}

	out := VerifyOTPResult{
		Result: models.Result{
			Success: envelope.Success,
			Message: envelope.Message,
			Data:    envelope.Data,
		},
		Token: envelope.Token,
	}
	if !envelope.Success {
		return out
	}

	// The customer record sits either beside the token or under data.
	if len(envelope.Customer) > 0 {
		_ = json.Unmarshal(envelope.Customer, &out.Customer)
	} else if len(envelope.Data) > 0 {
		var payload struct {
			Token    string          `json:"token"`
			Customer json.RawMessage `json:"customer"`
		}
		if err := json.Unmarshal(envelope.Data, &payload); err == nil {
			if out.Token == "" {
				out.Token = payload.Token
			}
			if len(payload.Customer) > 0 {
				_ = json.Unmarshal(payload.Customer, &out.Customer)
			} else {
				_ = json.Unmarshal(envelope.Data, &out.Customer)
			}
		}
	}

	return out
}
