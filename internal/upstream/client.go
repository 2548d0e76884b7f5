// Package upstream is the HTTP client for the Wildex REST backend.
// Every endpoint responds with the {success, data?, message?} envelope;
// a response that is not JSON is treated as a hard failure regardless
// of HTTP status. Non-payment operations normalize transport failures
// into failed results with a user-facing message; the payments client
// surfaces errors to its caller instead.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/activity"
	"github.com/opendoorexp/wildex-frontend/internal/models"
)

var (
	// ErrNonJSONResponse indicates the upstream answered with a
	// non-JSON body (typically an HTML error page)
	ErrNonJSONResponse = errors.New("upstream returned a non-JSON response")
)

// MsgNetworkError is shown to the visitor when a request never
// reached the upstream or the response was unusable.
const MsgNetworkError = "Network error. Please try again."

// Config holds configuration for the upstream client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the shared transport for all upstream sub-clients
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracker    *activity.Tracker
	logger     *logrus.Logger
}

// NewClient creates a new upstream client
func NewClient(config Config, tracker *activity.Tracker, logger *logrus.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tracker: tracker,
		logger:  logger,
	}
}

// Auth returns the authentication sub-client
func (c *Client) Auth() *AuthClient { return &AuthClient{client: c} }

// Customers returns the customer profile sub-client
func (c *Client) Customers() *CustomersClient { return &CustomersClient{client: c} }

// Bookings returns the bookings sub-client
func (c *Client) Bookings() *BookingsClient { return &BookingsClient{client: c} }

// Payments returns the payments sub-client
func (c *Client) Payments() *PaymentsClient { return &PaymentsClient{client: c} }

// Packages returns the package catalog sub-client
func (c *Client) Packages() *PackagesClient { return &PackagesClient{client: c} }

// Coupons returns the coupons sub-client
func (c *Client) Coupons() *CouponsClient { return &CouponsClient{client: c} }

// do executes one upstream request and decodes the response envelope.
// The activity tracker is incremented for the duration of the call and
// decremented exactly once on every path.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (*models.Envelope, error) {
	c.tracker.Begin()
	defer c.tracker.End()

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	return c.execute(req, method, path)
}

// doMultipart executes an upstream request with a multipart form body
func (c *Client) doMultipart(ctx context.Context, method, path, token string, form *bytes.Buffer, contentType string) (*models.Envelope, error) {
	c.tracker.Begin()
	defer c.tracker.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, form)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	return c.execute(req, method, path)
}

func (c *Client) execute(req *http.Request, method, path string) (*models.Envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Error("Upstream request failed")
		return nil, fmt.Errorf("failed to reach upstream: %w", err)
	}
	defer resp.Body.Close()

	// Every upstream response must be JSON. An HTML error page from a
	// proxy or crash is a failure even when the status is 200.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		c.logger.WithFields(logrus.Fields{
			"method":       method,
			"path":         path,
			"status":       resp.StatusCode,
			"content_type": contentType,
		}).Error("Upstream returned non-JSON response")
		return nil, ErrNonJSONResponse
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope models.Envelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response body: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"success": envelope.Success,
	}).Debug("Upstream request completed")

	return &envelope, nil
}

// call executes a request and normalizes transport failures into a
// failed result carrying a user-facing message. Used by every
// sub-client except payments.
func (c *Client) call(ctx context.Context, method, path, token string, body interface{}) models.Result {
	envelope, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return models.Result{Success: false, Message: MsgNetworkError}
	}

	return models.Result{
		Success: envelope.Success,
		Message: envelope.Message,
		Data:    envelope.Data,
	}
}

// decodeData unmarshals a result's data payload into out.
// A missing payload on a successful result is left as the zero value.
func decodeData(result models.Result, out interface{}) error {
	if len(result.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("failed to decode upstream payload: %w", err)
	}
	return nil
}

// buildMultipartForm builds a multipart body from fields plus an
// optional file part.
func buildMultipartForm(fields map[string]string, fileField, fileName string, file io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	if file != nil && fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", fmt.Errorf("failed to copy file into form: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
