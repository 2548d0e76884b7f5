package upstream

import (
	"context"
	"io"

	"github.com/opendoorexp/wildex-frontend/internal/models"
)

// CustomersClient handles customer profile endpoints
type CustomersClient struct {
	client *Client
}

// GetProfile fetches a customer's profile
func (c *CustomersClient) GetProfile(ctx context.Context, token, customerID string) (models.Customer, models.Result) {
	path := buildPath(routeCustomerByID, map[string]string{"id": customerID})
	result := c.client.call(ctx, "GET", path, token, nil)

	var customer models.Customer
	if result.Success {
		if err := decodeData(result, &customer); err != nil {
			return customer, models.Result{Success: false, Message: MsgNetworkError}
		}
	}
	return customer, result
}

// UpdateProfile updates profile fields, forwarding an optional avatar
// file, as a multipart form.
func (c *CustomersClient) UpdateProfile(ctx context.Context, token, customerID string, req models.UpdateProfileRequest, avatarName string, avatar io.Reader) models.Result {
	fields := map[string]string{
		"name":  req.Name,
		"email": req.Email,
	}

	form, contentType, err := buildMultipartForm(fields, "avatar", avatarName, avatar)
	if err != nil {
		return models.Result{Success: false, Message: MsgNetworkError}
	}

	path := buildPath(routeCustomerByID, map[string]string{"id": customerID})
	envelope, err := c.client.doMultipart(ctx, "PUT", path, token, form, contentType)
	if err != nil {
		return models.Result{Success: false, Message: MsgNetworkError}
	}

	return models.Result{
		Success: envelope.Success,
		Message: envelope.Message,
		Data:    envelope.Data,
	}
}

// GetWishlist fetches the customer's wishlisted packages
func (c *CustomersClient) GetWishlist(ctx context.Context, token, customerID string) ([]models.Package, models.Result) {
	path := buildPath(routeCustomerWishlist, map[string]string{"id": customerID})
	result := c.client.call(ctx, "GET", path, token, nil)

	var packages []models.Package
	if result.Success {
		if err := decodeData(result, &packages); err != nil {
			return nil, models.Result{Success: false, Message: MsgNetworkError}
		}
	}
	return packages, result
}
