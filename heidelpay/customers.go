package heidelpay

import (
	"context"
	"net/http"

	"github.com/heidelpay/heidelpay-go/models"
	"github.com/heidelpay/heidelpay-go/sdkerr"
)

type idResponse struct {
	ID string `json:"id"`
}

func (c *Client) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer == nil {
		return nil, sdkerr.NewSDKError("customer is required")
	}
	if customer.ID != "" {
		return nil, sdkerr.NewSDKErrorf("customer %s has already been created", customer.ID)
	}
	if err := models.Validate(customer); err != nil {
		return nil, err
	}

	var resp idResponse
	if err := c.send(ctx, http.MethodPost, customer.ResourcePath(), customer, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, sdkerr.NewSDKError("gateway returned no customer id")
	}

	customer.ID = resp.ID
	customer.AttachGateway(c)
	return customer, nil
}

func (c *Client) FetchCustomer(ctx context.Context, id string) (*models.Customer, error) {
	if id == "" {
		return nil, sdkerr.NewSDKError("customer id is required")
	}

	customer := &models.Customer{ID: id}
	if err := c.send(ctx, http.MethodGet, models.URI(customer), nil, customer); err != nil {
		return nil, err
	}
	customer.AttachGateway(c)
	return customer, nil
}

// UpdateCustomer replaces the stored customer data with customer's.
func (c *Client) UpdateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer == nil || customer.ID == "" {
		return nil, sdkerr.NewSDKError("customer id is required to update a customer")
	}
	if err := models.Validate(customer); err != nil {
		return nil, err
	}

	if err := c.send(ctx, http.MethodPut, models.URI(customer), customer, &idResponse{}); err != nil {
		return nil, err
	}
	customer.AttachGateway(c)
	return customer, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	if id == "" {
		return sdkerr.NewSDKError("customer id is required")
	}
	return c.send(ctx, http.MethodDelete, models.URI(&models.Customer{ID: id}), nil, nil)
}
