package heidelpay

import (
	"context"
	"net/http"

	"github.com/heidelpay/heidelpay-go/models"
	"github.com/heidelpay/heidelpay-go/sdkerr"
)

// CreatePaymentType registers t on the gateway. The id and the fields the
// gateway returns (e.g. the masked card number) are set on t, which is
// returned attached to the client.
func (c *Client) CreatePaymentType(ctx context.Context, t models.PaymentType) (models.PaymentType, error) {
	if t == nil {
		return nil, sdkerr.NewSDKError("payment type is required")
	}
	if t.GetID() != "" {
		return nil, sdkerr.NewSDKErrorf("%T %s has already been created", t, t.GetID())
	}
	if err := models.Validate(t); err != nil {
		return nil, err
	}

	if err := c.send(ctx, http.MethodPost, t.ResourcePath(), t, t); err != nil {
		return nil, err
	}
	if t.GetID() == "" {
		return nil, sdkerr.NewSDKErrorf("gateway returned no id for %T", t)
	}

	t.AttachGateway(c)
	return t, nil
}

// FetchPaymentType loads the payment type with the given id. The concrete
// type is derived from the id, e.g. "s-ppy-…" yields a *models.Prepayment.
func (c *Client) FetchPaymentType(ctx context.Context, id string) (models.PaymentType, error) {
	stub, err := models.PaymentTypeFromID(id)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := c.send(ctx, http.MethodGet, models.URI(stub), nil, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	if _, ok := raw["id"]; !ok {
		raw["id"] = id
	}

	t, err := models.DecodePaymentType(raw)
	if err != nil {
		return nil, err
	}
	t.AttachGateway(c)
	return t, nil
}
