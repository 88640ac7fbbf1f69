package heidelpay

import (
	"context"
	"net/http"

	"github.com/heidelpay/heidelpay-go/models"
	"github.com/heidelpay/heidelpay-go/sdkerr"
)

// FetchPayment loads a payment together with its payment type, customer
// and the list of its transactions.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	if paymentID == "" {
		return nil, sdkerr.NewSDKError("payment id is required")
	}

	payment := &models.Payment{ID: paymentID}
	if err := c.send(ctx, http.MethodGet, models.URI(payment), nil, payment); err != nil {
		return nil, err
	}
	payment.AttachGateway(c)

	if err := payment.ResolveTransactions(); err != nil {
		return nil, err
	}

	if typeID := payment.Resources.TypeID; typeID != "" {
		paymentType, err := c.FetchPaymentType(ctx, typeID)
		if err != nil {
			return nil, err
		}
		payment.PaymentType = paymentType
	}
	if customerID := payment.Resources.CustomerID; customerID != "" {
		customer, err := c.FetchCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		payment.Customer = customer
	}

	return payment, nil
}

func (c *Client) FetchAuthorization(ctx context.Context, paymentID string) (*models.Authorization, error) {
	payment, err := c.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Authorization == nil {
		return nil, sdkerr.NewSDKErrorf("payment %s has no authorization", paymentID)
	}

	authorization := &models.Authorization{Cancellations: payment.Authorization.Cancellations}
	if err := c.fetchTransaction(ctx, payment.Authorization, &authorization.BaseTransaction, payment); err != nil {
		return nil, err
	}
	payment.Authorization = authorization
	return authorization, nil
}

func (c *Client) FetchCharge(ctx context.Context, paymentID, chargeID string) (*models.Charge, error) {
	payment, err := c.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	stub := payment.GetCharge(chargeID)
	if stub == nil {
		return nil, sdkerr.NewSDKErrorf("payment %s has no charge %q", paymentID, chargeID)
	}

	charge := &models.Charge{Cancellations: stub.Cancellations}
	if err := c.fetchTransaction(ctx, stub, &charge.BaseTransaction, payment); err != nil {
		return nil, err
	}
	for i := range payment.Charges {
		if payment.Charges[i] == stub {
			payment.Charges[i] = charge
		}
	}
	return charge, nil
}

// FetchCancellation loads a cancellation of the payment's authorization,
// or of one of its charges when chargeID is not empty.
func (c *Client) FetchCancellation(ctx context.Context, paymentID, chargeID, cancellationID string) (*models.Cancellation, error) {
	payment, err := c.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	var stub *models.Cancellation
	if chargeID == "" {
		if payment.Authorization != nil {
			stub = payment.Authorization.GetCancellation(cancellationID)
		}
	} else if charge := payment.GetCharge(chargeID); charge != nil {
		stub = charge.GetCancellation(cancellationID)
	}
	if stub == nil {
		return nil, sdkerr.NewSDKErrorf("payment %s has no cancellation %q", paymentID, cancellationID)
	}

	cancellation := &models.Cancellation{ChargeID: stub.ChargeID}
	if err := c.fetchTransaction(ctx, stub, &cancellation.BaseTransaction, payment); err != nil {
		return nil, err
	}
	return cancellation, nil
}

func (c *Client) FetchShipment(ctx context.Context, paymentID, shipmentID string) (*models.Shipment, error) {
	payment, err := c.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	stub := payment.GetShipment(shipmentID)
	if stub == nil {
		return nil, sdkerr.NewSDKErrorf("payment %s has no shipment %q", paymentID, shipmentID)
	}

	shipment := &models.Shipment{}
	if err := c.fetchTransaction(ctx, stub, &shipment.BaseTransaction, payment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// fetchTransaction loads the transaction addressed by stub into tx and
// links it to payment.
func (c *Client) fetchTransaction(ctx context.Context, stub models.Resource, tx *models.BaseTransaction, payment *models.Payment) error {
	if err := c.send(ctx, http.MethodGet, models.URI(stub), nil, tx); err != nil {
		return err
	}
	tx.AttachGateway(c)
	tx.SetPayment(payment)
	return nil
}
