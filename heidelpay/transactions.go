package heidelpay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/heidelpay/heidelpay-go/models"
	"github.com/heidelpay/heidelpay-go/sdkerr"
)

type transactionRequest struct {
	Amount    decimal.Decimal             `json:"amount"`
	Currency  string                      `json:"currency" validate:"required,iso4217"`
	ReturnURL string                      `json:"returnUrl" validate:"required,url"`
	OrderID   string                      `json:"orderId,omitempty"`
	Resources transactionRequestResources `json:"resources"`
}

type transactionRequestResources struct {
	TypeID     string `json:"typeId"`
	CustomerID string `json:"customerId,omitempty"`
}

type amountRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// Authorize reserves amount on paymentType. A payment type or customer
// that has no id yet is created first.
func (c *Client) Authorize(ctx context.Context, amount decimal.Decimal, currency string, paymentType models.PaymentType, returnURL string, customer *models.Customer, orderID string) (*models.Authorization, error) {
	req, err := c.prepareTransaction(ctx, amount, currency, paymentType, returnURL, customer, orderID)
	if err != nil {
		return nil, err
	}

	authorization := &models.Authorization{}
	if err := c.send(ctx, http.MethodPost, "payments/authorize", req, authorization); err != nil {
		return nil, err
	}
	authorization.AttachGateway(c)

	payment := c.paymentOf(&authorization.BaseTransaction, paymentType, customer)
	payment.Authorization = authorization
	return authorization, nil
}

// Charge charges amount on paymentType directly. A payment type or
// customer that has no id yet is created first.
func (c *Client) Charge(ctx context.Context, amount decimal.Decimal, currency string, paymentType models.PaymentType, returnURL string, customer *models.Customer, orderID string) (*models.Charge, error) {
	req, err := c.prepareTransaction(ctx, amount, currency, paymentType, returnURL, customer, orderID)
	if err != nil {
		return nil, err
	}

	charge := &models.Charge{}
	if err := c.send(ctx, http.MethodPost, "payments/charges", req, charge); err != nil {
		return nil, err
	}
	charge.AttachGateway(c)

	payment := c.paymentOf(&charge.BaseTransaction, paymentType, customer)
	payment.Charges = append(payment.Charges, charge)
	return charge, nil
}

// ChargeAuthorization captures the authorization of a payment, fully when
// amount is nil.
func (c *Client) ChargeAuthorization(ctx context.Context, paymentID string, amount *decimal.Decimal) (*models.Charge, error) {
	charge := &models.Charge{}
	charge.Resources = &models.TransactionResources{PaymentID: paymentID}
	if err := c.postAmount(ctx, paymentID, charge, amount, charge); err != nil {
		return nil, err
	}
	charge.AttachGateway(c)
	return charge, nil
}

// CancelAuthorization cancels the authorization of a payment, fully when
// amount is nil.
func (c *Client) CancelAuthorization(ctx context.Context, paymentID string, amount *decimal.Decimal) (*models.Cancellation, error) {
	cancellation := &models.Cancellation{}
	cancellation.Resources = &models.TransactionResources{PaymentID: paymentID}
	if err := c.postAmount(ctx, paymentID, cancellation, amount, cancellation); err != nil {
		return nil, err
	}
	cancellation.AttachGateway(c)
	return cancellation, nil
}

// CancelCharge refunds a charge of a payment, fully when amount is nil.
func (c *Client) CancelCharge(ctx context.Context, paymentID, chargeID string, amount *decimal.Decimal) (*models.Cancellation, error) {
	if chargeID == "" {
		return nil, sdkerr.NewSDKError("charge id is required to cancel a charge")
	}
	cancellation := &models.Cancellation{ChargeID: chargeID}
	cancellation.Resources = &models.TransactionResources{PaymentID: paymentID}
	if err := c.postAmount(ctx, paymentID, cancellation, amount, cancellation); err != nil {
		return nil, err
	}
	cancellation.ChargeID = chargeID
	cancellation.AttachGateway(c)
	return cancellation, nil
}

// Ship reports the shipment of a payment's goods to the gateway.
func (c *Client) Ship(ctx context.Context, paymentID string) (*models.Shipment, error) {
	shipment := &models.Shipment{}
	shipment.Resources = &models.TransactionResources{PaymentID: paymentID}
	if err := c.postAmount(ctx, paymentID, shipment, nil, shipment); err != nil {
		return nil, err
	}
	shipment.AttachGateway(c)
	return shipment, nil
}

func (c *Client) postAmount(ctx context.Context, paymentID string, r models.Resource, amount *decimal.Decimal, out interface{}) error {
	if paymentID == "" {
		return sdkerr.NewSDKErrorf("payment id is required for %T", r)
	}
	if amount != nil && !amount.IsPositive() {
		return sdkerr.NewSDKErrorf("amount of %T must be positive", r)
	}
	return c.send(ctx, http.MethodPost, r.ResourcePath(), &amountRequest{Amount: amount}, out)
}

func (c *Client) prepareTransaction(ctx context.Context, amount decimal.Decimal, currency string, paymentType models.PaymentType, returnURL string, customer *models.Customer, orderID string) (*transactionRequest, error) {
	if paymentType == nil {
		return nil, sdkerr.NewSDKError("payment type is required")
	}
	if !amount.IsPositive() {
		return nil, sdkerr.NewSDKErrorf("amount must be positive, got %s", amount.String())
	}
	req := &transactionRequest{
		Amount:    amount,
		Currency:  currency,
		ReturnURL: returnURL,
		OrderID:   orderID,
	}
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	if paymentType.GetID() == "" {
		if _, err := c.CreatePaymentType(ctx, paymentType); err != nil {
			return nil, err
		}
	}
	req.Resources.TypeID = paymentType.GetID()

	if customer != nil {
		if customer.ID == "" {
			if _, err := c.CreateCustomer(ctx, customer); err != nil {
				return nil, err
			}
		}
		req.Resources.CustomerID = customer.ID
	}
	return req, nil
}

// paymentOf links a new transaction to a payment holding what is already
// known locally about it.
func (c *Client) paymentOf(tx *models.BaseTransaction, paymentType models.PaymentType, customer *models.Customer) *models.Payment {
	payment := &models.Payment{
		ID:          tx.PaymentID(),
		Currency:    tx.Currency,
		OrderID:     tx.OrderID,
		PaymentType: paymentType,
		Customer:    customer,
	}
	payment.Resources.TypeID = paymentType.GetID()
	if customer != nil {
		payment.Resources.CustomerID = customer.ID
	}
	payment.AttachGateway(c)
	tx.SetPayment(payment)
	return payment
}
