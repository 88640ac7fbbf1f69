package models

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/heidelpay/heidelpay-go/sdkerr"
)

// Authorizable payment types can reserve an amount.
type Authorizable interface {
	PaymentType
	Authorize(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Authorization, error)
}

// Chargeable payment types can be charged directly.
type Chargeable interface {
	PaymentType
	Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error)
}

// ChargeableWithCustomer payment types can only be charged for a known
// customer.
type ChargeableWithCustomer interface {
	PaymentType
	Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, customer *Customer, opts ...TransactionOption) (*Charge, error)
}

type TransactionOption func(*transactionOptions)

type transactionOptions struct {
	customer *Customer
	orderID  string
}

// WithCustomer links the transaction to a customer. A customer without id
// is created on the gateway first.
func WithCustomer(customer *Customer) TransactionOption {
	return func(o *transactionOptions) {
		o.customer = customer
	}
}

// WithOrderID sets the merchant's order reference.
func WithOrderID(orderID string) TransactionOption {
	return func(o *transactionOptions) {
		o.orderID = orderID
	}
}

func newTransactionOptions(opts []TransactionOption) *transactionOptions {
	o := &transactionOptions{}
	for _, with := range opts {
		with(o)
	}
	return o
}

func notAttached(r interface{}) error {
	return sdkerr.NewSDKErrorf("%T is not attached to a heidelpay client", r)
}

func authorize(ctx context.Context, t PaymentType, amount decimal.Decimal, currency, returnURL string, o *transactionOptions) (*Authorization, error) {
	g := t.base().Gateway()
	if g == nil {
		return nil, notAttached(t)
	}
	return g.Authorize(ctx, amount, currency, t, returnURL, o.customer, o.orderID)
}

func charge(ctx context.Context, t PaymentType, amount decimal.Decimal, currency, returnURL string, o *transactionOptions) (*Charge, error) {
	g := t.base().Gateway()
	if g == nil {
		return nil, notAttached(t)
	}
	return g.Charge(ctx, amount, currency, t, returnURL, o.customer, o.orderID)
}

func chargeWithCustomer(ctx context.Context, t PaymentType, amount decimal.Decimal, currency, returnURL string, customer *Customer, opts []TransactionOption) (*Charge, error) {
	o := newTransactionOptions(opts)
	o.customer = customer
	if o.customer == nil {
		return nil, sdkerr.NewSDKErrorf("%T can only be charged with a customer", t)
	}
	return charge(ctx, t, amount, currency, returnURL, o)
}

func (p *Prepayment) Authorize(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Authorization, error) {
	return authorize(ctx, p, amount, currency, returnURL, newTransactionOptions(opts))
}

// Charge is forwarded like for any other type. The gateway refuses it with
// sdkerr.CodeTransactionChargeNotAllowed.
func (p *Prepayment) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, p, amount, currency, returnURL, newTransactionOptions(opts))
}

func (c *Card) Authorize(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Authorization, error) {
	return authorize(ctx, c, amount, currency, returnURL, newTransactionOptions(opts))
}

func (c *Card) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, c, amount, currency, returnURL, newTransactionOptions(opts))
}

func (p *Paypal) Authorize(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Authorization, error) {
	return authorize(ctx, p, amount, currency, returnURL, newTransactionOptions(opts))
}

func (p *Paypal) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, p, amount, currency, returnURL, newTransactionOptions(opts))
}

func (i *Invoice) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, i, amount, currency, returnURL, newTransactionOptions(opts))
}

func (i *InvoiceGuaranteed) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, customer *Customer, opts ...TransactionOption) (*Charge, error) {
	return chargeWithCustomer(ctx, i, amount, currency, returnURL, customer, opts)
}

func (s *Sofort) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, s, amount, currency, returnURL, newTransactionOptions(opts))
}

func (g *Giropay) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, g, amount, currency, returnURL, newTransactionOptions(opts))
}

func (s *SepaDirectDebit) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, s, amount, currency, returnURL, newTransactionOptions(opts))
}

func (s *SepaDirectDebitGuaranteed) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, customer *Customer, opts ...TransactionOption) (*Charge, error) {
	return chargeWithCustomer(ctx, s, amount, currency, returnURL, customer, opts)
}

func (i *Ideal) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, i, amount, currency, returnURL, newTransactionOptions(opts))
}

func (e *EPS) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, e, amount, currency, returnURL, newTransactionOptions(opts))
}

func (p *PIS) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, p, amount, currency, returnURL, newTransactionOptions(opts))
}

func (p *Przelewy24) Charge(ctx context.Context, amount decimal.Decimal, currency, returnURL string, opts ...TransactionOption) (*Charge, error) {
	return charge(ctx, p, amount, currency, returnURL, newTransactionOptions(opts))
}
