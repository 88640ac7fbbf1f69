package models

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Resource is anything the gateway addresses by path and id.
type Resource interface {
	GetID() string
	ResourcePath() string
}

// Gateway is the shared client every resource delegates its remote
// operations to. It is implemented by heidelpay.Client.
type Gateway interface {
	Authorize(ctx context.Context, amount decimal.Decimal, currency string, paymentType PaymentType, returnURL string, customer *Customer, orderID string) (*Authorization, error)
	Charge(ctx context.Context, amount decimal.Decimal, currency string, paymentType PaymentType, returnURL string, customer *Customer, orderID string) (*Charge, error)
	ChargeAuthorization(ctx context.Context, paymentID string, amount *decimal.Decimal) (*Charge, error)
	CancelAuthorization(ctx context.Context, paymentID string, amount *decimal.Decimal) (*Cancellation, error)
	CancelCharge(ctx context.Context, paymentID, chargeID string, amount *decimal.Decimal) (*Cancellation, error)
	Ship(ctx context.Context, paymentID string) (*Shipment, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
}

// Attachable resources keep a reference to the gateway that created or
// fetched them.
type Attachable interface {
	AttachGateway(g Gateway)
}

type attachment struct {
	gateway Gateway
}

// AttachGateway sets the client the resource delegates to.
func (a *attachment) AttachGateway(g Gateway) {
	a.gateway = g
}

// Gateway returns the attached client or nil.
func (a *attachment) Gateway() Gateway {
	return a.gateway
}

// URI joins a resource path and id the way the gateway expects.
func URI(r Resource) string {
	path := strings.TrimRight(r.ResourcePath(), "/")
	if id := r.GetID(); id != "" {
		return path + "/" + id
	}
	return path
}
