package models

import (
	"context"

	"github.com/shopspring/decimal"
)

type Message struct {
	Code     string `json:"code,omitempty"`
	Customer string `json:"customer,omitempty"`
}

type TransactionResources struct {
	CustomerID string `json:"customerId,omitempty"`
	PaymentID  string `json:"paymentId,omitempty"`
	TypeID     string `json:"typeId,omitempty"`
	MetadataID string `json:"metadataId,omitempty"`
	BasketID   string `json:"basketId,omitempty"`
	TraceID    string `json:"traceId,omitempty"`
}

// Processing carries what the gateway's processor returned, e.g. the bank
// account a prepayment has to be transferred to.
type Processing struct {
	IBAN       string `json:"iban,omitempty"`
	BIC        string `json:"bic,omitempty"`
	Holder     string `json:"holder,omitempty"`
	Descriptor string `json:"descriptor,omitempty"`
	ShortID    string `json:"shortId,omitempty"`
	UniqueID   string `json:"uniqueId,omitempty"`
}

// BaseTransaction holds the fields shared by all transaction types.
type BaseTransaction struct {
	attachment
	ID          string                `json:"id,omitempty"`
	Amount      decimal.Decimal       `json:"amount"`
	Currency    string                `json:"currency,omitempty"`
	ReturnURL   string                `json:"returnUrl,omitempty"`
	OrderID     string                `json:"orderId,omitempty"`
	Date        string                `json:"date,omitempty"`
	RedirectURL string                `json:"redirectUrl,omitempty"`
	IsSuccess   bool                  `json:"isSuccess"`
	IsPending   bool                  `json:"isPending"`
	IsError     bool                  `json:"isError"`
	Message     *Message              `json:"message,omitempty"`
	Resources   *TransactionResources `json:"resources,omitempty"`
	Processing  *Processing           `json:"processing,omitempty"`

	payment *Payment
}

func (t *BaseTransaction) GetID() string {
	return t.ID
}

// PaymentID returns the id of the payment the transaction belongs to.
func (t *BaseTransaction) PaymentID() string {
	if t.payment != nil {
		return t.payment.ID
	}
	if t.Resources != nil {
		return t.Resources.PaymentID
	}
	return ""
}

// Payment returns the owning payment. When the payment was not fetched
// along with the transaction only its id is set.
func (t *BaseTransaction) Payment() *Payment {
	if t.payment == nil && t.PaymentID() != "" {
		t.payment = &Payment{ID: t.PaymentID()}
		t.payment.AttachGateway(t.Gateway())
	}
	return t.payment
}

// SetPayment links the transaction to its payment.
func (t *BaseTransaction) SetPayment(p *Payment) {
	t.payment = p
}

func (t *BaseTransaction) Iban() string {
	if t.Processing == nil {
		return ""
	}
	return t.Processing.IBAN
}

func (t *BaseTransaction) Bic() string {
	if t.Processing == nil {
		return ""
	}
	return t.Processing.BIC
}

func (t *BaseTransaction) Holder() string {
	if t.Processing == nil {
		return ""
	}
	return t.Processing.Holder
}

func (t *BaseTransaction) Descriptor() string {
	if t.Processing == nil {
		return ""
	}
	return t.Processing.Descriptor
}

type Authorization struct {
	BaseTransaction
	Cancellations []*Cancellation `json:"-"`
}

func (a *Authorization) ResourcePath() string {
	return "payments/" + a.PaymentID() + "/authorize"
}

// GetCancellation returns the cancellation with the given id or nil.
func (a *Authorization) GetCancellation(id string) *Cancellation {
	return findCancellation(a.Cancellations, id)
}

// Cancel reverts the authorization, fully when amount is nil.
func (a *Authorization) Cancel(ctx context.Context, amount *decimal.Decimal) (*Cancellation, error) {
	g := a.Gateway()
	if g == nil {
		return nil, notAttached(a)
	}
	return g.CancelAuthorization(ctx, a.PaymentID(), amount)
}

// Charge captures the authorized amount, fully when amount is nil.
func (a *Authorization) Charge(ctx context.Context, amount *decimal.Decimal) (*Charge, error) {
	g := a.Gateway()
	if g == nil {
		return nil, notAttached(a)
	}
	return g.ChargeAuthorization(ctx, a.PaymentID(), amount)
}

type Charge struct {
	BaseTransaction
	Cancellations []*Cancellation `json:"-"`
}

func (c *Charge) ResourcePath() string {
	return "payments/" + c.PaymentID() + "/charges"
}

func (c *Charge) GetCancellation(id string) *Cancellation {
	return findCancellation(c.Cancellations, id)
}

// Cancel refunds the charge, fully when amount is nil.
func (c *Charge) Cancel(ctx context.Context, amount *decimal.Decimal) (*Cancellation, error) {
	g := c.Gateway()
	if g == nil {
		return nil, notAttached(c)
	}
	return g.CancelCharge(ctx, c.PaymentID(), c.ID, amount)
}

// Cancellation reverts an authorization or refunds a charge. ChargeID is
// empty for cancellations of the authorization.
type Cancellation struct {
	BaseTransaction
	ChargeID string `json:"-"`
}

func (c *Cancellation) ResourcePath() string {
	if c.ChargeID != "" {
		return "payments/" + c.PaymentID() + "/charges/" + c.ChargeID + "/cancels"
	}
	return "payments/" + c.PaymentID() + "/authorize/cancels"
}

type Shipment struct {
	BaseTransaction
}

func (s *Shipment) ResourcePath() string {
	return "payments/" + s.PaymentID() + "/shipments"
}

func findCancellation(cancellations []*Cancellation, id string) *Cancellation {
	for _, c := range cancellations {
		if c.ID == id {
			return c
		}
	}
	return nil
}
