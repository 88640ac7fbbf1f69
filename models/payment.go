package models

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heidelpay/heidelpay-go/sdkerr"
)

type PaymentState struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var ConstPaymentStates = struct {
	Pending       PaymentState
	Completed     PaymentState
	Canceled      PaymentState
	Partly        PaymentState
	PaymentReview PaymentState
	Chargeback    PaymentState
}{
	Pending:       PaymentState{ID: 0, Name: "pending"},
	Completed:     PaymentState{ID: 1, Name: "completed"},
	Canceled:      PaymentState{ID: 2, Name: "canceled"},
	Partly:        PaymentState{ID: 3, Name: "partly"},
	PaymentReview: PaymentState{ID: 4, Name: "payment_review"},
	Chargeback:    PaymentState{ID: 5, Name: "chargeback"},
}

var ConstTransactionTypes = struct {
	Authorize       string
	Charge          string
	Shipment        string
	CancelAuthorize string
	CancelCharge    string
}{
	Authorize:       "authorize",
	Charge:          "charge",
	Shipment:        "shipment",
	CancelAuthorize: "cancel-authorize",
	CancelCharge:    "cancel-charge",
}

type PaymentAmount struct {
	Total     decimal.Decimal `json:"total"`
	Charged   decimal.Decimal `json:"charged"`
	Canceled  decimal.Decimal `json:"canceled"`
	Remaining decimal.Decimal `json:"remaining"`
}

type PaymentResources struct {
	CustomerID string `json:"customerId,omitempty"`
	PaymentID  string `json:"paymentId,omitempty"`
	TypeID     string `json:"typeId,omitempty"`
	MetadataID string `json:"metadataId,omitempty"`
	BasketID   string `json:"basketId,omitempty"`
	TraceID    string `json:"traceId,omitempty"`
}

// PaymentTransaction is an entry of a payment's transaction list.
type PaymentTransaction struct {
	Date   string          `json:"date,omitempty"`
	Type   string          `json:"type"`
	Status string          `json:"status,omitempty"`
	URL    string          `json:"url"`
	Amount decimal.Decimal `json:"amount"`
}

// Payment is the aggregate linking a payment type, a customer and the
// transactions run on them.
type Payment struct {
	attachment
	ID           string               `json:"id,omitempty"`
	State        PaymentState         `json:"state"`
	Amount       PaymentAmount        `json:"amount"`
	Currency     string               `json:"currency,omitempty"`
	OrderID      string               `json:"orderId,omitempty"`
	Resources    PaymentResources     `json:"resources"`
	Transactions []PaymentTransaction `json:"transactions,omitempty"`

	Customer      *Customer      `json:"-"`
	PaymentType   PaymentType    `json:"-"`
	Authorization *Authorization `json:"-"`
	Charges       []*Charge      `json:"-"`
	Shipments     []*Shipment    `json:"-"`
}

func (p *Payment) GetID() string {
	return p.ID
}

func (p *Payment) ResourcePath() string {
	return "payments"
}

func (p *Payment) GetCharge(id string) *Charge {
	for _, c := range p.Charges {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (p *Payment) GetShipment(id string) *Shipment {
	for _, s := range p.Shipments {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Ship reports the shipment of the goods paid with this payment.
func (p *Payment) Ship(ctx context.Context) (*Shipment, error) {
	g := p.Gateway()
	if g == nil {
		return nil, notAttached(p)
	}
	return g.Ship(ctx, p.ID)
}

// Charge captures the payment's authorization, fully when amount is nil.
func (p *Payment) Charge(ctx context.Context, amount *decimal.Decimal) (*Charge, error) {
	g := p.Gateway()
	if g == nil {
		return nil, notAttached(p)
	}
	return g.ChargeAuthorization(ctx, p.ID, amount)
}

// Cancel cancels the payment's authorization, fully when amount is nil.
// Payments without an authorization are refused by the gateway.
func (p *Payment) Cancel(ctx context.Context, amount *decimal.Decimal) (*Cancellation, error) {
	g := p.Gateway()
	if g == nil {
		return nil, notAttached(p)
	}
	return g.CancelAuthorization(ctx, p.ID, amount)
}

// CancelAllCharges refunds every charge of the payment in full.
func (p *Payment) CancelAllCharges(ctx context.Context) ([]*Cancellation, error) {
	g := p.Gateway()
	if g == nil {
		return nil, notAttached(p)
	}
	var cancellations []*Cancellation
	for _, c := range p.Charges {
		cancellation, err := g.CancelCharge(ctx, p.ID, c.ID, nil)
		if err != nil {
			return cancellations, err
		}
		cancellations = append(cancellations, cancellation)
	}
	return cancellations, nil
}

// ResolveTransactions turns the transaction list into the nested
// authorization, charges, cancellations and shipments. Only id, amount,
// date and status are known for them until they are fetched.
func (p *Payment) ResolveTransactions() error {
	p.Authorization = nil
	p.Charges = nil
	p.Shipments = nil

	var cancellations []PaymentTransaction
	for _, tx := range p.Transactions {
		base, err := p.transactionFromList(tx)
		if err != nil {
			return err
		}
		switch tx.Type {
		case ConstTransactionTypes.Authorize:
			p.Authorization = &Authorization{BaseTransaction: base}
		case ConstTransactionTypes.Charge:
			p.Charges = append(p.Charges, &Charge{BaseTransaction: base})
		case ConstTransactionTypes.Shipment:
			p.Shipments = append(p.Shipments, &Shipment{BaseTransaction: base})
		case ConstTransactionTypes.CancelAuthorize, ConstTransactionTypes.CancelCharge:
			cancellations = append(cancellations, tx)
		}
		// other types, e.g. chargebacks, stay in Transactions only
	}

	// cancellations reference their parent, which may be listed after them
	for _, tx := range cancellations {
		base, _ := p.transactionFromList(tx)
		segments := urlSegments(tx.URL)
		if tx.Type == ConstTransactionTypes.CancelAuthorize {
			if p.Authorization == nil {
				return sdkerr.NewSDKErrorf("cancellation %s of payment %s has no authorization", base.ID, p.ID)
			}
			p.Authorization.Cancellations = append(p.Authorization.Cancellations, &Cancellation{BaseTransaction: base})
			continue
		}
		chargeID := segmentAfter(segments, "charges")
		charge := p.GetCharge(chargeID)
		if charge == nil {
			return sdkerr.NewSDKErrorf("cancellation %s of payment %s references unknown charge %q", base.ID, p.ID, chargeID)
		}
		charge.Cancellations = append(charge.Cancellations, &Cancellation{BaseTransaction: base, ChargeID: chargeID})
	}
	return nil
}

func (p *Payment) transactionFromList(tx PaymentTransaction) (BaseTransaction, error) {
	segments := urlSegments(tx.URL)
	if len(segments) == 0 || segments[len(segments)-1] == "" {
		return BaseTransaction{}, sdkerr.NewSDKErrorf("transaction of payment %s has no url", p.ID)
	}
	base := BaseTransaction{
		ID:        segments[len(segments)-1],
		Amount:    tx.Amount,
		Currency:  p.Currency,
		Date:      tx.Date,
		IsSuccess: tx.Status == "success",
		IsPending: tx.Status == "pending",
		IsError:   tx.Status == "error",
		Resources: &TransactionResources{
			PaymentID:  p.ID,
			TypeID:     p.Resources.TypeID,
			CustomerID: p.Resources.CustomerID,
		},
		payment: p,
	}
	base.AttachGateway(p.Gateway())
	return base, nil
}

func urlSegments(url string) []string {
	return strings.Split(strings.TrimRight(url, "/"), "/")
}

func segmentAfter(segments []string, name string) string {
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == name {
			return segments[i+1]
		}
	}
	return ""
}
