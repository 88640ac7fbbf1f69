package models

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/heidelpay/heidelpay-go/sdkerr"
)

// PaymentType is a payment method the gateway can run transactions on.
type PaymentType interface {
	Resource
	Attachable
	TypeName() string
	base() *BasePaymentType
}

// BasePaymentType holds what every payment type has in common.
type BasePaymentType struct {
	attachment
	ID string `json:"id,omitempty"`
}

func (b *BasePaymentType) GetID() string {
	return b.ID
}

func (b *BasePaymentType) base() *BasePaymentType {
	return b
}

func typePath(t PaymentType) string {
	return "types/" + t.TypeName()
}

type Prepayment struct {
	BasePaymentType
}

func (p *Prepayment) TypeName() string     { return "prepayment" }
func (p *Prepayment) ResourcePath() string { return typePath(p) }

type Card struct {
	BasePaymentType
	Number     string `json:"number" validate:"required"`
	ExpiryDate string `json:"expiryDate" validate:"required,expiry_date"`
	CVC        string `json:"cvc,omitempty" validate:"required"`
	Holder     string `json:"holder,omitempty"`
	Brand      string `json:"brand,omitempty"`
	ThreeDS    *bool  `json:"3ds,omitempty"`
}

func (c *Card) TypeName() string     { return "card" }
func (c *Card) ResourcePath() string { return typePath(c) }

type Paypal struct {
	BasePaymentType
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

func (p *Paypal) TypeName() string     { return "paypal" }
func (p *Paypal) ResourcePath() string { return typePath(p) }

type Invoice struct {
	BasePaymentType
}

func (i *Invoice) TypeName() string     { return "invoice" }
func (i *Invoice) ResourcePath() string { return typePath(i) }

type InvoiceGuaranteed struct {
	BasePaymentType
}

func (i *InvoiceGuaranteed) TypeName() string     { return "invoice-guaranteed" }
func (i *InvoiceGuaranteed) ResourcePath() string { return typePath(i) }

type Sofort struct {
	BasePaymentType
}

func (s *Sofort) TypeName() string     { return "sofort" }
func (s *Sofort) ResourcePath() string { return typePath(s) }

type Giropay struct {
	BasePaymentType
}

func (g *Giropay) TypeName() string     { return "giropay" }
func (g *Giropay) ResourcePath() string { return typePath(g) }

type SepaDirectDebit struct {
	BasePaymentType
	IBAN   string `json:"iban" validate:"required"`
	BIC    string `json:"bic,omitempty"`
	Holder string `json:"holder,omitempty"`
}

func (s *SepaDirectDebit) TypeName() string     { return "sepa-direct-debit" }
func (s *SepaDirectDebit) ResourcePath() string { return typePath(s) }

type SepaDirectDebitGuaranteed struct {
	BasePaymentType
	IBAN   string `json:"iban" validate:"required"`
	BIC    string `json:"bic,omitempty"`
	Holder string `json:"holder,omitempty"`
}

func (s *SepaDirectDebitGuaranteed) TypeName() string     { return "sepa-direct-debit-guaranteed" }
func (s *SepaDirectDebitGuaranteed) ResourcePath() string { return typePath(s) }

type Ideal struct {
	BasePaymentType
	BIC string `json:"bic" validate:"required"`
}

func (i *Ideal) TypeName() string     { return "ideal" }
func (i *Ideal) ResourcePath() string { return typePath(i) }

type EPS struct {
	BasePaymentType
	BIC string `json:"bic,omitempty"`
}

func (e *EPS) TypeName() string     { return "eps" }
func (e *EPS) ResourcePath() string { return typePath(e) }

type PIS struct {
	BasePaymentType
}

func (p *PIS) TypeName() string     { return "pis" }
func (p *PIS) ResourcePath() string { return typePath(p) }

type Przelewy24 struct {
	BasePaymentType
}

func (p *Przelewy24) TypeName() string     { return "przelewy24" }
func (p *Przelewy24) ResourcePath() string { return typePath(p) }

var paymentTypes = []struct {
	prefix string
	create func() PaymentType
}{
	{"ppy", func() PaymentType { return &Prepayment{} }},
	{"crd", func() PaymentType { return &Card{} }},
	{"ppl", func() PaymentType { return &Paypal{} }},
	{"ivc", func() PaymentType { return &Invoice{} }},
	{"ivg", func() PaymentType { return &InvoiceGuaranteed{} }},
	{"sft", func() PaymentType { return &Sofort{} }},
	{"gro", func() PaymentType { return &Giropay{} }},
	{"sdd", func() PaymentType { return &SepaDirectDebit{} }},
	{"ddg", func() PaymentType { return &SepaDirectDebitGuaranteed{} }},
	{"idl", func() PaymentType { return &Ideal{} }},
	{"eps", func() PaymentType { return &EPS{} }},
	{"pis", func() PaymentType { return &PIS{} }},
	{"p24", func() PaymentType { return &Przelewy24{} }},
}

// NewPaymentType returns an empty payment type for a type name such as
// "prepayment" or "sepa-direct-debit".
func NewPaymentType(name string) (PaymentType, error) {
	for _, pt := range paymentTypes {
		t := pt.create()
		if t.TypeName() == name {
			return t, nil
		}
	}
	return nil, sdkerr.NewSDKErrorf("unknown payment type %q", name)
}

// PaymentTypeFromID returns an empty payment type of the kind encoded in
// id, e.g. "s-ppy-a1b2c3" yields a *Prepayment with that id.
func PaymentTypeFromID(id string) (PaymentType, error) {
	parts := strings.Split(id, "-")
	if len(parts) < 3 || parts[2] == "" {
		return nil, sdkerr.NewSDKErrorf("invalid payment type id %q", id)
	}
	for _, pt := range paymentTypes {
		if pt.prefix == parts[1] {
			t := pt.create()
			t.base().ID = id
			return t, nil
		}
	}
	return nil, sdkerr.NewSDKErrorf("unknown payment type id %q", id)
}

// DecodePaymentType decodes a raw gateway type resource into the variant
// matching its id.
func DecodePaymentType(raw map[string]interface{}) (PaymentType, error) {
	id, _ := raw["id"].(string)
	t, err := PaymentTypeFromID(id)
	if err != nil {
		return nil, err
	}
	if err := DecodeInto(raw, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DecodeInto decodes a raw gateway payload into target using the json
// field names. Scalars are converted loosely since the gateway is not
// consistent about quoting booleans and numbers.
func DecodeInto(raw map[string]interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		Result:           target,
	})
	if err != nil {
		return errors.Wrap(err, "failed creating decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return errors.Wrapf(err, "failed decoding %T", target)
	}
	return nil
}
