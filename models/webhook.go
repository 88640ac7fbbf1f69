package models

var ConstWebhookEvents = struct {
	All                  string
	Authorize            string
	AuthorizeSucceeded   string
	AuthorizeFailed      string
	AuthorizeCanceled    string
	Charge               string
	ChargeSucceeded      string
	ChargeFailed         string
	ChargeCanceled       string
	Shipment             string
	Payment              string
	PaymentPending       string
	PaymentCompleted     string
	PaymentCanceled      string
	PaymentPartly        string
	PaymentPaymentReview string
	PaymentChargeback    string
	Types                string
	Customer             string
	CustomerCreated      string
	CustomerDeleted      string
	CustomerUpdated      string
}{
	All:                  "all",
	Authorize:            "authorize",
	AuthorizeSucceeded:   "authorize.succeeded",
	AuthorizeFailed:      "authorize.failed",
	AuthorizeCanceled:    "authorize.canceled",
	Charge:               "charge",
	ChargeSucceeded:      "charge.succeeded",
	ChargeFailed:         "charge.failed",
	ChargeCanceled:       "charge.canceled",
	Shipment:             "shipment",
	Payment:              "payment",
	PaymentPending:       "payment.pending",
	PaymentCompleted:     "payment.completed",
	PaymentCanceled:      "payment.canceled",
	PaymentPartly:        "payment.partly",
	PaymentPaymentReview: "payment.payment_review",
	PaymentChargeback:    "payment.chargeback",
	Types:                "types",
	Customer:             "customer",
	CustomerCreated:      "customer.created",
	CustomerDeleted:      "customer.deleted",
	CustomerUpdated:      "customer.updated",
}

// Event is the notification the gateway posts to a registered webhook.
type Event struct {
	Event       string `json:"event"`
	PublicKey   string `json:"publicKey,omitempty"`
	RetrieveURL string `json:"retrieveUrl"`
	PaymentID   string `json:"paymentId,omitempty"`
}

type Webhook struct {
	ID    string `json:"id,omitempty"`
	URL   string `json:"url" validate:"required,url"`
	Event string `json:"event" validate:"required"`
}

func (w *Webhook) GetID() string {
	return w.ID
}

func (w *Webhook) ResourcePath() string {
	return "webhooks"
}
