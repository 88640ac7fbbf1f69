package heidelpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/heidelpay/heidelpay-go/models"
	"github.com/heidelpay/heidelpay-go/sdkerr"
)

type webhookList struct {
	Events []*models.Webhook `json:"events"`
}

// RegisterWebhook asks the gateway to post events of the given kind (see
// models.ConstWebhookEvents) to webhookURL.
func (c *Client) RegisterWebhook(ctx context.Context, webhookURL, event string) (*models.Webhook, error) {
	webhook := &models.Webhook{URL: webhookURL, Event: event}
	if err := models.Validate(webhook); err != nil {
		return nil, err
	}
	if err := c.send(ctx, http.MethodPost, webhook.ResourcePath(), webhook, webhook); err != nil {
		return nil, err
	}
	return webhook, nil
}

func (c *Client) FetchWebhooks(ctx context.Context) ([]*models.Webhook, error) {
	var list webhookList
	if err := c.send(ctx, http.MethodGet, (&models.Webhook{}).ResourcePath(), nil, &list); err != nil {
		return nil, err
	}
	return list.Events, nil
}

func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	if id == "" {
		return sdkerr.NewSDKError("webhook id is required")
	}
	return c.send(ctx, http.MethodDelete, models.URI(&models.Webhook{ID: id}), nil, nil)
}

// ParseEvent decodes the body of a webhook notification.
func ParseEvent(body []byte) (*models.Event, error) {
	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, sdkerr.WrapSDKError(err, "invalid webhook event")
	}
	if event.RetrieveURL == "" {
		return nil, sdkerr.NewSDKError("webhook event has no retrieve url")
	}
	return &event, nil
}

// FetchResourceFromEvent loads the resource a webhook event points to:
// a payment, one of its transactions, a payment type or a customer. Only
// the path of the retrieve url is used, requests always go to the
// configured gateway.
func (c *Client) FetchResourceFromEvent(ctx context.Context, event *models.Event) (models.Resource, error) {
	retrieveURL, err := url.Parse(event.RetrieveURL)
	if err != nil {
		return nil, sdkerr.WrapSDKError(err, "invalid retrieve url")
	}
	segments := strings.Split(strings.Trim(retrieveURL.Path, "/"), "/")
	last := segments[len(segments)-1]

	var (
		r        models.Resource
		fetchErr error
	)
	switch {
	case hasSegment(segments, "types"):
		r, fetchErr = c.FetchPaymentType(ctx, last)
	case hasSegment(segments, "customers"):
		r, fetchErr = asResource(c.FetchCustomer(ctx, last))
	case hasSegment(segments, "payments"):
		paymentID := segmentAfter(segments, "payments")
		switch {
		case hasSegment(segments, "cancels"):
			r, fetchErr = asResource(c.FetchCancellation(ctx, paymentID, segmentAfter(segments, "charges"), last))
		case hasSegment(segments, "charges"):
			r, fetchErr = asResource(c.FetchCharge(ctx, paymentID, segmentAfter(segments, "charges")))
		case hasSegment(segments, "shipments"):
			r, fetchErr = asResource(c.FetchShipment(ctx, paymentID, segmentAfter(segments, "shipments")))
		case hasSegment(segments, "authorize"):
			r, fetchErr = asResource(c.FetchAuthorization(ctx, paymentID))
		default:
			r, fetchErr = asResource(c.FetchPayment(ctx, paymentID))
		}
	default:
		return nil, sdkerr.NewSDKErrorf("unsupported retrieve url %q", event.RetrieveURL)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	return r, nil
}

// asResource keeps a failed fetch from yielding a non-nil interface
// holding a nil pointer.
func asResource(r models.Resource, err error) (models.Resource, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

func hasSegment(segments []string, name string) bool {
	for _, s := range segments {
		if s == name {
			return true
		}
	}
	return false
}

func segmentAfter(segments []string, name string) string {
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == name {
			return segments[i+1]
		}
	}
	return ""
}
