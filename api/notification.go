package api

import (
	"net/http"

	"github.com/thedevsaddam/govalidator"

	"github.com/heidelpay/heidelpay-go/config"
	"github.com/heidelpay/heidelpay-go/middlewares"
	"github.com/heidelpay/heidelpay-go/models"
)

var notificationRules = govalidator.MapData{
	"event":       []string{"required"},
	"retrieveUrl": []string{"required", "url"},
	"publicKey":   []string{"required"},
	"paymentId":   []string{"resource_id"},
}

type notificationResponse struct {
	Event        string `json:"event"`
	ResourceID   string `json:"resourceId"`
	ResourcePath string `json:"resourcePath"`
}

// ReceiveNotification handles a webhook event: the resource it points to
// is fetched from the gateway so that only data coming from heidelpay is
// trusted. Any non 2xx answer makes the gateway retry the delivery.
func ReceiveNotification(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	var event models.Event
	validatorOpts := govalidator.Options{
		Request: r,
		Rules:   notificationRules,
		Data:    &event,
	}
	v := govalidator.New(validatorOpts)
	if errs := v.ValidateJSON(); len(errs) > 0 {
		w.WriteJSON(http.StatusBadRequest, errs, nil, middlewares.Responses.InvalidEvent.In(w.Language))
		return
	}

	if publicKey := ctx.Config.Heidelpay.PublicKey; publicKey != "" && publicKey != event.PublicKey {
		w.WriteJSON(http.StatusUnauthorized, nil, nil, middlewares.Responses.UnknownPublicKey.In(w.Language))
		return
	}

	resource, err := ctx.Heidelpay.FetchResourceFromEvent(r.Context(), &event)
	if err != nil {
		w.WriteError(err, middlewares.Responses.InvalidEvent)
		return
	}

	response := notificationResponse{
		Event:        event.Event,
		ResourceID:   resource.GetID(),
		ResourcePath: resource.ResourcePath(),
	}
	if payment, ok := resource.(*models.Payment); ok {
		w.Logger = w.Logger.WithField("payment_state", payment.State.Name)
	}
	w.WriteJSON(http.StatusOK, response, nil, "")
}
