package api

import (
	"net/http"

	"github.com/heidelpay/heidelpay-go/config"
	"github.com/heidelpay/heidelpay-go/middlewares"
	"github.com/heidelpay/heidelpay-go/server"
)

// HealthcheckHandler indicates the service's healthy
func HealthcheckHandler(_ *config.AppContext, w *middlewares.ResponseWriter, _ *http.Request) {
	w.String(http.StatusOK, "OK")
}

func GetRoutes() []*server.Route {
	return []*server.Route{
		{Path: "/healthcheck", Methods: []string{"GET", "HEAD"}, Handler: HealthcheckHandler},

		// Webhooks
		{Path: "/notifications", Methods: []string{"POST"}, Handler: ReceiveNotification},

		// Payment
		{Path: "/payments/{payment_id}", Methods: []string{"GET", "HEAD"}, Handler: GetPayment},
		{Path: "/payments/{payment_id}/transfer-qr", Methods: []string{"GET", "HEAD"}, Handler: GetTransferQR},
	}
}
