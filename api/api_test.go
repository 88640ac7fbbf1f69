package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heidelpay/heidelpay-go/config"
	"github.com/heidelpay/heidelpay-go/heidelpay"
	"github.com/heidelpay/heidelpay-go/server"
)

const prepaymentPaymentJSON = `{
	"id": "s-pay-1",
	"state": {"id": 0, "name": "pending"},
	"amount": {"total": "100.0000", "charged": "0", "canceled": "0", "remaining": "100.0000"},
	"currency": "EUR",
	"resources": {"typeId": "s-ppy-1"},
	"transactions": [
		{"type": "authorize", "status": "success", "url": "https://api.heidelpay.com/v1/payments/s-pay-1/authorize/s-aut-1", "amount": "100.0000"}
	]
}`

const prepaymentAuthorizationJSON = `{
	"id": "s-aut-1",
	"isSuccess": true,
	"amount": "100.0000",
	"currency": "EUR",
	"resources": {"paymentId": "s-pay-1", "typeId": "s-ppy-1"},
	"processing": {"iban": "DE89370400440532013000", "bic": "COBADEFFXXX", "holder": "Merchant Khang", "descriptor": "4065.6865.6416"}
}`

const invoicePaymentJSON = `{
	"id": "s-pay-2",
	"state": {"id": 0, "name": "pending"},
	"amount": {"total": "50.0000", "charged": "0", "canceled": "0", "remaining": "50.0000"},
	"currency": "EUR",
	"resources": {"typeId": "s-ivc-1"},
	"transactions": [
		{"type": "charge", "status": "pending", "url": "https://api.heidelpay.com/v1/payments/s-pay-2/charges/s-chg-1", "amount": "50.0000"}
	]
}`

const invoiceChargeJSON = `{
	"id": "s-chg-1",
	"isPending": true,
	"amount": "50.0000",
	"currency": "EUR",
	"resources": {"paymentId": "s-pay-2", "typeId": "s-ivc-1"},
	"processing": {"iban": "DE89370400440532013000", "bic": "COBADEFFXXX", "holder": "Merchant Khang", "descriptor": "4065.6865.6417"}
}`

func gatewayRoute(router *mux.Router, method, path string, status int, body string) {
	router.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}).Methods(method)
}

func newTestApp(t *testing.T, conf config.Configuration) http.Handler {
	router := mux.NewRouter()
	gatewayRoute(router, http.MethodGet, "/v1/payments/s-pay-1", http.StatusOK, prepaymentPaymentJSON)
	gatewayRoute(router, http.MethodGet, "/v1/types/prepayment/s-ppy-1", http.StatusOK, `{"id":"s-ppy-1"}`)
	gatewayRoute(router, http.MethodGet, "/v1/payments/s-pay-1/authorize/s-aut-1", http.StatusOK, prepaymentAuthorizationJSON)
	gatewayRoute(router, http.MethodGet, "/v1/payments/s-pay-2", http.StatusOK, invoicePaymentJSON)
	gatewayRoute(router, http.MethodGet, "/v1/types/invoice/s-ivc-1", http.StatusOK, `{"id":"s-ivc-1"}`)
	gatewayRoute(router, http.MethodGet, "/v1/payments/s-pay-2/charges/s-chg-1", http.StatusOK, invoiceChargeJSON)
	gatewayRoute(router, http.MethodGet, "/v1/payments/s-pay-404", http.StatusNotFound,
		`{"isError":true,"errors":[{"code":"API.310.100.003","merchantMessage":"Payment not found","customerMessage":"Zahlung nicht gefunden"}]}`)
	gateway := httptest.NewServer(router)
	t.Cleanup(gateway.Close)

	logger := log.New()
	logger.SetOutput(io.Discard)
	client, err := heidelpay.New("s-priv-test", heidelpay.WithBaseURL(gateway.URL), heidelpay.WithLogger(log.NewEntry(logger)))
	require.NoError(t, err)

	return server.NewHandler(&config.AppContext{Config: conf, Heidelpay: client}, GetRoutes())
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func serve(t *testing.T, handler http.Handler, r *http.Request) (*httptest.ResponseRecorder, envelope) {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	var body envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func notificationRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestHealthcheck(t *testing.T) {
	rec, _ := serve(t, newTestApp(t, config.Configuration{}), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestReceiveNotification(t *testing.T) {
	handler := newTestApp(t, config.Configuration{})

	rec, body := serve(t, handler, notificationRequest(
		`{"event":"payment.pending","publicKey":"s-pub-1","retrieveUrl":"https://api.heidelpay.com/v1/payments/s-pay-1","paymentId":"s-pay-1"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "payment.pending", body.Data["event"])
	assert.Equal(t, "s-pay-1", body.Data["resourceId"])
	assert.Equal(t, "payments", body.Data["resourcePath"])
}

func TestReceiveNotification_Rejected(t *testing.T) {
	conf := config.Configuration{}
	conf.Heidelpay.PublicKey = "s-pub-1"
	handler := newTestApp(t, conf)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing retrieve url", `{"event":"payment.pending","publicKey":"s-pub-1"}`, http.StatusBadRequest},
		{"other merchant", `{"event":"payment.pending","publicKey":"s-pub-2","retrieveUrl":"https://api.heidelpay.com/v1/payments/s-pay-1"}`, http.StatusUnauthorized},
		{"unsupported resource", `{"event":"basket","publicKey":"s-pub-1","retrieveUrl":"https://api.heidelpay.com/v1/baskets/s-bsk-1"}`, http.StatusBadRequest},
		{"unknown payment", `{"event":"payment.pending","publicKey":"s-pub-1","retrieveUrl":"https://api.heidelpay.com/v1/payments/s-pay-404"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serve(t, handler, notificationRequest(tt.body))

			assert.Equal(t, tt.want, rec.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestGetPayment(t *testing.T) {
	handler := newTestApp(t, config.Configuration{})

	rec, body := serve(t, handler, httptest.NewRequest(http.MethodGet, "/payments/s-pay-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s-pay-1", body.Data["id"])
	assert.Equal(t, map[string]interface{}{"id": "s-ppy-1"}, body.Data["paymentType"])
	assert.NotNil(t, body.Data["authorization"])
}

func TestGetPayment_NotFound(t *testing.T) {
	handler := newTestApp(t, config.Configuration{})
	r := httptest.NewRequest(http.MethodGet, "/payments/s-pay-404", nil)
	r.Header.Set("Accept-Language", "de-DE")

	rec, body := serve(t, handler, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "Zahlung nicht gefunden", body.Errors[0].Message)
}

func TestGetTransferQR(t *testing.T) {
	handler := newTestApp(t, config.Configuration{QRSize: 128})

	rec, _ := serve(t, handler, httptest.NewRequest(http.MethodGet, "/payments/s-pay-1/transfer-qr?size=200", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
}

func TestGetTransferQR_InvoiceCharge(t *testing.T) {
	handler := newTestApp(t, config.Configuration{QRSize: 128})

	rec, _ := serve(t, handler, httptest.NewRequest(http.MethodGet, "/payments/s-pay-2/transfer-qr", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
}

func TestGetTransferQR_InvalidSize(t *testing.T) {
	handler := newTestApp(t, config.Configuration{QRSize: 128})

	rec, body := serve(t, handler, httptest.NewRequest(http.MethodGet, "/payments/s-pay-1/transfer-qr?size=10", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "Failed field validations", body.Errors[0].Message)
}
