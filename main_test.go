package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heidelpay/heidelpay-go/sdkerr"
)

type gatewayStub struct {
	router *mux.Router
	mu     sync.Mutex
	bodies map[string]map[string]interface{}
}

func newGatewayStub(t *testing.T) *gatewayStub {
	stub := &gatewayStub{router: mux.NewRouter(), bodies: map[string]map[string]interface{}{}}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	t.Setenv("HEIDELPAY_PRIVATE_KEY", "s-priv-test")
	t.Setenv("HEIDELPAY_BASE_URL", srv.URL)
	return stub
}

func (s *gatewayStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	s.mu.Lock()
	s.bodies[r.Method+" "+r.URL.Path] = body
	s.mu.Unlock()
	s.router.ServeHTTP(w, r)
}

func (s *gatewayStub) handle(method, path, body string) {
	s.handleStatus(method, path, http.StatusOK, body)
}

func (s *gatewayStub) handleStatus(method, path string, status int, body string) {
	s.router.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}).Methods(method)
}

func (s *gatewayStub) body(key string) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[key]
}

func (s *gatewayStub) requested(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.bodies[key]
	return ok
}

func run(t *testing.T, args ...string) (map[string]interface{}, error) {
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"heidelpay"}, args...))
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	return result, nil
}

func TestCreateType(t *testing.T) {
	stub := newGatewayStub(t)
	stub.handle(http.MethodPost, "/v1/types/sepa-direct-debit", `{"id":"s-sdd-1","iban":"DE89370400440532013000","bic":"COBADEFFXXX"}`)

	result, err := run(t, "create-type", "--type", "sepa-direct-debit", "--field", "iban=DE89370400440532013000", "--field", "bic=COBADEFFXXX")
	require.NoError(t, err)

	assert.Equal(t, "s-sdd-1", result["id"])
	assert.Equal(t, "DE89370400440532013000", stub.body("POST /v1/types/sepa-direct-debit")["iban"])
}

func TestAuthorize(t *testing.T) {
	stub := newGatewayStub(t)
	stub.handle(http.MethodGet, "/v1/types/prepayment/s-ppy-1", `{"id":"s-ppy-1"}`)
	stub.handle(http.MethodPost, "/v1/payments/authorize",
		`{"id":"s-aut-1","isSuccess":true,"amount":"100.0000","currency":"EUR","resources":{"paymentId":"s-pay-1","typeId":"s-ppy-1"}}`)

	result, err := run(t, "authorize", "--type-id", "s-ppy-1", "--amount", "100", "--return-url", "https://dev.heidelpay.com", "--order-id", "order-1")
	require.NoError(t, err)

	assert.Equal(t, "s-aut-1", result["id"])
	request := stub.body("POST /v1/payments/authorize")
	assert.Equal(t, "order-1", request["orderId"])
	assert.Equal(t, "EUR", request["currency"])
}

func TestAuthorize_GeneratesOrderID(t *testing.T) {
	stub := newGatewayStub(t)
	stub.handle(http.MethodGet, "/v1/types/prepayment/s-ppy-1", `{"id":"s-ppy-1"}`)
	stub.handle(http.MethodPost, "/v1/payments/authorize", `{"id":"s-aut-1","resources":{"paymentId":"s-pay-1"}}`)

	_, err := run(t, "authorize", "--type-id", "s-ppy-1", "--amount", "100", "--return-url", "https://dev.heidelpay.com")
	require.NoError(t, err)

	assert.NotEmpty(t, stub.body("POST /v1/payments/authorize")["orderId"])
}

func TestCharge_PrepaymentRefusedByGateway(t *testing.T) {
	stub := newGatewayStub(t)
	stub.handle(http.MethodGet, "/v1/types/prepayment/s-ppy-1", `{"id":"s-ppy-1"}`)
	stub.handleStatus(http.MethodPost, "/v1/payments/charges", http.StatusBadRequest,
		`{"isError":true,"errors":[{"code":"API.330.000.004","merchantMessage":"Charge is not allowed","customerMessage":"Charge is not allowed."}]}`)

	_, err := run(t, "charge", "--type-id", "s-ppy-1", "--amount", "100", "--return-url", "https://dev.heidelpay.com")

	assert.True(t, sdkerr.IsAPIError(err, sdkerr.CodeTransactionChargeNotAllowed), "got %v", err)
	assert.Equal(t, "s-ppy-1", stub.body("POST /v1/payments/charges")["resources"].(map[string]interface{})["typeId"])
}

func TestTransactionInput_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"negative amount", []string{"--type-id", "s-ppy-1", "--amount", "-5"}, "amount"},
		{"lowercase currency", []string{"--type-id", "s-ppy-1", "--amount", "5", "--currency", "eur"}, "currency"},
		{"type name instead of id", []string{"--type-id", "prepayment", "--amount", "5"}, "type_id"},
		{"merchant customer reference", []string{"--type-id", "s-ppy-1", "--amount", "5", "--customer-id", "cust-42"}, "customer_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newGatewayStub(t)

			args := append([]string{"authorize", "--return-url", "https://dev.heidelpay.com"}, tt.args...)
			_, err := run(t, args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
			assert.False(t, stub.requested("GET /v1/types/prepayment/s-ppy-1"))
		})
	}
}

func TestCreateCustomer_RejectsBirthDate(t *testing.T) {
	stub := newGatewayStub(t)
	stub.handle(http.MethodPost, "/v1/customers", `{"id":"s-cst-1"}`)

	_, err := run(t, "create-customer", "--firstname", "Max", "--lastname", "Mustermann", "--birth-date", "24.12.1980")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "birth_date")
	assert.False(t, stub.requested("POST /v1/customers"))

	result, err := run(t, "create-customer", "--firstname", "Max", "--lastname", "Mustermann", "--birth-date", "1980-12-24")
	require.NoError(t, err)
	assert.Equal(t, "s-cst-1", result["id"])
}

func TestCreateType_RejectsShortExpiryYear(t *testing.T) {
	stub := newGatewayStub(t)
	stub.handle(http.MethodPost, "/v1/types/card", `{"id":"s-crd-1"}`)

	_, err := run(t, "create-type", "--type", "card", "--field", "number=4711100000000000", "--field", "expiryDate=03/30", "--field", "cvc=123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expiryDate")
	assert.False(t, stub.requested("POST /v1/types/card"))
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields([]string{"number=4711100000000000", "expiryDate=01/2030", "holder=Max=Mustermann"})
	require.NoError(t, err)
	assert.Equal(t, "Max=Mustermann", fields["holder"])

	_, err = parseFields([]string{"number"})
	assert.Error(t, err)
}

func TestOptionalAmount(t *testing.T) {
	amount, err := optionalAmount("")
	require.NoError(t, err)
	assert.Nil(t, amount)

	amount, err = optionalAmount("12.5")
	require.NoError(t, err)
	assert.Equal(t, "12.5", amount.String())

	_, err = optionalAmount("abc")
	assert.Error(t, err)
}
