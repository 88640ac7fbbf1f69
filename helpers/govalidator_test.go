package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thedevsaddam/govalidator"
)

type chargeInput struct {
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	ExpiryDate string `json:"expiry_date"`
	BirthDate  string `json:"birth_date"`
	TypeID     string `json:"type_id"`
}

var chargeInputRules = govalidator.MapData{
	"amount":      []string{"required", "amount"},
	"currency":    []string{"required", "currency_iso4217"},
	"expiry_date": []string{"expiry_date"},
	"birth_date":  []string{"date_ISO8601"},
	"type_id":     []string{"resource_id"},
}

func validateBody(body string) map[string][]string {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	var input chargeInput
	v := govalidator.New(govalidator.Options{Request: r, Rules: chargeInputRules, Data: &input})
	return v.ValidateJSON()
}

func TestCustomRules_Valid(t *testing.T) {
	errs := validateBody(`{"amount":"12.50","currency":"EUR","expiry_date":"03/2030","birth_date":"1980-12-24","type_id":"s-p24-abc123"}`)

	assert.Empty(t, errs)
}

func TestCustomRules_Invalid(t *testing.T) {
	errs := validateBody(`{"amount":"-1","currency":"eur","expiry_date":"13/2030","birth_date":"24.12.1980","type_id":"card"}`)

	for _, field := range []string{"amount", "currency", "expiry_date", "birth_date", "type_id"} {
		assert.Contains(t, errs, field)
	}
}

func TestCustomRules_ExpiryDateNeedsFourDigitYear(t *testing.T) {
	errs := validateBody(`{"amount":"1","currency":"EUR","expiry_date":"03/30"}`)

	assert.Contains(t, errs, "expiry_date")
}

func TestCustomRules_UnknownCurrency(t *testing.T) {
	errs := validateBody(`{"amount":"1","currency":"XYZ"}`)

	assert.Contains(t, errs, "currency")
	assert.NotContains(t, errs, "amount")
}
