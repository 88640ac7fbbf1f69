//go:build integration

package heidelpay_test

import (
	"context"
	"testing"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heidelpay/heidelpay-go/heidelpay"
	"github.com/heidelpay/heidelpay-go/models"
	"github.com/heidelpay/heidelpay-go/sdkerr"
)

const sandboxReturnURL = "https://dev.heidelpay.com"

type sandboxConf struct {
	PrivateKey string `env:"HEIDELPAY_PRIVATE_KEY"`
	BaseURL    string `env:"HEIDELPAY_BASE_URL,default=https://api.heidelpay.com"`
}

// sandboxClient talks to the heidelpay sandbox with the key from the
// environment or ../dev.env.
func sandboxClient(t *testing.T) *heidelpay.Client {
	_ = godotenv.Load("../dev.env")
	var conf sandboxConf
	_ = envdecode.Decode(&conf)
	if conf.PrivateKey == "" {
		t.Skip("HEIDELPAY_PRIVATE_KEY is not set")
	}

	client, err := heidelpay.New(conf.PrivateKey, heidelpay.WithBaseURL(conf.BaseURL))
	require.NoError(t, err)
	return client
}

func createPrepayment(t *testing.T, client *heidelpay.Client) *models.Prepayment {
	paymentType, err := client.CreatePaymentType(context.Background(), &models.Prepayment{})
	require.NoError(t, err)
	require.IsType(t, &models.Prepayment{}, paymentType)
	return paymentType.(*models.Prepayment)
}

func TestSandbox_PrepaymentCreatableAndFetchable(t *testing.T) {
	client := sandboxClient(t)
	prepayment := createPrepayment(t, client)
	assert.NotEmpty(t, prepayment.ID)

	fetched, err := client.FetchPaymentType(context.Background(), prepayment.ID)
	require.NoError(t, err)
	require.IsType(t, &models.Prepayment{}, fetched)
	assert.Equal(t, prepayment.ID, fetched.GetID())
}

func TestSandbox_PrepaymentAuthorizable(t *testing.T) {
	client := sandboxClient(t)
	prepayment := createPrepayment(t, client)

	authorization, err := prepayment.Authorize(context.Background(), decimal.NewFromInt(100), "EUR", sandboxReturnURL)
	require.NoError(t, err)

	assert.NotEmpty(t, authorization.ID)
	assert.NotEmpty(t, authorization.Iban())
	assert.NotEmpty(t, authorization.Bic())
	assert.NotEmpty(t, authorization.Holder())
	assert.NotEmpty(t, authorization.Descriptor())
}

func TestSandbox_PrepaymentNotChargeable(t *testing.T) {
	client := sandboxClient(t)
	prepayment := createPrepayment(t, client)

	_, err := prepayment.Charge(context.Background(), decimal.NewFromInt(100), "EUR", sandboxReturnURL)

	assert.True(t, sdkerr.IsAPIError(err, sdkerr.CodeTransactionChargeNotAllowed), "got %v", err)
}

func TestSandbox_PrepaymentNotShippable(t *testing.T) {
	client := sandboxClient(t)
	prepayment := createPrepayment(t, client)
	authorization, err := prepayment.Authorize(context.Background(), decimal.NewFromInt(100), "EUR", sandboxReturnURL)
	require.NoError(t, err)

	_, err = authorization.Payment().Ship(context.Background())

	assert.True(t, sdkerr.IsAPIError(err, sdkerr.CodeTransactionShipNotAllowed), "got %v", err)
}

func TestSandbox_PrepaymentAuthorizationCancelable(t *testing.T) {
	client := sandboxClient(t)
	prepayment := createPrepayment(t, client)
	authorization, err := prepayment.Authorize(context.Background(), decimal.NewFromInt(100), "EUR", sandboxReturnURL)
	require.NoError(t, err)

	cancellation, err := authorization.Cancel(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, cancellation.ID)
}
