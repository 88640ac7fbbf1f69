package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/lithammer/shortuuid/v3"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/thedevsaddam/govalidator"
	"github.com/urfave/cli"

	"github.com/heidelpay/heidelpay-go/heidelpay"
	"github.com/heidelpay/heidelpay-go/helpers"
	"github.com/heidelpay/heidelpay-go/models"
	"github.com/heidelpay/heidelpay-go/server"
)

type clientAction func(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error)

// withClient runs action with a client built from the environment and
// prints its result as JSON.
func withClient(action clientAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		wrapper, err := server.GetAppContext()
		if err != nil {
			return err
		}
		if err := wrapper.CreateHeidelpayClient(); err != nil {
			return err
		}

		result, err := action(context.Background(), wrapper.Context.Heidelpay, c)
		if err != nil {
			return err
		}
		encoder := json.NewEncoder(c.App.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
}

var transactionFlags = []cli.Flag{
	cli.StringFlag{Name: "type-id", Usage: "id of the payment type", Required: true},
	cli.StringFlag{Name: "amount", Usage: "amount, e.g. 100.00", Required: true},
	cli.StringFlag{Name: "currency", Value: "EUR", Usage: "ISO 4217 currency code"},
	cli.StringFlag{Name: "return-url", Usage: "where the customer returns after a redirect", Required: true},
	cli.StringFlag{Name: "customer-id", Usage: "id of an existing customer"},
	cli.StringFlag{Name: "order-id", Usage: "order reference, generated when empty"},
}

type transactionArgs struct {
	TypeID     string `json:"type_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	CustomerID string `json:"customer_id"`
}

var transactionRules = govalidator.MapData{
	"type_id":     []string{"required", "resource_id"},
	"amount":      []string{"required", "amount"},
	"currency":    []string{"required", "currency_iso4217"},
	"customer_id": []string{"resource_id"},
}

type customerArgs struct {
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
}

var customerRules = govalidator.MapData{
	"email":      []string{"email"},
	"birth_date": []string{"date_ISO8601"},
}

type cardArgs struct {
	ExpiryDate string `json:"expiryDate"`
}

var cardRules = govalidator.MapData{
	"expiryDate": []string{"expiry_date"},
}

func sdkCommands() []cli.Command {
	return []cli.Command{
		{
			Name:  "create-type",
			Usage: "Creates a payment type, fields are passed as --field name=value",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "type", Usage: "payment type name, e.g. prepayment or card", Required: true},
				cli.StringSliceFlag{Name: "field", Usage: "payment type field, e.g. iban=DE89..."},
			},
			Action: withClient(createType),
		},
		{
			Name:   "fetch-type",
			Usage:  "Fetches a payment type by id",
			Flags:  []cli.Flag{cli.StringFlag{Name: "id", Required: true}},
			Action: withClient(fetchType),
		},
		{
			Name:  "create-customer",
			Usage: "Creates a customer",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "firstname", Required: true},
				cli.StringFlag{Name: "lastname", Required: true},
				cli.StringFlag{Name: "customer-id", Usage: "merchant's customer reference"},
				cli.StringFlag{Name: "email"},
				cli.StringFlag{Name: "birth-date", Usage: "yyyy-mm-dd"},
			},
			Action: withClient(createCustomer),
		},
		{
			Name:   "fetch-customer",
			Usage:  "Fetches a customer by id",
			Flags:  []cli.Flag{cli.StringFlag{Name: "id", Required: true}},
			Action: withClient(fetchCustomer),
		},
		{
			Name:   "authorize",
			Usage:  "Authorizes an amount on a payment type",
			Flags:  transactionFlags,
			Action: withClient(authorize),
		},
		{
			Name:   "charge",
			Usage:  "Charges a payment type directly",
			Flags:  transactionFlags,
			Action: withClient(charge),
		},
		{
			Name:  "charge-authorization",
			Usage: "Charges the authorization of a payment",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "payment-id", Required: true},
				cli.StringFlag{Name: "amount", Usage: "defaults to the authorized amount"},
			},
			Action: withClient(chargeAuthorization),
		},
		{
			Name:  "cancel",
			Usage: "Cancels the authorization of a payment, or one of its charges",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "payment-id", Required: true},
				cli.StringFlag{Name: "charge-id"},
				cli.StringFlag{Name: "amount", Usage: "defaults to the full amount"},
			},
			Action: withClient(cancel),
		},
		{
			Name:   "ship",
			Usage:  "Reports the shipment of a payment",
			Flags:  []cli.Flag{cli.StringFlag{Name: "payment-id", Required: true}},
			Action: withClient(ship),
		},
		{
			Name:   "fetch-payment",
			Usage:  "Fetches a payment with its transactions",
			Flags:  []cli.Flag{cli.StringFlag{Name: "id", Required: true}},
			Action: withClient(fetchPayment),
		},
		{
			Name:  "register-webhook",
			Usage: "Registers a url for gateway events",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "url", Required: true},
				cli.StringFlag{Name: "event", Value: models.ConstWebhookEvents.All},
			},
			Action: withClient(registerWebhook),
		},
	}
}

func createType(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	paymentType, err := models.NewPaymentType(c.String("type"))
	if err != nil {
		return nil, err
	}
	fields, err := parseFields(c.StringSlice("field"))
	if err != nil {
		return nil, err
	}
	if expiry, ok := fields["expiryDate"].(string); ok {
		if err := helpers.ValidateInput(&cardArgs{ExpiryDate: expiry}, cardRules); err != nil {
			return nil, err
		}
	}
	if err := models.DecodeInto(fields, paymentType); err != nil {
		return nil, err
	}
	return client.CreatePaymentType(ctx, paymentType)
}

func fetchType(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	return client.FetchPaymentType(ctx, c.String("id"))
}

func createCustomer(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	args := &customerArgs{Email: c.String("email"), BirthDate: c.String("birth-date")}
	if err := helpers.ValidateInput(args, customerRules); err != nil {
		return nil, err
	}
	customer := models.NewCustomer(c.String("firstname"), c.String("lastname"))
	customer.CustomerID = c.String("customer-id")
	customer.Email = c.String("email")
	customer.BirthDate = c.String("birth-date")
	return client.CreateCustomer(ctx, customer)
}

func fetchCustomer(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	return client.FetchCustomer(ctx, c.String("id"))
}

func authorize(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	paymentType, amount, opts, err := transactionInput(ctx, client, c)
	if err != nil {
		return nil, err
	}
	authorizable, ok := paymentType.(models.Authorizable)
	if !ok {
		return nil, errors.Errorf("payment type %s cannot be authorized", paymentType.TypeName())
	}
	return authorizable.Authorize(ctx, amount, c.String("currency"), c.String("return-url"), opts...)
}

func charge(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	paymentType, amount, opts, err := transactionInput(ctx, client, c)
	if err != nil {
		return nil, err
	}
	switch t := paymentType.(type) {
	case models.Chargeable:
		return t.Charge(ctx, amount, c.String("currency"), c.String("return-url"), opts...)
	case models.ChargeableWithCustomer:
		customerID := c.String("customer-id")
		if customerID == "" {
			return nil, errors.Errorf("payment type %s needs a --customer-id", t.TypeName())
		}
		customer, err := client.FetchCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		return t.Charge(ctx, amount, c.String("currency"), c.String("return-url"), customer, models.WithOrderID(orderID(c)))
	default:
		return nil, errors.Errorf("payment type %s cannot be charged", paymentType.TypeName())
	}
}

func chargeAuthorization(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	amount, err := optionalAmount(c.String("amount"))
	if err != nil {
		return nil, err
	}
	return client.ChargeAuthorization(ctx, c.String("payment-id"), amount)
}

func cancel(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	amount, err := optionalAmount(c.String("amount"))
	if err != nil {
		return nil, err
	}
	if chargeID := c.String("charge-id"); chargeID != "" {
		return client.CancelCharge(ctx, c.String("payment-id"), chargeID, amount)
	}
	return client.CancelAuthorization(ctx, c.String("payment-id"), amount)
}

func ship(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	return client.Ship(ctx, c.String("payment-id"))
}

func fetchPayment(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	return client.FetchPayment(ctx, c.String("id"))
}

func registerWebhook(ctx context.Context, client *heidelpay.Client, c *cli.Context) (interface{}, error) {
	return client.RegisterWebhook(ctx, c.String("url"), c.String("event"))
}

// transactionInput resolves the payment type, amount and options shared by
// authorize and charge.
func transactionInput(ctx context.Context, client *heidelpay.Client, c *cli.Context) (models.PaymentType, decimal.Decimal, []models.TransactionOption, error) {
	args := &transactionArgs{
		TypeID:     c.String("type-id"),
		Amount:     c.String("amount"),
		Currency:   c.String("currency"),
		CustomerID: c.String("customer-id"),
	}
	if err := helpers.ValidateInput(args, transactionRules); err != nil {
		return nil, decimal.Zero, nil, err
	}
	amount, err := decimal.NewFromString(args.Amount)
	if err != nil {
		return nil, decimal.Zero, nil, errors.Wrapf(err, "invalid amount %q", c.String("amount"))
	}
	paymentType, err := client.FetchPaymentType(ctx, c.String("type-id"))
	if err != nil {
		return nil, decimal.Zero, nil, err
	}

	opts := []models.TransactionOption{models.WithOrderID(orderID(c))}
	if customerID := c.String("customer-id"); customerID != "" {
		customer, err := client.FetchCustomer(ctx, customerID)
		if err != nil {
			return nil, decimal.Zero, nil, err
		}
		opts = append(opts, models.WithCustomer(customer))
	}
	return paymentType, amount, opts, nil
}

func orderID(c *cli.Context) string {
	if id := c.String("order-id"); id != "" {
		return id
	}
	return shortuuid.New()
}

func optionalAmount(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %q", raw)
	}
	return &amount, nil
}

func parseFields(pairs []string) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, errors.Errorf("invalid field %q, expected name=value", pair)
		}
		fields[parts[0]] = parts[1]
	}
	return fields, nil
}
