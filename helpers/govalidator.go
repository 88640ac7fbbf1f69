package helpers

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/thedevsaddam/govalidator"
	"golang.org/x/text/currency"

	"github.com/heidelpay/heidelpay-go/models"
)

var resourceIDPattern = regexp.MustCompile(`^[sp]-[a-z0-9]{3}-[A-Za-z0-9]+$`)

func init() {
	govalidator.AddCustomRule("date_ISO8601", func(field string, rule string, message string, value interface{}) error {
		dateLayoutISO8601 := "2006-01-02"
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.String && value.(string) != "" {
			if _, err := time.Parse(dateLayoutISO8601, value.(string)); err != nil {
				if message != "" {
					return errors.New(message)
				}
				return fmt.Errorf("The %s field must be ISO8601 yyyy-mm-dd date", field)
			}
		}
		return nil
	})
	govalidator.AddCustomRule("currency_iso4217", func(field string, rule string, message string, value interface{}) error {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.String && value.(string) != "" {
			code := value.(string)
			if _, err := currency.ParseISO(code); err != nil || strings.ToUpper(code) != code {
				if message != "" {
					return errors.New(message)
				}
				return fmt.Errorf("The %s field must be an ISO 4217 currency code", field)
			}
		}
		return nil
	})
	govalidator.AddCustomRule("expiry_date", func(field string, rule string, message string, value interface{}) error {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.String && value.(string) != "" {
			if !models.ExpiryDatePattern.MatchString(value.(string)) {
				if message != "" {
					return errors.New(message)
				}
				return fmt.Errorf("The %s field must be a MM/YYYY expiry date", field)
			}
		}
		return nil
	})
	govalidator.AddCustomRule("amount", func(field string, rule string, message string, value interface{}) error {
		var (
			amount decimal.Decimal
			err    error
		)
		switch v := value.(type) {
		case string:
			if v == "" {
				return nil
			}
			amount, err = decimal.NewFromString(v)
		case float64:
			amount = decimal.NewFromFloat(v)
		default:
			return nil
		}
		if err != nil || !amount.IsPositive() {
			if message != "" {
				return errors.New(message)
			}
			return fmt.Errorf("The %s field must be a positive amount", field)
		}
		return nil
	})
	govalidator.AddCustomRule("resource_id", func(field string, rule string, message string, value interface{}) error {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.String && value.(string) != "" {
			if !resourceIDPattern.MatchString(value.(string)) {
				if message != "" {
					return errors.New(message)
				}
				return fmt.Errorf("The %s field must be a heidelpay resource id", field)
			}
		}
		return nil
	})
}
