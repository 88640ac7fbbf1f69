package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/heidelpay/heidelpay-go/sdkerr"
)

// ExpiryDatePattern matches card expiry dates in MM/YYYY form.
var ExpiryDatePattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("expiry_date", func(fl validator.FieldLevel) bool {
		return ExpiryDatePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks the required fields of a resource or request before it
// is sent to the gateway.
func Validate(r interface{}) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return sdkerr.WrapSDKError(err, fmt.Sprintf("could not validate %T", r))
	}
	failed := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed = append(failed, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return sdkerr.NewSDKErrorf("invalid %T: %s", r, strings.Join(failed, ", "))
}
