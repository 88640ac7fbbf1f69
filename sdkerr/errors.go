package sdkerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// SDKError reports a misuse of the SDK detected before anything is sent
// to the gateway.
type SDKError struct {
	message string
	err     error
}

func (e *SDKError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *SDKError) Unwrap() error {
	return e.err
}

// NewSDKError creates a new SDK error.
func NewSDKError(message string) *SDKError {
	return &SDKError{message: message}
}

// NewSDKErrorf creates a new SDK error with a formatted message.
func NewSDKErrorf(format string, args ...interface{}) *SDKError {
	return &SDKError{message: fmt.Sprintf(format, args...)}
}

// WrapSDKError wraps err as an SDK error. It returns nil when err is nil.
func WrapSDKError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &SDKError{message: message, err: err}
}

// APIError is an error response forwarded from the payment gateway.
type APIError struct {
	ID              string
	Code            string
	MerchantMessage string
	CustomerMessage string
	StatusCode      int
}

func (e *APIError) Error() string {
	if e.MerchantMessage != "" {
		return fmt.Sprintf("heidelpay api error %s: %s", e.Code, e.MerchantMessage)
	}
	return fmt.Sprintf("heidelpay api error %s (status %d)", e.Code, e.StatusCode)
}

// AsAPIError returns the first APIError in err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAPIError reports whether err carries an APIError with the given code.
// An empty code matches any APIError.
func IsAPIError(err error, code string) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return code == "" || apiErr.Code == code
}

// IsSDKError reports whether err carries an SDKError.
func IsSDKError(err error) bool {
	var sdkErr *SDKError
	return errors.As(err, &sdkErr)
}
