package heidelpay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/heidelpay/heidelpay-go/models"
	"github.com/heidelpay/heidelpay-go/sdkerr"
)

const (
	Version = "1.0.0"

	DefaultBaseURL    = "https://api.heidelpay.com"
	DefaultAPIVersion = "v1"
	DefaultLocale     = "en_US"

	sdkType     = "HeidelpayGo"
	contentType = "application/json"
)

var _ models.Gateway = (*Client)(nil)

// Client talks to the heidelpay payment API. Resources created or fetched
// through it are attached to it, so their transaction methods delegate
// back here.
type Client struct {
	http       *resty.Client
	httpClient *http.Client
	baseURL    string
	apiVersion string
	locale     string
	timeout    time.Duration
	debug      bool
	logger     *log.Entry
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// WithLocale sets the language of the customer messages returned by the
// gateway, e.g. "de_DE".
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = locale
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger *log.Entry) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug makes the HTTP layer log full requests and responses.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client authenticating with the merchant's private key.
func New(privateKey string, opts ...Option) (*Client, error) {
	if privateKey == "" {
		return nil, sdkerr.NewSDKError("a private key is required")
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		apiVersion: DefaultAPIVersion,
		locale:     DefaultLocale,
		logger:     log.WithField("sdk", "heidelpay"),
	}
	for _, with := range opts {
		with(c)
	}

	if c.httpClient != nil {
		c.http = resty.NewWithClient(c.httpClient)
	} else {
		c.http = resty.New()
	}
	c.http.
		SetBaseURL(fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), c.apiVersion)).
		SetBasicAuth(privateKey, "").
		SetHeader("Content-Type", contentType).
		SetHeader("Accept", contentType).
		SetHeader("Accept-Language", c.locale).
		SetHeader("SDK-TYPE", sdkType).
		SetHeader("SDK-VERSION", Version).
		SetLogger(c.logger).
		SetDebug(c.debug)
	if c.timeout > 0 {
		c.http.SetTimeout(c.timeout)
	}

	return c, nil
}

type errorResponse struct {
	ID      string `json:"id"`
	IsError bool   `json:"isError"`
	Errors  []struct {
		Code            string `json:"code"`
		MerchantMessage string `json:"merchantMessage"`
		CustomerMessage string `json:"customerMessage"`
	} `json:"errors"`
}

// decodeAPIError returns the gateway error carried by a response, or nil
// for a successful one.
func decodeAPIError(statusCode int, body []byte) *sdkerr.APIError {
	var resp errorResponse
	if len(body) > 0 && body[0] == '{' {
		_ = json.Unmarshal(body, &resp)
	}
	if len(resp.Errors) > 0 {
		first := resp.Errors[0]
		return &sdkerr.APIError{
			ID:              resp.ID,
			Code:            first.Code,
			MerchantMessage: first.MerchantMessage,
			CustomerMessage: first.CustomerMessage,
			StatusCode:      statusCode,
		}
	}
	if statusCode >= http.StatusMultipleChoices || resp.IsError {
		return &sdkerr.APIError{
			ID:         resp.ID,
			Code:       sdkerr.CodeUnknown,
			StatusCode: statusCode,
		}
	}
	return nil
}

// send executes a request against path, relative to the versioned base
// URL, and decodes the response into out when out is not nil.
func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	fields := log.Fields{"method": method, "path": path}

	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.WithFields(fields).Error(err)
		return errors.Wrapf(err, "heidelpay: %s %s failed", method, path)
	}

	fields["status_code"] = resp.StatusCode()
	c.logger.WithFields(fields).Debug("heidelpay_request")

	if apiErr := decodeAPIError(resp.StatusCode(), resp.Body()); apiErr != nil {
		fields["code"] = apiErr.Code
		fields["error_id"] = apiErr.ID
		c.logger.WithFields(fields).Error(apiErr.MerchantMessage)
		return apiErr
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.Wrapf(err, "heidelpay: failed decoding response of %s %s", method, path)
	}
	return nil
}
