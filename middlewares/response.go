package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/heidelpay/heidelpay-go/config"
	"github.com/heidelpay/heidelpay-go/sdkerr"
)

type ResponseWriter struct {
	Writer   http.ResponseWriter
	Logger   *log.Entry
	Language string
}

// NewResponseWriter wraps w with the logger and language of r.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{
		Writer:   w,
		Logger:   config.LoggerFromContext(r.Context()),
		Language: RequestLanguage(r),
	}
}

type generalResponse struct {
	Errors  []*errorResponse `json:"errors"`
	Success bool             `json:"success"`
	Data    interface{}      `json:"data"`
}

type errorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrOption func(*errorResponse)

func WithErrorData(data interface{}) ErrOption {
	return func(err *errorResponse) {
		err.Data = data
	}
}

func (r *ResponseWriter) logger() *log.Entry {
	if r.Logger == nil {
		return config.GetLogger()
	}
	return r.Logger
}

func (r *ResponseWriter) writeJSONResponse(code int, errs []*errorResponse, data interface{}) {
	response := &generalResponse{Errors: errs, Success: errs == nil, Data: data}
	b, err := json.Marshal(response)
	if err != nil {
		r.Writer.WriteHeader(http.StatusInternalServerError)
		r.Writer.Write([]byte(fmt.Sprintf("unexpected error: %v", err)))
		return
	}
	r.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	r.Writer.WriteHeader(code)
	if _, err := r.Writer.Write(b); err != nil {
		r.logger().WithField("status_code", code).Error("could not write response")
	}
}

// WriteJSON answers with data on success and logs the outcome. For error
// codes without data the message is sent instead.
func (r *ResponseWriter) WriteJSON(statusCode int, data interface{}, err error, message string) {
	fields := log.Fields{"status_code": statusCode}
	if statusCode < http.StatusMultipleChoices {
		r.logger().WithFields(fields).Info("success")
		r.JSON(statusCode, data)
		return
	}

	if err == nil {
		err = errors.New(message)
	}
	fields["errors"] = data
	r.logger().WithFields(fields).Error(err)
	r.Error(statusCode, message, WithErrorData(data))
}

// WriteError answers with the status matching err: the gateway's status for
// API errors, 400 for local SDK errors and 500 otherwise.
func (r *ResponseWriter) WriteError(err error, fallback *NewRM) {
	if apiErr, ok := sdkerr.AsAPIError(err); ok {
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		msg := apiErr.CustomerMessage
		if msg == "" {
			msg = Responses.GatewayRejected.In(r.Language)
		}
		r.WriteJSON(status, map[string]string{"code": apiErr.Code, "id": apiErr.ID}, err, msg)
		return
	}
	if sdkerr.IsSDKError(err) {
		r.WriteJSON(http.StatusBadRequest, nil, err, fallback.In(r.Language))
		return
	}
	r.WriteJSON(http.StatusInternalServerError, nil, err, Responses.InternalServerError.In(r.Language))
}

func (r *ResponseWriter) JSON(code int, data interface{}) {
	r.writeJSONResponse(code, nil, data)
}

func (r *ResponseWriter) PNG(code int, image []byte) {
	r.Writer.Header().Set("Content-Type", "image/png")
	r.Writer.WriteHeader(code)
	if _, err := r.Writer.Write(image); err != nil {
		r.logger().WithField("status_code", code).Error("could not write image")
	}
}

func (r *ResponseWriter) String(code int, msg string) {
	r.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	r.Writer.WriteHeader(code)
	if _, err := r.Writer.Write([]byte(msg)); err != nil {
		r.logger().WithField("status_code", code).Error("could not write response")
	}
}

func (r *ResponseWriter) Error(code int, msg string, opts ...ErrOption) {
	err := &errorResponse{Code: code, Message: msg}
	for _, With := range opts {
		With(err)
	}
	r.writeJSONResponse(code, []*errorResponse{err}, nil)
}
