package middlewares

import (
	"net/http"

	"github.com/lithammer/shortuuid/v3"
	log "github.com/sirupsen/logrus"

	"github.com/heidelpay/heidelpay-go/config"
)

func LoggerRequest(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = shortuuid.New()
		r.Header.Set("X-Request-ID", requestID)
	}
	rw.Header().Set("X-Request-ID", requestID)

	requestLogger := config.GetLogger().WithFields(log.Fields{
		"request_id": requestID,
		"method":     r.Method,
		"query":      r.URL.Query(),
		"host":       r.Host,
		"url":        r.URL.Path,
		"language":   RequestLanguage(r),
	})
	requestLogger.Info("logger_request")
	next(rw, r.WithContext(config.ContextWithLogger(r.Context(), requestLogger)))
}
