package config

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/heidelpay/heidelpay-go/heidelpay"
)

type Configuration struct {
	Heidelpay   heidelpayConf
	Port        int    `env:"PORT,default=3001"`
	Timeout     int    `env:"TIMEOUT,default=45"`
	QRSize      int    `env:"QR_SIZE,default=256"`
	Environment string `env:"ENVIRONMENT,default=development"`
	AppName     string `env:"APP_NAME,default=heidelpay"`
}

type heidelpayConf struct {
	PrivateKey string        `env:"HEIDELPAY_PRIVATE_KEY,required"`
	PublicKey  string        `env:"HEIDELPAY_PUBLIC_KEY"`
	BaseURL    string        `env:"HEIDELPAY_BASE_URL,default=https://api.heidelpay.com"`
	APIVersion string        `env:"HEIDELPAY_API_VERSION,default=v1"`
	Locale     string        `env:"HEIDELPAY_LOCALE,default=en_US"`
	Timeout    time.Duration `env:"HEIDELPAY_TIMEOUT,default=30s"`
	Debug      bool          `env:"HEIDELPAY_DEBUG,default=false"`
}

type AppContext struct {
	Config    Configuration
	Heidelpay *heidelpay.Client
}

func CreateHeidelpayClient(conf heidelpayConf, logger *log.Entry) (*heidelpay.Client, error) {
	return heidelpay.New(conf.PrivateKey,
		heidelpay.WithBaseURL(conf.BaseURL),
		heidelpay.WithAPIVersion(conf.APIVersion),
		heidelpay.WithLocale(conf.Locale),
		heidelpay.WithTimeout(conf.Timeout),
		heidelpay.WithDebug(conf.Debug),
		heidelpay.WithLogger(logger),
	)
}

type loggerKey struct{}

var logger *log.Entry

func SetLogger(newLogger *log.Entry) {
	logger = newLogger
}

// GetLogger returns the application logger, or the standard logger before
// SetLogger was called.
func GetLogger() *log.Entry {
	if logger == nil {
		return log.NewEntry(log.StandardLogger())
	}
	return logger
}

// ContextWithLogger stores the logger of a request in its context.
func ContextWithLogger(ctx context.Context, entry *log.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry)
}

func LoggerFromContext(ctx context.Context) *log.Entry {
	if entry, ok := ctx.Value(loggerKey{}).(*log.Entry); ok {
		return entry
	}
	return GetLogger()
}
