package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joeshaw/envdecode"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/negroni"

	"github.com/heidelpay/heidelpay-go/config"
	"github.com/heidelpay/heidelpay-go/middlewares"
)

func recoveryHandler(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	defer func() {
		if err := recover(); err != nil {
			config.LoggerFromContext(r.Context()).Error(err)
			rw := middlewares.NewResponseWriter(w, r)
			rw.Error(http.StatusInternalServerError, middlewares.Responses.InternalServerError.In(rw.Language))
		}
	}()
	next(w, r)
}

type AppHandlerFunc func(*config.AppContext, *middlewares.ResponseWriter, *http.Request)

type AppHandler struct {
	Context     *config.AppContext
	HandlerFunc AppHandlerFunc
}

func (a *AppHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.HandlerFunc(a.Context, middlewares.NewResponseWriter(w, r), r)
}

type Route struct {
	Path    string
	Handler AppHandlerFunc
	Methods []string
}

func NewRouter(ctx *config.AppContext, routes []*Route) *mux.Router {
	router := mux.NewRouter()
	for _, r := range routes {
		router.Handle(r.Path, &AppHandler{Context: ctx, HandlerFunc: r.Handler}).Methods(r.Methods...)
	}
	return router
}

type ContextWrapper struct {
	Context *config.AppContext
}

// GetAppContext loads the configuration from the environment.
func GetAppContext() (*ContextWrapper, error) {
	var conf config.Configuration
	if err := envdecode.Decode(&conf); err != nil {
		return nil, errors.Wrap(err, "could not load the app configuration")
	}
	config.SetLogger(log.WithFields(log.Fields{"app": conf.AppName, "environment": conf.Environment}))
	return &ContextWrapper{Context: &config.AppContext{Config: conf}}, nil
}

func (wrapper *ContextWrapper) CreateHeidelpayClient() error {
	client, err := config.CreateHeidelpayClient(wrapper.Context.Config.Heidelpay, config.GetLogger())
	if err != nil {
		return errors.Wrap(err, "failed to create heidelpay client")
	}
	wrapper.Context.Heidelpay = client
	return nil
}

func UpServer(routes []*Route, wrapper *ContextWrapper) {
	server := createServer(wrapper.Context, routes)

	log.Info("Environment " + wrapper.Context.Config.Environment)
	log.Info("Listening on " + server.Addr)

	log.Fatal(server.ListenAndServe())
}

// NewHandler builds the middleware chain in front of the routes.
func NewHandler(context *config.AppContext, routes []*Route) http.Handler {
	n := negroni.New()
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "HEAD"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Accept-Language", "X-Request-ID"},
	})
	n.Use(c)
	n.Use(negroni.HandlerFunc(middlewares.LoggerRequest))
	n.UseFunc(recoveryHandler)
	n.UseHandler(NewRouter(context, routes))
	return n
}

func createServer(context *config.AppContext, routes []*Route) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", context.Config.Port),
		ReadTimeout:  time.Duration(context.Config.Timeout) * time.Second,
		WriteTimeout: time.Duration(context.Config.Timeout) * time.Second,
		Handler:      NewHandler(context, routes),
	}
}
