// Package web contains a small web framework extension over net/http.
package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Encoder defines behavior that can encode a data model and provide
// the content type for that encoding.
type Encoder interface {
	Encode() (data []byte, contentType string, err error)
}

// HandlerFunc represents a function that handles a http request within our own
// little mini framework.
type HandlerFunc func(ctx context.Context, r *http.Request) Encoder

// MidFunc wraps a HandlerFunc with cross-cutting behavior.
type MidFunc func(HandlerFunc) HandlerFunc

// Telemetry represents a type that can manage trace ids on a context.
type Telemetry interface {
	SetTraceID(ctx context.Context) context.Context
	GetTraceID(ctx context.Context) string
}

// App is the entrypoint into our application and what configures our context
// object for each of our http handlers.
type App struct {
	log       *logger.Logger
	mux       *http.ServeMux
	telemetry Telemetry
	globalMw  []MidFunc
}

// NewApp creates an App value that handles a set of routes for the
// application. The global middleware runs, in order, around every handler
// registered through Handle.
func NewApp(log *logger.Logger, telemetry Telemetry, mw ...MidFunc) *App {
	return &App{
		log:       log,
		mux:       http.NewServeMux(),
		telemetry: telemetry,
		globalMw:  mw,
	}
}

// ServeHTTP implements the http.Handler interface.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Handle sets a handler function for a given HTTP method and path pair, with
// the global middleware plus any route-specific middleware applied.
func (a *App) Handle(method string, path string, handlerFunc HandlerFunc, mw ...MidFunc) {
	handlerFunc = wrapMiddleware(mw, handlerFunc)
	handlerFunc = wrapMiddleware(a.globalMw, handlerFunc)

	a.register(method, path, handlerFunc)
}

// HandleNoMiddleware sets a handler function without the global middleware.
// Liveness probes want this.
func (a *App) HandleNoMiddleware(method string, path string, handlerFunc HandlerFunc) {
	a.register(method, path, handlerFunc)
}

// HandleRaw registers a plain http.Handler, bypassing the framework.
func (a *App) HandleRaw(pattern string, handler http.Handler) {
	a.mux.Handle(pattern, handler)
}

func (a *App) register(method string, path string, handlerFunc HandlerFunc) {
	h := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if a.telemetry != nil {
			ctx = a.telemetry.SetTraceID(ctx)
		}
		ctx = setWriter(ctx, w)

		resp := handlerFunc(ctx, r)

		if err := Respond(ctx, w, resp); err != nil {
			a.log.Error(ctx, "web-respond", "err", err)
		}
	}

	a.mux.HandleFunc(fmt.Sprintf("%s %s", method, path), h)
}

// wrapMiddleware wraps the handler with each middleware, last one innermost,
// so execution order matches slice order.
func wrapMiddleware(mw []MidFunc, handler HandlerFunc) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}
	return handler
}
