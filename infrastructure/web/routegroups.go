package web

import "strings"

// RouteGroup registers handlers under a shared path prefix and middleware
// stack.
type RouteGroup struct {
	app        *App
	prefix     string
	middleware []MidFunc
}

func (a *App) Group(prefix string, middleware ...MidFunc) *RouteGroup {
	return &RouteGroup{
		app:        a,
		prefix:     strings.TrimSuffix(prefix, "/"),
		middleware: middleware,
	}
}

func (g *RouteGroup) Handle(method, path string, handler HandlerFunc, middleware ...MidFunc) {
	allMiddleware := append(append([]MidFunc{}, g.middleware...), middleware...)
	g.app.Handle(method, g.prefix+path, handler, allMiddleware...)
}

func (g *RouteGroup) Group(prefix string, middleware ...MidFunc) *RouteGroup {
	combined := append(append([]MidFunc{}, g.middleware...), middleware...)
	return &RouteGroup{
		app:        g.app,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: combined,
	}
}
