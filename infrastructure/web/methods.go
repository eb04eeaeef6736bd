package web

func (g *RouteGroup) GET(path string, handler HandlerFunc, middleware ...MidFunc) {
	g.Handle("GET", path, handler, middleware...)
}

func (g *RouteGroup) POST(path string, handler HandlerFunc, middleware ...MidFunc) {
	g.Handle("POST", path, handler, middleware...)
}

func (g *RouteGroup) PUT(path string, handler HandlerFunc, middleware ...MidFunc) {
	g.Handle("PUT", path, handler, middleware...)
}

func (g *RouteGroup) PATCH(path string, handler HandlerFunc, middleware ...MidFunc) {
	g.Handle("PATCH", path, handler, middleware...)
}

func (g *RouteGroup) DELETE(path string, handler HandlerFunc, middleware ...MidFunc) {
	g.Handle("DELETE", path, handler, middleware...)
}
