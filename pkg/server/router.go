package server

import "net/http"

// Middleware wraps a handler invocation. Implementations decide whether
// and when to call next.
type Middleware func(w http.ResponseWriter, r *http.Request, next http.Handler)

// Router wraps http.ServeMux with middleware chaining.
type Router struct {
	*http.ServeMux

	middlewares []Middleware
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{ServeMux: http.NewServeMux()}
}

// Use appends a middleware to the chain. Middlewares run in registration
// order before the mux dispatches.
func (router *Router) Use(m Middleware) {
	router.middlewares = append(router.middlewares, m)
}

func (router *Router) serve(i int, w http.ResponseWriter, r *http.Request) {
	if i < len(router.middlewares) {
		router.middlewares[i](w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			router.serve(i+1, w, r)
		}))
		return
	}
	router.ServeMux.ServeHTTP(w, r)
}

// ServeHTTP runs the middleware chain and then the mux.
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	router.serve(0, w, r)
}
