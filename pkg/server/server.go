// Package server wires the pipeline into net/http: a page table served at
// web and AMP routes, per-request style and head scopes, response headers,
// transparent gzip, and structured request logging.
package server

import (
	"errors"
	"fmt"
	"html"
	"io/fs"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-ampgen/pkg/config"
	"github.com/goliatone/go-ampgen/pkg/pipeline"
	"github.com/goliatone/go-ampgen/pkg/render"
	"github.com/goliatone/go-ampgen/pkg/target"
)

// ErrNotFound is the sentinel a PropsLoader returns when the requested
// entity does not exist; the server answers 404 instead of 500.
var ErrNotFound = errors.New("not found")

// PropsLoader resolves the props for a page from the incoming request.
type PropsLoader func(r *http.Request) (map[string]any, error)

// Page maps a route onto a catalog component.
type Page struct {
	// Route is the web path, e.g. "/pricing". The AMP variant serves
	// under the configured prefix automatically.
	Route string
	// Component names the catalog entry rendered for the route.
	Component string
	// Title is the page title handed to the document shell.
	Title string
	// PropsLoader supplies per-request props; nil means empty props.
	PropsLoader PropsLoader
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAssets serves the given filesystem under /assets/.
func WithAssets(fsys fs.FS) Option {
	return func(s *Server) {
		s.assets = fsys
	}
}

// Server serves a page table over both targets.
type Server struct {
	pipeline *pipeline.Pipeline
	cfg      config.Config
	logger   zerolog.Logger
	assets   fs.FS
	router   *Router
}

// New builds a server from a pipeline, configuration, and page table.
func New(p *pipeline.Pipeline, cfg config.Config, pages []Page, options ...Option) (*Server, error) {
	if p == nil {
		return nil, errors.New("server: pipeline is required")
	}

	s := &Server{
		pipeline: p,
		cfg:      cfg,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	s.router = NewRouter()
	s.router.Use(requestLog(s.logger))
	s.router.Use(responseHeaders)
	s.router.Use(requestScope)

	for _, page := range pages {
		if !strings.HasPrefix(page.Route, "/") {
			return nil, fmt.Errorf("server: page route %q must start with /", page.Route)
		}
		if page.Component == "" {
			return nil, fmt.Errorf("server: page %q names no component", page.Route)
		}
		s.router.HandleFunc("GET "+page.Route, s.pageHandler(page, target.Web))
		s.router.HandleFunc("GET "+s.ampRoute(page.Route), s.pageHandler(page, target.AMP))
	}

	if s.assets != nil {
		s.router.Handle("GET /assets/", http.StripPrefix("/assets/", assetHandler(s.assets)))
	}

	return s, nil
}

// Handler returns the full handler chain, gzip outermost.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Serve.Addr
}

func (s *Server) ampRoute(route string) string {
	prefix := s.cfg.Site.AMPPrefix
	if prefix == "" {
		prefix = "/amp"
	}
	if route == "/" {
		return prefix + "/{$}"
	}
	return prefix + route
}

func (s *Server) absURL(path string) string {
	base := strings.TrimSuffix(s.cfg.Site.BaseURL, "/")
	return base + path
}

func (s *Server) pageHandler(page Page, tgt target.Target) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		props := map[string]any{}
		if page.PropsLoader != nil {
			loaded, err := page.PropsLoader(r)
			if err != nil {
				s.renderError(w, r, err)
				return
			}
			props = loaded
		}

		ampPath := s.cfg.Site.AMPPrefix + page.Route
		if page.Route == "/" {
			ampPath = s.cfg.Site.AMPPrefix + "/"
		}

		req := pipeline.Request{
			Component: page.Component,
			Target:    tgt,
			Props:     props,
			Page: render.PageMeta{
				Title:        page.Title,
				CanonicalURL: s.absURL(page.Route),
				Lang:         s.cfg.Site.DefaultLang,
			},
		}
		if tgt == target.Web {
			req.Page.AMPURL = s.absURL(ampPath)
		}

		body, err := s.pipeline.Render(r.Context(), req)
		if err != nil {
			s.renderError(w, r, err)
			return
		}

		contentType := "text/html; charset=utf-8"
		if renderer, err := s.pipeline.Renderers().Get(tgt.String()); err == nil {
			contentType = renderer.ContentType()
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(body)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrNotFound) {
		status = http.StatusNotFound
	}

	s.logger.Error().
		Err(err).
		Str("request_id", w.Header().Get("X-Request-Id")).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("page render failed")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, errorPage, status, html.EscapeString(http.StatusText(status)))
}

const errorPage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>%d</title></head>
<body><h1>%[1]d %s</h1></body>
</html>
`

// assetHandler serves static files with long-lived cache headers.
func assetHandler(fsys fs.FS) http.Handler {
	files := http.FileServerFS(fsys)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		files.ServeHTTP(w, r)
	})
}
