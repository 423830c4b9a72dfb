// Package server exposes the panlayout pipeline over HTTP.
//
// # Routes
//
//	GET    /healthz                 liveness and version
//	POST   /v1/parse                notes with roles, octaves and display names
//	POST   /v1/layout               positioned notes (the JSON sink document)
//	POST   /v1/render               one artifact; body field "format" picks svg, png, pdf, json or dot
//	GET    /v1/spell?root=&mode=    sharp/flat decision for a key
//	GET    /v1/presets              preset catalog
//	GET    /v1/presets/{id}         one preset
//	GET    /v1/instruments          saved instruments
//	POST   /v1/instruments          save an instrument
//	GET    /v1/instruments/{id}     one instrument
//	DELETE /v1/instruments/{id}     delete an instrument
//
// Layout requests take either a notation string or a preset id:
//
//	{"layout": "D/(F)-A-Bb-C-D-E-F-G-A", "mode": "aeolian", "radius": 300}
//	{"preset": "kurd-9", "notation": "french", "format": "png"}
//
// Errors are JSON objects with a machine-readable code. Notation errors
// (HTTP 422) also name the parser stage, the failing token and its position.
// Every response carries an X-Request-ID header.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/panforge/panlayout/pkg/catalog"
	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/pipeline"
	"github.com/panforge/panlayout/pkg/store"
)

// Timeouts applied by ListenAndServe and to each request.
const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Runner  *pipeline.Runner
	Catalog *catalog.Catalog
	Store   store.Store
	Logger  *log.Logger

	// Defaults seeds every request's pipeline options (mode, radius, notation ...).
	Defaults pipeline.Options

	// RateLimit is the sustained requests per second allowed per client.
	// Zero disables rate limiting.
	RateLimit float64
	Burst     int
}

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	catalog  *catalog.Catalog
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	limiter  *limiter
	router   chi.Router
}

// New builds a server. A nil Runner, Catalog or Store gets an uncached
// runner, the built-in catalog or an in-memory store respectively.
func New(opts Options) (*Server, error) {
	s := &Server{
		runner:   opts.Runner,
		catalog:  opts.Catalog,
		store:    opts.Store,
		logger:   opts.Logger,
		defaults: opts.Defaults,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.WithPrefix("http")
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		s.catalog = c
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if opts.RateLimit > 0 {
		s.limiter = newLimiter(opts.RateLimit, opts.Burst)
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.rateLimit)
		}
		r.Post("/parse", s.handleParse)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Get("/spell", s.handleSpell)

		r.Get("/presets", s.handlePresets)
		r.Get("/presets/{id}", s.handlePreset)

		r.Get("/instruments", s.handleListInstruments)
		r.Post("/instruments", s.handleSaveInstrument)
		r.Get("/instruments/{id}", s.handleGetInstrument)
		r.Delete("/instruments/{id}", s.handleDeleteInstrument)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Code:      errors.ErrCodeInvalidInput,
			Message:   "method not allowed",
			RequestID: requestIDFrom(r.Context()),
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
