// Package server exposes tiling generation over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /version                         build information
//	GET    /v1/tilings                      generate, Tiling JSON
//	GET    /v1/tilings/render.{format}      generate and render
//	GET    /v1/tilings/stream               websocket rectangle stream
//	GET    /v1/runs                         list stored runs
//	POST   /v1/runs                         generate and store
//	GET    /v1/runs/{id}                    stored run
//	GET    /v1/runs/{id}/render.{format}    render a stored run
//	DELETE /v1/runs/{id}
//
// Generation parameters come from the query string (width, height, min,
// max, steps, seed, strategy) and fall back to the server defaults. The
// /v1/runs routes respond 501 when no store is configured.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/blockfill/pkg/pipeline"
	"github.com/matzehuels/blockfill/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	maxCells int
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the /v1/runs routes.
func WithStore(s store.Store) Option { return func(srv *Server) { srv.store = s } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(srv *Server) { srv.logger = l } }

// WithDefaults sets the options used for missing query parameters.
func WithDefaults(o pipeline.Options) Option { return func(srv *Server) { srv.defaults = o } }

// WithMaxCells caps width*height per request. Zero disables the cap.
func WithMaxCells(n int) Option { return func(srv *Server) { srv.maxCells = n } }

// DefaultMaxCells bounds request grids so one request cannot pin a CPU.
const DefaultMaxCells = 1_000_000

// New creates a server around runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:   runner,
		logger:   log.Default(),
		defaults: pipeline.Options{Seed: pipeline.DefaultSeed},
		maxCells: DefaultMaxCells,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1/tilings", func(r chi.Router) {
		r.Get("/", s.handleGenerate)
		r.Get("/render.{format}", s.handleRender)
		r.Get("/stream", s.handleStream)
	})

	r.Route("/v1/runs", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.handleListRuns)
		r.Post("/", s.handleCreateRun)
		r.Get("/{id}", s.handleGetRun)
		r.Get("/{id}/render.{format}", s.handleRenderRun)
		r.Delete("/{id}", s.handleDeleteRun)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
