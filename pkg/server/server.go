// Package server exposes the generation pipeline over HTTP.
//
// # Routes
//
//	POST /v1/generate                      generate (or fetch from cache) a run
//	GET  /v1/runs                          list archived runs, newest first
//	GET  /v1/runs/{id}                     fetch one run
//	GET  /v1/runs/{id}/preview.{format}    render a run as svg, png or pdf
//	GET  /healthz                          liveness
//
// Errors are returned as JSON bodies of the form
// {"error": {"code": "...", "message": "..."}} with the HTTP status derived
// from the error code.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/trackgen/pkg/observability"
	"github.com/matzehuels/trackgen/pkg/pipeline"
	"github.com/matzehuels/trackgen/pkg/storage"
)

// Server limits.
const (
	MaxBodyBytes    = 1 << 20
	RequestTimeout  = 30 * time.Second
	ShutdownTimeout = 10 * time.Second
)

// Server is the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  storage.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server around runner. Runs are archived in runner.Store;
// when the runner has none, an in-memory store is attached.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	if runner.Store == nil {
		runner.Store = storage.NewMemoryStore()
	}
	s := &Server{
		runner: runner,
		store:  runner.Store,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	s.handle(r, http.MethodGet, "/healthz", s.handleHealth)
	s.handle(r, http.MethodPost, "/v1/generate", s.handleGenerate)
	s.handle(r, http.MethodGet, "/v1/runs", s.handleListRuns)
	s.handle(r, http.MethodGet, "/v1/runs/{id}", s.handleGetRun)
	s.handle(r, http.MethodGet, "/v1/runs/{id}/preview.{format}", s.handlePreview)
	return r
}

// handle registers h and reports each request to the HTTP hooks under its
// route pattern.
func (s *Server) handle(r chi.Router, method, pattern string, h http.HandlerFunc) {
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(req.Context(), method, pattern)

		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		h(ww, req)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(req.Context(), method, pattern, status, dur)
		s.logger.Debug("request",
			"method", method,
			"route", pattern,
			"status", status,
			"request_id", middleware.GetReqID(req.Context()),
			"duration", dur)
	}))
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
