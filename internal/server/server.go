// Package server exposes the simulator over a REST API. Simulations
// are executed synchronously on request and persisted for later
// retrieval and export.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/store"
	"github.com/me/schedsim/internal/telemetry"
)

// Server is the schedsim REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	collector *telemetry.Collector
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithCollector sets the metrics collector. Without it no metrics are
// recorded and /metrics serves the default registry.
func WithCollector(c *telemetry.Collector) Option {
	return func(s *Server) {
		s.collector = c
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		// Discovery
		r.Get("/", s.handleDiscovery)

		// Health
		r.Get("/health", s.handleHealth)

		// Policies
		r.Get("/policies", s.handleListPolicies)

		// Simulations
		r.Route("/simulations", func(r chi.Router) {
			r.Get("/", s.handleListSimulations)
			r.Post("/", s.handleCreateSimulation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSimulation)
				r.Delete("/", s.handleDeleteSimulation)
				r.Get("/summary", s.handleSimulationSummary)
				r.Get("/export", s.handleExportSimulation)
			})
		})

		// Aging comparison (not persisted)
		r.Post("/compare", s.handleCompare)

		// Workload sampling
		r.Post("/samples", s.handleSample)
	})
}
