// Package server exposes the scheduling engine over a JSON REST API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/cpusched/internal/config"
	"github.com/me/cpusched/internal/parser"
	"github.com/me/cpusched/internal/scheduler"
	"github.com/me/cpusched/internal/store"
)

// Version is reported by the health and discovery endpoints.
const Version = "0.1.0"

// Server is the cpusched REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	validator *parser.Validator
	engine    *scheduler.Engine
	store     store.Store
	now       func() time.Time
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithClock overrides the clock used to stamp new simulations.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		validator: parser.NewValidator(logger),
		engine:    scheduler.NewEngine(logger),
		store:     st,
		now:       time.Now,
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
	r.Use(maxBodyMiddleware(maxBodyBytes))

	r.Route("/api/v1", func(r chi.Router) {
		// Discovery
		r.Get("/", s.handleDiscovery)

		// Health
		r.Get("/health", s.handleHealth)

		// One-off scheduling, nothing is stored.
		r.Post("/schedule", s.handleSchedule)

		// Simulations
		r.Route("/simulations", func(r chi.Router) {
			r.Get("/", s.handleListSimulations)
			r.Post("/", s.handleCreateSimulation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSimulation)
				r.Delete("/", s.handleDeleteSimulation)
				r.Get("/gantt", s.handleSimulationGantt)
			})
		})
	})
}
