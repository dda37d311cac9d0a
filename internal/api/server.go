// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/leadstack/internal/config"
	"github.com/leadstack/internal/logging"
	"github.com/leadstack/internal/service"
	"github.com/leadstack/internal/storage"
)

// Server represents the HTTP API server.
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	leads      *service.LeadService
	lists      storage.ListStore
	logger     *logging.Logger
	config     *ServerConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimit       config.RateLimitConfig
	PingMessage     string
}

// DefaultServerConfig fills in the timeouts main does not care to tune.
func DefaultServerConfig(cfg *config.Config) *ServerConfig {
	return &ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimit:       cfg.RateLimit,
		PingMessage:     cfg.Ping.Message,
	}
}

// NewServer creates a new API server instance.
func NewServer(config *ServerConfig, leads *service.LeadService, lists storage.ListStore, logger *logging.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		leads:  leads,
		lists:  lists,
		logger: logger.WithField("component", "api"),
		config: config,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	rateLimiter := NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst)

	// Middleware order matters: the request id must exist before logging,
	// and recovery must sit inside logging so panics still get a log line.
	s.router.Use(RequestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
	s.router.Use(CORSMiddleware)
	s.router.Use(RateLimitMiddleware(rateLimiter))
	s.router.Use(CompressionMiddleware)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/ping", s.handlePing).Methods("GET")

	api.HandleFunc("/leads", s.handleGetLeads).Methods("GET")
	api.HandleFunc("/leads", s.handleAddLeads).Methods("POST")

	api.HandleFunc("/lists", s.handleGetLists).Methods("GET")
	api.HandleFunc("/lists", s.handleSaveLists).Methods("POST")
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "lead-manager",
	})
}

// handlePing handles liveness probe requests from the client.
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": s.config.PingMessage,
	})
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("starting API server")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
