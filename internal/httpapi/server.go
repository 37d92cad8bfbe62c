// Package httpapi exposes a running engine over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/arloliu/spinpick/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine is the part of spinpick.Engine the HTTP surface needs.
type Engine interface {
	Snapshot() types.Snapshot
	RequestSpin() error
}

// Server serves engine state, spin requests and metrics.
type Server struct {
	engine   Engine
	gatherer prometheus.Gatherer
	logger   types.Logger
}

// NewServer creates a new HTTP server for engine.
//
// Parameters:
//   - engine: Engine to expose
//   - gatherer: Metrics registry served on /metrics (nil disables the route)
//   - logger: Logger for request failures
//
// Returns:
//   - *Server: Server whose Routes can be mounted on an http.Server
func NewServer(engine Engine, gatherer prometheus.Gatherer, logger types.Logger) *Server {
	return &Server{
		engine:   engine,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Routes builds the router.
//
//	GET  /healthz  liveness probe
//	GET  /state    engine snapshot as JSON
//	POST /spin     start a spin
//	GET  /metrics  Prometheus exposition
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/state", s.handleState)
	r.Post("/spin", s.handleSpin)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleSpin(w http.ResponseWriter, _ *http.Request) {
	err := s.engine.RequestSpin()
	if err == nil {
		s.writeJSON(w, http.StatusAccepted, s.engine.Snapshot())
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrSpinInProgress):
		status = http.StatusConflict
	case errors.Is(err, types.ErrEmptyRoster):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrClosed):
		status = http.StatusServiceUnavailable
	default:
		s.logger.Error("spin request failed", "error", err)
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}
