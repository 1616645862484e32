// Package http serves the dashboard page, its JSON data APIs, and the
// operational endpoints (health, readiness, metrics).
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/milan-air-quality/internal/dataset"
	"github.com/couchcryptid/milan-air-quality/internal/observability"
)

// DatasetProvider hands out the memoized unified dataset. The dataset
// store implements it; handlers never hold a dataset across requests.
type DatasetProvider interface {
	Get(ctx context.Context) (*dataset.Dataset, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard over HTTP.
type Server struct {
	httpServer *http.Server
	provider   DatasetProvider
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the dashboard HTTP server with all routes registered.
func NewServer(addr string, provider DatasetProvider, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		logger:   logger,
		metrics:  metrics,
	}

	mux.HandleFunc("GET /{$}", s.instrument("index", s.handleIndex))
	mux.HandleFunc("GET /api/summary", s.instrument("summary", s.handleSummary))
	mux.HandleFunc("GET /api/pollutants", s.instrument("pollutants", s.handlePollutants))
	mux.HandleFunc("GET /api/stations", s.instrument("stations", s.handleStations))
	mux.HandleFunc("GET /api/stations/pollutants", s.instrument("station_pollutants", s.handleStationPollutants))
	mux.HandleFunc("GET /api/trend", s.instrument("trend", s.handleTrend))
	mux.HandleFunc("GET /api/ranking", s.instrument("ranking", s.handleRanking))
	mux.HandleFunc("GET /api/detail", s.instrument("detail", s.handleDetail))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.provider.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// statusRecorder captures the response code for the request counter.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
