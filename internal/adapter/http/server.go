package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"github.com/couchcryptid/catalog-dashboard/internal/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ViewsProvider returns the views of the last completed run.
type ViewsProvider interface {
	Views() (domain.DashboardViews, bool)
}

// Server exposes the dashboard plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	views      ViewsProvider
	theme      render.Theme
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /dashboard.png, /dashboard.svg,
// /api/views, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, ready ReadinessChecker, views ViewsProvider, theme render.Theme, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		views:  views,
		theme:  theme,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handleDashboard(render.FormatHTML, "text/html; charset=utf-8"))
	mux.HandleFunc("GET /dashboard.png", s.handleDashboard(render.FormatPNG, "image/png"))
	mux.HandleFunc("GET /dashboard.svg", s.handleDashboard(render.FormatSVG, "image/svg+xml"))
	mux.HandleFunc("GET /api/views", s.handleViews)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
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

// handleDashboard renders into a buffer first so a render failure can still
// produce a clean 500.
func (s *Server) handleDashboard(format render.Format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		views, ok := s.views.Views()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "dashboard not built yet"})
			return
		}

		var buf bytes.Buffer
		if err := render.Render(&buf, format, views, s.theme); err != nil {
			s.logger.Error("render dashboard failed", "format", format, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			s.logger.Warn("write dashboard response failed", "error", err)
		}
	}
}

func (s *Server) handleViews(w http.ResponseWriter, _ *http.Request) {
	views, ok := s.views.Views()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "dashboard not built yet"})
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
