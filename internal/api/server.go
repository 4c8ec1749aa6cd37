// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/newthinker/metricboard/internal/api/handler/api"
	"github.com/newthinker/metricboard/internal/api/handler/web"
	"github.com/newthinker/metricboard/internal/api/middleware"
	"github.com/newthinker/metricboard/internal/api/response"
	"github.com/newthinker/metricboard/internal/app"
	"github.com/newthinker/metricboard/internal/config"
	"github.com/newthinker/metricboard/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server for metricboard
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	app        *app.App
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	TemplatesDir   string
	APIKey         string
	MetricsEnabled bool
	MetricsPath    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// ConfigFrom extracts the server settings from the application config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		TemplatesDir:   cfg.Server.TemplatesDir,
		APIKey:         cfg.Server.APIKey,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
	}
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, a *app.App, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
		app:    a,
	}

	// Set up routes
	if err := s.setupRoutes(cfg); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(a.Metrics())(handler)
	handler = metrics.LoggingMiddleware(logger)(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config) error {
	// Web UI routes
	webHandler, err := web.NewHandler(cfg.TemplatesDir, s.app, s.app.Sessions(), s.logger)
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}
	webHandler.SetMetrics(s.app.Metrics())

	s.mux.HandleFunc("GET /{$}", webHandler.Home)
	s.mux.HandleFunc("GET /analysis", webHandler.Analysis)
	s.mux.HandleFunc("POST /analysis/generate", webHandler.Generate)
	s.mux.HandleFunc("POST /analysis/pages/{id}/delete", webHandler.AskDelete)
	s.mux.HandleFunc("POST /analysis/pages/{id}/confirm", webHandler.ConfirmDelete)
	s.mux.HandleFunc("POST /analysis/pages/{id}/cancel", webHandler.CancelDelete)
	s.mux.HandleFunc("GET /visualization", webHandler.Visualization)
	s.mux.HandleFunc("GET /settings", webHandler.Settings)
	s.mux.HandleFunc("POST /settings", webHandler.SaveSettings)
	s.mux.HandleFunc("GET /pages/{id}", webHandler.Page)
	s.mux.HandleFunc("GET /pages/{id}/report.md", webHandler.Report)

	// JSON API, behind the optional API key
	categories := apihandler.NewCategoriesHandler(s.app)
	pages := apihandler.NewPagesHandler(s.app)
	datasets := apihandler.NewDatasetsHandler(s.app)

	v1 := http.NewServeMux()
	v1.HandleFunc("GET /api/v1/categories", categories.List)
	v1.HandleFunc("GET /api/v1/categories/{name}", categories.Get)
	v1.HandleFunc("GET /api/v1/pages", pages.List)
	v1.HandleFunc("POST /api/v1/pages", pages.Create)
	v1.HandleFunc("GET /api/v1/pages/{id}", pages.Get)
	v1.HandleFunc("DELETE /api/v1/pages/{id}", pages.Delete)
	v1.HandleFunc("GET /api/v1/datasets/{category}", datasets.Get)
	s.mux.Handle("/api/v1/", middleware.APIKeyAuth(cfg.APIKey)(v1))

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if cfg.MetricsEnabled {
		s.mux.Handle("GET "+cfg.MetricsPath, promhttp.HandlerFor(s.app.Metrics(), promhttp.HandlerOpts{}))
	}

	return nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"stats":  s.app.GetStats(r.Context()),
	})
}
