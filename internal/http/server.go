// Package http wires the public gin router and the metrics listener.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/tokenshare/internal/metrics"
	vaultHTTP "github.com/allisson/tokenshare/internal/vault/http"
)

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig carries the edge settings applied by SetupRouter.
type RouterConfig struct {
	CORSEnabled      bool
	CORSAllowOrigins string

	RevealRateLimitEnabled bool
	RevealRateLimitRPS     float64
	RevealRateLimitBurst   int

	// MeterProvider enables HTTP metrics when non-nil.
	MeterProvider    metric.MeterProvider
	MetricsNamespace string
}

// Server is the public API listener.
type Server struct {
	pinger       Pinger
	server       *http.Server
	logger       *slog.Logger
	router       *gin.Engine
	shuttingDown atomic.Bool
}

// NewServer creates a server listening on host:port. pinger may be nil when the store
// has no external connection (the in-memory driver).
func NewServer(pinger Pinger, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		pinger: pinger,
		logger: logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine. ctx bounds background work owned by middlewares.
func (s *Server) SetupRouter(ctx context.Context, cfg RouterConfig, vaultHandler *vaultHTTP.VaultHandler) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	router.Use(CustomLoggerMiddleware(s.logger))
	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		secrets := v1.Group("/secrets")
		secrets.POST("", vaultHandler.CreateSecretHandler)

		revealHandlers := []gin.HandlerFunc{}
		if cfg.RevealRateLimitEnabled {
			revealHandlers = append(revealHandlers, vaultHTTP.RevealRateLimitMiddleware(
				ctx,
				cfg.RevealRateLimitRPS,
				cfg.RevealRateLimitBurst,
				s.logger,
			))
		}
		revealHandlers = append(revealHandlers, vaultHandler.RevealSecretHandler)
		secrets.POST("/reveal", revealHandlers...)
	}

	s.router = router
	s.server.Handler = router
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown marks the server not ready and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shuttingDown.Store(true)
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler pings the store with a short deadline.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.shuttingDown.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"server": "shutting_down"},
		})
		return
	}

	if s.pinger == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"components": gin.H{"database": "not_configured"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.pinger.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
