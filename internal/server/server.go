// Package server exposes the payoff engine over an HTTP API.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"options-payoff/internal/config"
	"options-payoff/internal/logging"
	"options-payoff/internal/store"
)

// Server hosts the evaluation API.
type Server struct {
	cfg    *config.Config
	logger zerolog.Logger
	store  store.Store // nil when history is disabled
}

// New creates a new server.
func New(cfg *config.Config, logger zerolog.Logger, st store.Store) *Server {
	return &Server{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "server"),
		store:  st,
	}
}

// Router configures the gin router and its routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.observeRequests())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/strategies", s.handleListStrategies)
		v1.GET("/strategies/:name", s.handleGetStrategy)
		v1.POST("/strategies/:name/evaluate", s.handleEvaluateStrategy)
		v1.POST("/evaluate", s.handleEvaluateLegs)
	}

	return r
}

// Run serves the API until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr(),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// observeRequests records per-request metrics and a debug log line. The
// request-scoped logger picks up the X-Request-ID header when present and
// travels in the request context for handlers to use.
func (s *Server) observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		logger := s.logger
		if id := c.GetHeader("X-Request-ID"); id != "" {
			logger = logging.WithRequestID(logger, id)
		}
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), logger))

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequests.WithLabelValues(path, strconv.Itoa(c.Writer.Status())).Inc()
		logging.LogHTTPRequest(logger, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
