// Package server exposes the chat engine over HTTP: POST /chat plus
// health, readiness, metrics and intent discovery endpoints.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"airline-bot/internal/chat"
	"airline-bot/internal/common/config"
	"airline-bot/internal/common/logger"
	"airline-bot/pkg/registry"
)

type Server struct {
	config   *config.Config
	engine   *chat.Engine
	registry *registry.IntentRegistry
	airports int
	logger   logger.Logger
	router   *gin.Engine
	httpSrv  *http.Server
}

// New assembles the gin router. airportCount is reported by /ready as a
// cheap proof the dataset actually loaded.
func New(cfg *config.Config, engine *chat.Engine, reg *registry.IntentRegistry, airportCount int, log logger.Logger) *Server {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:   cfg,
		engine:   engine,
		registry: reg,
		airports: airportCount,
		logger:   log,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(s.requestLogger())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.POST("/chat", s.handleChat)
	router.GET("/health", s.handleHealth)
	router.GET("/ready", s.handleReady)
	router.GET("/intents", s.handleIntents)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router = router
	return s
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until ListenAndServe returns.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         s.config.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Millisecond,
	}

	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpSrv.Addr,
	})
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// requestID tags every request, generating an id when the caller sent none.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info("request handled", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
			"requestID":  c.GetString("requestID"),
		})
	}
}
