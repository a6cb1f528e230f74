// Package server exposes the HTTP surface of the feiertage wrapper.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/breezko/feiertage-api/internal/feiertage"
)

// Server holds the handler dependencies.
type Server struct {
	client *feiertage.Client
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Server backed by the given upstream client.
func New(client *feiertage.Client, logger *zap.Logger) *Server {
	return &Server{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/", s.handleFeiertage)
	router.GET("/ical", s.handleICal)
	router.GET("/health", s.handleHealth)

	return router
}

// requestLogger logs one line per request through zap.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// The health endpoint is hit every 30s by the keepalive task;
		// logging it at info would drown everything else out.
		if c.FullPath() == "/health" {
			return
		}

		s.logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
