// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/pharmacy-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/pharmacy-storefront/internal/interfaces/http/routes"
)

// Server is the storefront HTTP server.
type Server struct {
	deps        routes.Deps
	redisClient *redis.Client
	gin         *gin.Engine
	httpServer  *http.Server
}

// NewServer creates the HTTP server. redisClient is only used for rate
// limiting and may be nil when the cart store runs on another backend.
func NewServer(deps routes.Deps, redisClient *redis.Client) *Server {
	return &Server{deps: deps, redisClient: redisClient}
}

// Start builds the engine and serves until shutdown.
func (s *Server) Start() error {
	cfg := s.deps.Config

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s.gin = gin.New()
	if len(cfg.Security.TrustedProxies) > 0 {
		if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			return fmt.Errorf("invalid trusted proxies: %w", err)
		}
	}

	s.setupMiddleware()
	routes.SetupRoutes(s.gin, s.deps)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	s.deps.Logger.WithField("port", cfg.Server.Port).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.deps.Logger.Info("shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

func (s *Server) setupMiddleware() {
	cfg := s.deps.Config

	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.deps.Logger))
	s.gin.Use(middleware.CORS(cfg))
	s.gin.Use(middleware.SecurityHeaders())
	s.gin.Use(middleware.RateLimit(cfg, s.redisClient))
	s.gin.Use(middleware.Timeout(cfg.Server.WriteTimeout))
	s.gin.Use(middleware.Session(cfg))
	s.gin.Use(middleware.AuthSession())
}
