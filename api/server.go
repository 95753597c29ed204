package api

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paw-chain/multiswap/app"
)

// Server is the HTTP front end of a multiswap App.
type Server struct {
	router *gin.Engine
	app    *app.App
	config *Config
	auth   *AuthService
	logger log.Logger
}

// Config holds server configuration
type Config struct {
	Host            string
	Port            string
	JWTSecret       []byte
	TokenTTL        time.Duration
	CORSOrigins     []string
	RateLimitRPS    int
	MaxRequestSize  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "127.0.0.1",
		Port:            "5000",
		TokenTTL:        24 * time.Hour,
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    100,
		MaxRequestSize:  1 << 20,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewServer creates a new API server instance
func NewServer(a *app.App, logger log.Logger, config *Config) (*Server, error) {
	if a == nil {
		return nil, errors.New("api: nil app")
	}
	if config == nil {
		config = DefaultConfig()
	}
	logger = logger.With("module", "api")

	if len(config.JWTSecret) == 0 {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		config.JWTSecret = secret
		logger.Warn("JWT secret generated randomly; tokens will not survive a restart")
	}

	s := &Server{
		app:    a,
		config: config,
		auth:   NewAuthService(config.JWTSecret, config.TokenTTL),
		logger: logger,
	}
	s.setupRouter()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Auth returns the token service bound to the server secret.
func (s *Server) Auth() *AuthService {
	return s.auth
}

func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)
	s.router = gin.New()

	// Order matters: recovery first, rate limiting before any handler work.
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestSizeLimitMiddleware(s.config.MaxRequestSize))
	s.router.Use(RequestIDMiddleware())
	s.router.Use(TracingMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(s.CORSMiddleware())
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.registerRoutes()
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"height":      s.app.Height(),
		"chain_id":    s.app.ChainID(),
		"initialized": s.app.Initialized(),
		"timestamp":   time.Now().Unix(),
	})
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.config.Host, s.config.Port),
		Handler:           s.router,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.config.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
