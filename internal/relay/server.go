package relay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"codeberg.org/snonux/codetranslator/internal/provider"
)

const (
	// TranslatePath is the endpoint the browser client posts to
	TranslatePath = "/api/translate"

	// maxBodyBytes bounds a request body: 6000 characters of up to four
	// bytes each plus JSON overhead
	maxBodyBytes = 32 << 10

	shutdownTimeout = 10 * time.Second
)

// Config holds relay server configuration
type Config struct {
	Addr           string   // listen address, e.g. ":8080"
	AllowedOrigins []string // CORS origins; empty allows any origin
	Debug          bool     // gin debug mode
}

// DefaultConfig returns default relay configuration
func DefaultConfig() *Config {
	return &Config{
		Addr: ":8080",
	}
}

// Server relays translation requests to a provider
type Server struct {
	provider provider.Provider
	config   *Config
	router   *gin.Engine
}

// NewServer creates a relay server in front of p
func NewServer(p provider.Provider, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	if config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		provider: p,
		config:   config,
	}
	s.router = s.setupRouter()

	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(corsConfig(s.config.AllowedOrigins))
	router.Use(requestID())

	router.POST(TranslatePath, s.Translate)
	router.POST("/translate", s.Translate)
	router.GET("/api/languages", s.Languages)
	router.GET("/healthz", s.Health)
	router.NoRoute(s.NotFound)

	return router
}

// Handler returns the HTTP handler serving all relay routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	if err := s.provider.IsAvailable(); err != nil {
		// Not fatal: every translation will fail with a configuration error
		log.Printf("Warning: provider %s is not usable: %v", s.provider.Name(), err)
	}

	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Relay listening on %s (provider: %s)", s.config.Addr, s.provider.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("relay server failed: %w", err)

	case <-ctx.Done():
		log.Println("Shutting down relay...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("relay shutdown failed: %w", err)
		}
		return nil
	}
}

func corsConfig(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}

	return cors.New(config)
}
