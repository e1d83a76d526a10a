package httpserver

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with the storefront routes.
func New(addr string, logger *log.Logger, deps Deps) (*Server, error) {
	router, err := buildRouter(logger, deps)
	if err != nil {
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(sessionDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionDir == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "session dir not configured"})
			return
		}
		probe := filepath.Join(sessionDir, ".ready")
		if err := os.MkdirAll(sessionDir, 0o755); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "session dir not writable"})
			return
		}
		if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "session dir not writable"})
			return
		}
		_ = os.Remove(probe)
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
