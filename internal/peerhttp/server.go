package peerhttp

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clipsync/internal/clock"
	"clipsync/internal/replicator"
	"clipsync/internal/store"
)

// Server wraps the Gin engine and its underlying http.Server, mirroring
// the reference distributed-kvstore codebase's cmd/server wiring (router
// + middleware + graceful Shutdown), but packaged as a reusable type
// instead of inlined in main.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// NewServer builds a Server bound to addr, serving the four peer
// endpoints over s/r/selfHostID.
func NewServer(addr string, s *store.Store, r *replicator.Replicator, selfHostID clock.HostID, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(Logger(logger), Recovery(logger))

	NewHandler(s, r, selfHostID).Register(router)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// ListenAndServe blocks serving until the listener fails or Shutdown is
// called, in which case it returns nil (http.ErrServerClosed is not
// treated as a failure).
func (s *Server) ListenAndServe() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gives in-flight requests up to timeout to complete before
// closing the listener (spec §5: "The HTTP surface must not hold a Store
// reply indefinitely").
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
