// Package peerhttp is the Peer HTTP surface (spec §4.3): GET /health,
// GET /clock, GET /recent_clipboard and POST /gossip, served with Gin the
// same way the reference distributed-kvstore codebase's internal/api
// package wires its router, logger middleware, and recovery middleware.
package peerhttp

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// maxGossipBody caps an inbound gossip body at 16 MiB (spec §4.3), mainly
// to bound image clipboard entries relayed between hosts.
const maxGossipBody = 16 << 20

// Logger logs method, path, status and latency for every request.
func Logger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Printf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Recovery turns a panic in a handler into a 500 instead of crashing the
// process, the same contract the reference codebase's Recovery middleware
// gives its handlers.
func Recovery(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Printf("panic recovered: %v", err)
				c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}
