package peerhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clipsync/internal/clock"
	"clipsync/internal/replicator"
	"clipsync/internal/store"
	"clipsync/internal/wire"
)

// defaultRecentLimit is the cap spec §4.3 puts on GET /recent_clipboard.
const defaultRecentLimit = 100

// Handler holds the dependencies the peer surface forwards to; it holds
// no state of its own (spec §3 "Ownership": "The Peer HTTP surface holds
// no state").
type Handler struct {
	store      *store.Store
	replicator *replicator.Replicator
	selfHostID clock.HostID
}

// NewHandler builds a Handler.
func NewHandler(s *store.Store, r *replicator.Replicator, selfHostID clock.HostID) *Handler {
	return &Handler{store: s, replicator: r, selfHostID: selfHostID}
}

// Register mounts the four peer endpoints on router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/clock", h.Clock)
	router.GET("/recent_clipboard", h.RecentClipboard)
	router.POST("/gossip", h.Gossip)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "host_id": h.selfHostID})
}

// Clock handles GET /clock, returning the local clock as a plain JSON
// object (spec §4.3, §6).
func (h *Handler) Clock(c *gin.Context) {
	snapshot, err := h.store.LoadClock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// RecentClipboard handles GET /recent_clipboard.
func (h *Handler) RecentClipboard(c *gin.Context) {
	items, err := h.store.RecentEntries(defaultRecentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []wire.RecentItem{}
	}
	c.JSON(http.StatusOK, items)
}

// Gossip handles POST /gossip (spec §4.2 "Gossip (received)"). Malformed
// bodies never touch the Store or Replicator (spec §7 "reject before
// commit").
func (h *Handler) Gossip(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxGossipBody)

	var req wire.GossipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.replicator.Receive(req.Clock, req.Key, req.Entry, req.TTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}
