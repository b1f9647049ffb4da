package handlers

import (
	"net/http"

	"motor-monitor/cache"
	"motor-monitor/services"
	"motor-monitor/ws"

	"github.com/gin-gonic/gin"
)

// LiveStatsHandler reports on the live feed. live and recorder are nil when
// the Redis snapshot store is used or persistence is off.
type LiveStatsHandler struct {
	live     *cache.LiveCache
	mgr      *ws.Manager
	recorder *services.ReadingRecorder
}

func NewLiveStatsHandler(live *cache.LiveCache, mgr *ws.Manager, recorder *services.ReadingRecorder) *LiveStatsHandler {
	return &LiveStatsHandler{live: live, mgr: mgr, recorder: recorder}
}

// GetLiveStats GET /api/live/stats
func (h *LiveStatsHandler) GetLiveStats(c *gin.Context) {
	stats := gin.H{
		"viewers":        h.mgr.Count(),
		"snapshot_store": "redis",
		"persisting":     h.recorder != nil,
	}
	if h.live != nil {
		motors, received := h.live.Stats()
		stats["snapshot_store"] = "memory"
		stats["motors_seen"] = motors
		stats["readings_received"] = received
	}
	if h.recorder != nil {
		stats["pending_writes"] = h.recorder.Pending()
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  stats,
	})
}
