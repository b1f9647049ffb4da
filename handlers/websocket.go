package handlers

import (
	"log/slog"
	"net/http"

	"motor-monitor/middlewares"
	"motor-monitor/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades authenticated requests into live viewers.
type WSHandler struct {
	mgr      *ws.Manager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWSHandler accepts same-origin upgrades plus the listed origins; "*"
// accepts any origin.
func NewWSHandler(mgr *ws.Manager, allowedOrigins []string, logger *slog.Logger) *WSHandler {
	h := &WSHandler{mgr: mgr, logger: logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// HandleViewerWS GET /ws
func (h *WSHandler) HandleViewerWS(c *gin.Context) {
	username := ""
	if session, ok := middlewares.CurrentSession(c); ok {
		username = session.Username
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "user", username, "error", err)
		return
	}
	h.mgr.Register(conn, username).Serve()
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set[origin] {
			return true
		}
		// same origin
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}
