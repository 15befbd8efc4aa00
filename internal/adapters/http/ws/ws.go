// Package ws bridges the alert broadcaster to websocket subscribers. Each
// connection holds exactly one subscription for its lifetime; closing the
// connection cancels the subscription.
package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/deeparex/Food-monitoring-System/internal/adapters/broadcast"
	"github.com/deeparex/Food-monitoring-System/pkg/logger"
)

const (
	// writeWait is the time allowed to write an event to the peer.
	writeWait = 10 * time.Second
	// pongWait is the time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second
	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize bounds inbound messages; subscribers only listen.
	maxMessageSize = 512
)

// Handler upgrades HTTP requests into alert subscriptions.
type Handler struct {
	broadcaster *broadcast.Broadcaster
	upgrader    websocket.Upgrader
	logger      logger.Logger
}

// NewHandler creates a websocket handler bound to the broadcaster.
func NewHandler(b *broadcast.Broadcaster, l logger.Logger) *Handler {
	return &Handler{
		broadcaster: b,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: l,
	}
}

// HandleAlerts handles GET /ws/alerts requests: it upgrades the connection,
// registers a subscription, and streams alert events until either side
// closes.
func (h *Handler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}

	sub := h.broadcaster.Subscribe()
	h.logger.Debug(r.Context(), "alert subscriber connected",
		logger.String("subscription", sub.ID().String()),
		logger.String("remote", conn.RemoteAddr().String()),
	)

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
}

// readPump drains inbound frames to keep the connection's read side alive
// and detects the peer going away.
func (h *Handler) readPump(conn *websocket.Conn, sub *broadcast.Subscription) {
	defer func() {
		h.broadcaster.Unsubscribe(sub)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump streams alert events to the peer and keeps it alive with pings.
func (h *Handler) writePump(conn *websocket.Conn, sub *broadcast.Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Subscription cancelled; tell the peer and stop.
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
