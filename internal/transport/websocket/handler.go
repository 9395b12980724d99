package websocket

import (
	"net/http"
	"slices"

	"diskmon/internal/config"
	"diskmon/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewHandler(hub *Hub, cfg *config.Config, log logger.Logger) *Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// An empty allowlist means the dashboard is served from
			// anywhere, e.g. a file:// page during development.
			if len(cfg.AllowedOrigins) == 0 {
				return true
			}

			origin := r.Header.Get("Origin")
			allowed := slices.Contains(cfg.AllowedOrigins, origin)
			if !allowed {
				log.Warn("ws: origin rejected", "origin", origin)
			}
			return allowed
		},
	}

	return &Handler{hub: hub, upgrader: upgrader, log: log}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws: upgrade failed", "error", err)
		return
	}

	client := NewClient(uuid.NewString(), h.hub, conn, h.log)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.log.Info("ws: client connected", "id", client.ID, "remote_addr", conn.RemoteAddr())
}
