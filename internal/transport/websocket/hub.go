// Package websocket
package websocket

import (
	"context"
	"encoding/json"

	"diskmon/internal/domain"
	"diskmon/internal/logger"
)

// Hub owns the live-subscriber registry. All adds, removes, and fan-outs
// are serialized by the Run goroutine, so the registry is never touched
// from two goroutines at once.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	updates    chan domain.Update

	log logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		updates:    make(chan domain.Update, 100),
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.log.Info("ws: hub shutting down")
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "id", client.ID, "total_clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("ws: client unregistered", "id", client.ID, "total_clients", len(h.clients))
			}

		case update := <-h.updates:
			h.push(update)
		}
	}
}

// Publish queues one cycle's update for fan-out. It never blocks the
// caller; if the hub is saturated the update is dropped.
func (h *Hub) Publish(update domain.Update) {
	select {
	case h.updates <- update:
	default:
		h.log.Warn("ws: update buffer full, dropping update")
	}
}

// push delivers to every registered client independently. A client whose
// send buffer is full is dropped on the spot so one slow subscriber never
// delays the rest.
func (h *Hub) push(update domain.Update) {
	message, err := json.Marshal(update)
	if err != nil {
		h.log.Error("ws: failed to marshal update", "error", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client send buffer full, force unregister", "id", client.ID)
			delete(h.clients, client)
			close(client.send)
		}
	}
}
