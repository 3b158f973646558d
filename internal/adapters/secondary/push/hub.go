package push

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub : le canal push. Une room par utilisateur (user:{id}) plus la room
// globale implicite (tous les clients connectés). L'émission est
// fire-and-forget : un destinataire hors-ligne ou lent n'est jamais une erreur.
type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[*Client]struct{} // userID -> clients (un user peut avoir N onglets)
	all   map[*Client]struct{}
}

// envelope imite le framing socket.io : {event, data}
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[int64]map[*Client]struct{}),
		all:   make(map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[c] = struct{}{}
}

// join place le client dans sa room privée (après le message "join" du front)
func (h *Hub) join(c *Client, userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.userID = userID
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*Client]struct{})
	}
	h.rooms[userID][c] = struct{}{}
	slog.Debug("👂 Client joined room", "user_id", userID)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.all, c)
	if room, ok := h.rooms[c.userID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.userID)
		}
	}
	c.closeSend()
}

// EmitToUser pousse vers la room privée user:{id}. Personne dans la room :
// no-op silencieux, l'historique Redis prendra le relais au prochain poll.
func (h *Hub) EmitToUser(userID int64, event string, payload any) {
	data, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		slog.Error("❌ Push marshal failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[userID] {
		c.trySend(data)
	}
}

// BroadcastAll pousse à tous les clients connectés (ex: update_top_3)
func (h *Hub) BroadcastAll(event string, payload any) {
	data, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		slog.Error("❌ Push marshal failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.all {
		c.trySend(data)
	}
}
