package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	writeTimeout     = 10 * time.Second
	readLimit        = 4096
	clientSendBuffer = 64
)

// Client enveloppe une connexion websocket gérée par le Hub.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	userID    int64
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	c := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}
	hub.register(c)
	return c
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// trySend est non bloquant : un client dont le buffer déborde perd le message,
// il n'a qu'à re-poller l'historique. Jamais de backpressure vers le pipeline.
func (c *Client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
		slog.Debug("Push buffer full, dropping frame", "user_id", c.userID)
	}
}

// ReadPump consomme les messages entrants jusqu'à la fermeture. Le seul
// message attendu du front est le "join" avec l'id de l'utilisateur.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		c.conn.CloseNow()
	}()

	c.conn.SetReadLimit(readLimit)

	for {
		_, raw, err := c.conn.Read(ctx)
		if err != nil {
			return
		}

		var msg struct {
			Event  string `json:"event"`
			UserID int64  `json:"userId"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Event == "join" && msg.UserID > 0 {
			c.hub.join(c, msg.UserID)
		}
	}
}

// WritePump draine le buffer d'envoi vers la connexion
func (c *Client) WritePump(ctx context.Context) {
	for data := range c.send {
		writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := c.conn.Write(writeCtx, websocket.MessageText, data)
		cancel()
		if err != nil {
			return
		}
	}
}
