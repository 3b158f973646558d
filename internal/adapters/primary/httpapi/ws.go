package httpapi

import (
	"log/slog"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/jupiterclapton/plaza/internal/adapters/secondary/push"
)

// handleWebsocket upgrade la connexion et la confie au hub. Le client envoie
// ensuite {"event":"join","userId":N} pour rejoindre sa room privée.
func (s *Server) handleWebsocket(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // en prod : l'URL du front
	})
	if err != nil {
		slog.Debug("Websocket accept failed", "error", err)
		return
	}

	client := push.NewClient(s.hub, conn)
	go client.WritePump(c.Request.Context())
	client.ReadPump(c.Request.Context())
}
