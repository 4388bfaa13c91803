package sync

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // views are public and read-only
	},
}

// WSHandler upgrades the request and keeps the client registered until it
// disconnects. The latest catalog event is replayed on connect, and the
// client is registered by the time it reads the welcome message.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		if err := hub.JoinWS(ws, []byte(`{"type":"welcome","transport":"websocket"}`+"\n")); err != nil {
			log.Warn().Err(err).Str("component", "ws").Msg("join failed")
			_ = ws.Close()
			return
		}
		log.Info().Str("component", "ws").Msg("client connected")

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		log.Info().Str("component", "ws").Msg("client disconnected")
	}
}
