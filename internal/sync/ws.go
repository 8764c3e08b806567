package sync

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"evodex/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origins are policed by the CORS middleware
	},
}

// WSHandler upgrades the request and keeps the client registered until it
// disconnects. Incoming messages are ignored.
func WSHandler(hub *Hub, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("ws upgrade failed", "error", err)
			return
		}

		// Welcome goes out before Add so it never races a broadcast write.
		_ = ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"welcome","transport":"websocket"}`))

		hub.Add(ws)
		log.Debug("ws client connected", "remote", c.ClientIP())

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Remove(ws)
		log.Debug("ws client disconnected", "remote", c.ClientIP())
	}
}
