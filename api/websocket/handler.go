package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/honeybee-human/Chatroom/internal/errors"
	"github.com/honeybee-human/Chatroom/internal/identity"
	"github.com/honeybee-human/Chatroom/internal/logger"
	ws "github.com/honeybee-human/Chatroom/internal/websocket"
)

// upgrades the request, gives the connection an anonymous identity and
// hands it to the hub. the hub sends the initial state on registration.
func WebSocketHandler(hub *ws.Hub, allocator identity.Allocator, opts Options) gin.HandlerFunc {
	checkOrigin := ws.OriginChecker(opts.Production, opts.AllowedOrigins)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}

	return func(c *gin.Context) {
		ipAddress := c.ClientIP()
		log := logger.With("ip", ipAddress)

		// rejected origins get a JSON 403
		if !checkOrigin(c.Request) {
			errors.Forbidden(c, "origin not allowed")
			return
		}

		// upgrade HTTP connection to WebSocket
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error("failed to upgrade connection", "error", err)

			return
		}

		clientID := ws.GenerateClientID()
		who := allocator.Allocate()
		client := ws.NewClient(clientID, who, ipAddress, opts.SendBuffer, conn, hub)

		select {
		case hub.Register <- client:
		case <-hub.Done():
			log.Warn("connection refused, hub is shut down")
			conn.Close() //nolint:errcheck,gosec // G104: hub already stopped
			return
		}

		go client.WritePump()
		go client.ReadPump()

		log.Info("websocket connection established",
			"client_id", clientID,
			"display_name", who.Name,
		)
	}
}
