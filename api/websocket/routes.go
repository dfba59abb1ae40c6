package websocket

import (
	"github.com/gin-gonic/gin"

	"github.com/honeybee-human/Chatroom/internal/identity"
	ws "github.com/honeybee-human/Chatroom/internal/websocket"
)

func RegisterRoutes(router *gin.RouterGroup, hub *ws.Hub, allocator identity.Allocator, opts Options) {
	router.GET("/ws", WebSocketHandler(hub, allocator, opts))
}
