package messages

import (
	"github.com/gin-gonic/gin"
	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

func RegisterRoutes(router *gin.RouterGroup, room *chat.Room, format protocol.Formatter) {
	router.GET("/messages", ListMessagesHandler(room, format))
	router.GET("/messages/:id", GetMessageHandler(room, format))
	router.GET("/stats", StatsHandler(room))
	router.GET("/sessions", ListSessionsHandler(room))
}
