package main

import (
	"github.com/gin-gonic/gin"
	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/config"
	"github.com/honeybee-human/Chatroom/internal/identity"
	"github.com/honeybee-human/Chatroom/internal/protocol"
	ws "github.com/honeybee-human/Chatroom/internal/websocket"
)

// holds all dependencies and state for the API server
type Server struct {
	config    *config.Config
	room      *chat.Room
	format    protocol.Formatter
	allocator identity.Allocator
	hub       *ws.Hub
	router    *gin.Engine
}
