package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/honeybee-human/Chatroom/internal/broadcast"
	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/config"
	"github.com/honeybee-human/Chatroom/internal/identity"
	"github.com/honeybee-human/Chatroom/internal/logger"
	"github.com/honeybee-human/Chatroom/internal/protocol"
	ws "github.com/honeybee-human/Chatroom/internal/websocket"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) *Server {
	ledger := chat.NewLedger(cfg.HistoryCapacity, cfg.MaxMessageLength)
	room := chat.NewRoom(ledger, chat.NewFavorites(), chat.NewRegistry())

	format := protocol.NewFormatter(cfg.TimeFormat, time.Local)
	coordinator := broadcast.NewCoordinator(format, broadcast.Texts{
		Welcome: cfg.WelcomeText,
	})

	hub := ws.NewHub(room, coordinator)

	// register websocket message handlers
	ws.RegisterChatHandlers(hub)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		config:    cfg,
		room:      room,
		format:    format,
		allocator: identity.NewRandomAllocator(identity.DefaultPalette, nil),
		hub:       hub,
		router:    router,
	}

	RegisterRoutes(router, server)

	logger.Info("chatroom initialized",
		"history_capacity", cfg.HistoryCapacity,
		"max_message_length", cfg.MaxMessageLength,
		"environment", cfg.Environment,
	)

	return server
}
