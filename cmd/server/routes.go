package main

import (
	"github.com/gin-gonic/gin"
	"github.com/honeybee-human/Chatroom/api/rest/health"
	"github.com/honeybee-human/Chatroom/api/rest/messages"
	"github.com/honeybee-human/Chatroom/api/websocket"
	"github.com/honeybee-human/Chatroom/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config))
	router.Use(RequestLogger())
	router.Use(metrics.Middleware())

	router.GET("/health", health.Handler(server.hub))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		messages.RegisterRoutes(v1, server.room, server.format)
		websocket.RegisterRoutes(v1, server.hub, server.allocator, websocket.Options{
			SendBuffer:     server.config.SendBuffer,
			Production:     server.config.IsProduction(),
			AllowedOrigins: server.config.AllowedOrigins,
		})
	}
}
