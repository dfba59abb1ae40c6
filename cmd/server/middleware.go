package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/honeybee-human/Chatroom/internal/config"
	"github.com/honeybee-human/Chatroom/internal/logger"
)

// allows any origin outside production; production is limited to ALLOWED_ORIGINS
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if cfg.IsProduction() && len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		if cfg.IsProduction() {
			logger.Warn("ALLOWED_ORIGINS not configured, allowing all origins for REST")
		}

		corsConfig.AllowAllOrigins = true
	}

	return cors.New(corsConfig)
}

// logs each request with the shared logger
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}
