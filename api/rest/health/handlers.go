package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "chatroom"
	version     = "1.0.0"
)

// reports how many connections are live
type ClientCounter interface {
	ClientCount() int
}

// returns the server health status
func Handler(counter ClientCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
			Clients: counter.ClientCount(),
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message: "pong",
	})
}
