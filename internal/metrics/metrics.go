package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatroom_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatroom_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatroom_websocket_connections_active",
			Help: "Current number of active WebSocket connections",
		},
	)

	LedgerMessages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatroom_ledger_messages",
			Help: "Number of messages currently held in history",
		},
	)

	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatroom_events_total",
			Help: "Inbound WebSocket events accepted, by type",
		},
		[]string{"type"},
	)

	EventsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatroom_events_rejected_total",
			Help: "Inbound WebSocket events rejected, by error code",
		},
		[]string{"code"},
	)

	EvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatroom_ledger_evictions_total",
			Help: "Messages removed from history by the capacity policy",
		},
	)

	DroppedClients = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatroom_clients_dropped_total",
			Help: "Connections closed because their send buffer was full",
		},
	)
)

// records request counts and latency. unmatched routes are grouped under "unmatched".
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
