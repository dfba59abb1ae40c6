package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/errors"
	"github.com/honeybee-human/Chatroom/internal/identity"
	"github.com/honeybee-human/Chatroom/internal/logger"
	"github.com/honeybee-human/Chatroom/internal/metrics"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

// creates a new websocket client connection
func NewClient(id chat.ConnectionID, who identity.Identity, ipAddress string, sendBuffer int, conn *websocket.Conn, hub *Hub) *Client {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}

	return &Client{
		ID:          id,
		DisplayName: who.Name,
		Color:       who.Color,
		IPAddress:   ipAddress,
		conn:        conn,
		hub:         hub,
		send:        make(chan []byte, sendBuffer),
		closed:      false,
	}
}

// reads messages from the websocket connection to the hub for processing
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.Unregister <- c:
		case <-c.hub.done:
		}

		c.conn.Close() //nolint:errcheck,gosec // G104: defer cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: websocket setup
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: pong handler
		return nil
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket error",
					"client_id", c.ID,
					"error", err,
				)
			}

			break
		}

		env, err := protocol.ParseEnvelope(messageBytes)
		if err != nil {
			c.hub.reject(c, "", err)
			continue
		}

		// forward to hub for processing
		select {
		case c.hub.Inbound <- &Message{ClientID: c.ID, Envelope: env}:
		case <-c.hub.done:
			return
		}
	}
}

// writes messages from the hub to the websocket connection for sending to the client
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close() //nolint:errcheck,gosec // G104: defer cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing

			if !ok {
				// hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, c.closeMessage()) //nolint:errcheck,gosec // G104: close message
				return
			}

			// one event per frame so clients can parse each frame as a single envelope
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket ping timing

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sends an envelope to the client
func (c *Client) Send(env *protocol.Envelope) error {
	messageBytes, err := json.Marshal(env)
	if err != nil {
		return err
	}

	return c.enqueue(messageBytes)
}

// queues an encoded event without blocking. a full buffer closes the connection.
func (c *Client) enqueue(messageBytes []byte) (err error) {
	// recover from panic if channel is closed
	defer func() {
		if r := recover(); r != nil {
			err = ErrConnectionClosed
		}
	}()

	c.mu.RLock()

	if c.closed {
		c.mu.RUnlock()
		return ErrConnectionClosed
	}

	c.mu.RUnlock()

	select {
	case c.send <- messageBytes:
		return nil
	default:
		logger.Warn("client send buffer full, closing connection",
			"client_id", c.ID,
			"buffer", cap(c.send),
		)

		metrics.DroppedClients.Inc()

		c.mu.Lock()
		c.overflowed = true
		c.mu.Unlock()

		c.Close()

		return ErrConnectionClosed
	}
}

// sends an error event to the client
func (c *Client) SendError(code, message, details string) {
	// sanitize error details in production
	sanitizedDetails := details

	if details != "" {
		sanitizedDetails = errors.SanitizeString(details)
	}

	errorMsg, err := protocol.NewEnvelope(protocol.TypeError, errors.ErrorResponse{
		Error:   code,
		Message: message,
		Details: sanitizedDetails,
	})
	if err != nil {
		logger.ErrorErr(err, "failed to create error message",
			"client_id", c.ID,
			"error_code", code,
		)
		return
	}

	c.Send(errorMsg) //nolint:errcheck,gosec // G104: best effort error notification
}

// closes the client's outbound channel; WritePump then closes the socket
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// the close frame WritePump sends once the outbound channel is closed
func (c *Client) closeMessage() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.overflowed {
		return websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "send buffer full, please reconnect")
	}

	return []byte{}
}

// checks if the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.closed
}
