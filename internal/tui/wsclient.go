package tui

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

// manages the websocket connection to the chat server
type WSClient struct {
	endpoint  string
	conn      *websocket.Conn
	mu        sync.Mutex
	connected bool
	events    chan protocol.Envelope
}

// creates a new websocket client
func NewWSClient(endpoint string) *WSClient {
	return &WSClient{
		endpoint: endpoint,
		events:   make(chan protocol.Envelope, 64),
	}
}

// establishes the websocket connection
func (c *WSClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.conn = conn

	// set up ping/pong handlers to keep the connection alive
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: pong handler
		return nil
	})

	c.connected = true

	go c.readPump(conn)
	go c.pingPump(conn)

	return nil
}

// sends periodic pings to keep the connection alive
func (c *WSClient) pingPump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()

		if !c.connected || c.conn != conn {
			c.mu.Unlock()
			return
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket ping timing
		err := conn.WriteMessage(websocket.PingMessage, nil)
		c.mu.Unlock()

		if err != nil {
			return
		}
	}
}

// continuously reads events and hands them to the UI. closes events on exit.
func (c *WSClient) readPump(conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		c.connected = false
		conn.Close() //nolint:errcheck,gosec // G104: defer cleanup
		c.mu.Unlock()

		close(c.events)
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: websocket timing

		var env protocol.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}

		c.events <- env
	}
}

// sends an event to the server
func (c *WSClient) Send(eventType string, payload any) error {
	env, err := protocol.NewEnvelope(eventType, payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return fmt.Errorf("not connected")
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing

	return c.conn.WriteJSON(env)
}

// returns whether the client is connected
func (c *WSClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// closes the websocket connection
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")) //nolint:errcheck,gosec // best effort
		c.conn.Close()                                                                                               //nolint:errcheck,gosec // G104: cleanup
	}

	c.connected = false
}

// returns a tea.Cmd that connects to the websocket server
func (c *WSClient) ConnectCmd() tea.Cmd {
	return func() tea.Msg {
		if err := c.Connect(); err != nil {
			return WSConnectErrorMsg{err: err}
		}

		return WSConnectedMsg{}
	}
}

// returns a tea.Cmd that waits for the next server event
func (c *WSClient) WaitForEvent() tea.Cmd {
	return func() tea.Msg {
		env, ok := <-c.events
		if !ok {
			return WSClosedMsg{}
		}

		return WSEventMsg{env: env}
	}
}

// returns a tea.Cmd that sends an event
func (c *WSClient) SendCmd(eventType string, payload any) tea.Cmd {
	return func() tea.Msg {
		if err := c.Send(eventType, payload); err != nil {
			return ErrorMsg{err: fmt.Errorf("failed to send %s: %w", eventType, err)}
		}

		return nil
	}
}
