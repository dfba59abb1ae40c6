package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/honeybee-human/Chatroom/internal/broadcast"
	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

// client connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 16 * 1024 // 16 KB

	// default outbound buffer per connection
	DefaultSendBuffer = 256
)

// how long clients get to read server-shutdown before connections close
const defaultShutdownGrace = 500 * time.Millisecond

// errors
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrConnectionClosed = errors.New("connection closed")
)

// an inbound event tagged with the connection that sent it
type Message struct {
	ClientID chat.ConnectionID
	Envelope *protocol.Envelope
}

// represents a websocket client connection
type Client struct {
	// unique identifier for this connection
	ID chat.ConnectionID

	// anonymous display name and color
	DisplayName string
	Color       string

	// IP address of the client (for logging)
	IPAddress string

	// websocket connection
	conn *websocket.Conn

	// hub reference for inbound events
	hub *Hub

	// buffered channel of outbound messages
	send chan []byte

	// mutex for thread-safe operations
	mu sync.RWMutex

	// flag indicating if client is closed
	closed bool

	// closed because the send buffer filled up
	overflowed bool
}

// owns the live connections and runs every state change through one loop
type Hub struct {
	// live clients by connection ID
	clients map[chat.ConnectionID]*Client

	// register requests from clients
	Register chan *Client

	// unregister requests from clients
	Unregister chan *Client

	// inbound events from clients
	Inbound chan *Message

	// mutex for thread-safe access to clients
	mu sync.RWMutex

	// message handlers for different message types
	handlers map[string]MessageHandler

	// chat state and delivery planning
	room        *chat.Room
	coordinator *broadcast.Coordinator

	// channel to signal shutdown
	shutdown     chan struct{}
	shutdownOnce sync.Once

	// closed when Run returns
	done chan struct{}

	// wait between server-shutdown and closing connections
	shutdownGrace time.Duration

	// sequence number stamped on every outbound event
	sequence uint64
}

// processes a specific message type
type MessageHandler func(hub *Hub, client *Client, msg *Message) error

type HubOption func(*Hub)
