package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

const (
	statsRequestTimeout = 5 * time.Second
	writeWait           = 10 * time.Second
	pongWait            = 60 * time.Second
	pingPeriod          = (pongWait * 9) / 10

	// notices kept for the status area
	maxNotices = 3
)

// endpoints the client talks to
type Options struct {
	WSEndpoint  string `envconfig:"CHATROOM_WS_ENDPOINT" default:"ws://localhost:3000/api/v1/ws"`
	APIEndpoint string `envconfig:"CHATROOM_API_ENDPOINT" default:"http://localhost:3000"`
}

// represents the connection state of the TUI
type AppState int

const (
	StateConnecting AppState = iota
	StateConnected
	StateDisconnected
)

// main TUI application model
type Model struct {
	state    AppState
	width    int
	height   int
	err      error
	ws       *WSClient
	rest     *RESTClient
	room     *RoomState
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	showHelp bool
	ready    bool
}

// the client's view of the room, rebuilt from server events
type RoomState struct {
	Name      string
	Color     string
	Welcome   string
	Messages  []protocol.MessagePayload
	Favorites map[uint64]bool
	Active    int
	Capacity  int
	Notices   []string
	LastError string
	Shutdown  bool
}

// a parsed line of user input
type Action struct {
	// event to send; empty for local actions
	Type    string
	Payload any

	// local action: "help" or "quit"
	Local string
}

// room counters from the REST API
type Stats struct {
	ActiveUsers int    `json:"active_users"`
	Messages    int    `json:"messages"`
	Capacity    int    `json:"capacity"`
	LastID      uint64 `json:"last_id"`
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent once the websocket is open
type WSConnectedMsg struct{}

// sent when the websocket could not be opened
type WSConnectErrorMsg struct {
	err error
}

// sent for every event the server pushes
type WSEventMsg struct {
	env protocol.Envelope
}

// sent when the server closes the connection
type WSClosedMsg struct{}

// sent when the stats request completes
type StatsMsg struct {
	stats Stats
}
