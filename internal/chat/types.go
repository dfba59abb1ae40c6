package chat

import "time"

const (
	// default number of messages kept in history
	DefaultCapacity = 100

	// default maximum body length, in characters
	DefaultMaxBodyLength = 500
)

// identifies one live connection
type ConnectionID string

// a chat message as stored in the ledger
type Message struct {
	ID          uint64
	AuthorID    ConnectionID
	AuthorName  string
	AuthorColor string
	Body        string
	CreatedAt   time.Time
	Edited      bool
	EditedAt    *time.Time
}

// a connected user
type Session struct {
	ID          ConnectionID
	DisplayName string
	Color       string
	ConnectedAt time.Time
}

// a user's resolved favorites, in ledger order
type FavoritesView struct {
	User     ConnectionID
	Messages []Message
}

// result of a successful join
type Joined struct {
	Session     Session
	History     []Message
	Favorites   []Message
	ActiveCount int
}

// result of a disconnect
type Left struct {
	Session     Session
	ActiveCount int
}

// result of an append; Evicted lists ids retired by the capacity policy
type Posted struct {
	Message Message
	Evicted []uint64
}

// result of an authorized edit
type Edited struct {
	Message Message
	Refresh []FavoritesView
}

// result of an authorized delete
type Deleted struct {
	MessageID uint64
	Refresh   []FavoritesView
}

// result of a favorite toggle
type Toggled struct {
	User      ConnectionID
	MessageID uint64
	Favorited bool
	Favorites []Message
}

// snapshot counters for status endpoints
type Stats struct {
	ActiveUsers int
	Messages    int
	Capacity    int
	LastID      uint64
}
