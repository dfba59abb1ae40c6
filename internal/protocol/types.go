package protocol

import (
	"encoding/json"
	"time"
)

// inbound event types (client -> server)
const (
	// is sent when a user posts a new message
	TypeSendMessage = "send-message"

	// is sent when a user edits one of their messages
	TypeEditMessage = "edit-message"

	// is sent when a user deletes one of their messages
	TypeDeleteMessage = "delete-message"

	// is sent when a user stars or unstars a message
	TypeToggleFavorite = "toggle-favorite"

	// is sent by clients to keep the connection alive
	TypePing = "ping"
)

// outbound event types (server -> client)
const (
	// is sent to a connecting client with its anonymous identity
	TypeIdentityAssigned = "identity-assigned"

	// is sent to a connecting client with the current history
	TypeHistory = "history"

	// is sent to a client whenever its favorites change
	TypeFavorites = "favorites"

	// is sent to everyone when a message is posted
	TypeMessageCreated = "message-created"

	// is sent to everyone when a message is edited
	TypeMessageEdited = "message-edited"

	// is sent to everyone when a message is deleted
	TypeMessageDeleted = "message-deleted"

	// is sent to other clients when a user connects
	TypeUserJoined = "user-joined"

	// is sent to other clients when a user disconnects
	TypeUserLeft = "user-left"

	// is sent to everyone when the number of connections changes
	TypeActiveCount = "active-count"

	// is sent to the sender when an event is rejected
	TypeError = "error"

	// is sent by server in response to ping
	TypePong = "pong"

	// is sent by server before shutdown
	TypeServerShutdown = "server-shutdown"
)

// wraps every event on the wire
type Envelope struct {
	Type      string          `json:"type"`
	Sequence  uint64          `json:"seq,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// a message as rendered for clients; timestamps are display-ready strings
type MessagePayload struct {
	ID          uint64  `json:"id"`
	AuthorID    string  `json:"authorId"`
	AuthorName  string  `json:"authorName"`
	AuthorColor string  `json:"authorColor"`
	Body        string  `json:"body"`
	CreatedAt   string  `json:"createdAt"`
	Edited      bool    `json:"edited"`
	EditedAt    *string `json:"editedAt"`
}

// contains the body of a new message
type SendMessagePayload struct {
	Body string `json:"body" validate:"required"`
}

// contains an edit request
type EditMessagePayload struct {
	MessageID uint64 `json:"messageId" validate:"required"`
	NewBody   string `json:"newBody" validate:"required"`
}

// contains a delete request; also accepts a bare numeric id
type DeleteMessagePayload struct {
	MessageID uint64 `json:"messageId" validate:"required"`
}

// contains a favorite toggle; also accepts a bare numeric id
type ToggleFavoritePayload struct {
	MessageID uint64 `json:"messageId" validate:"required"`
}

type IdentityAssignedPayload struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	WelcomeText string `json:"welcomeText"`
}

type HistoryPayload struct {
	Messages []MessagePayload `json:"messages"`
}

type FavoritesPayload struct {
	Messages []MessagePayload `json:"messages"`
}

type MessageCreatedPayload struct {
	Message MessagePayload `json:"message"`
}

type MessageEditedPayload struct {
	Message MessagePayload `json:"message"`
}

type MessageDeletedPayload struct {
	MessageID uint64 `json:"messageId"`
}

// used for both user-joined and user-left
type PresencePayload struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Text  string `json:"text"`
}

type ActiveCountPayload struct {
	N int `json:"n"`
}

// contains information about server shutdown
type ServerShutdownPayload struct {
	Reason string `json:"reason"`
}
