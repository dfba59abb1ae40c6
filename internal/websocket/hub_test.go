package websocket

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/honeybee-human/Chatroom/internal/broadcast"
	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/errors"
	"github.com/honeybee-human/Chatroom/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T, capacity int) *Hub {
	t.Helper()

	room := chat.NewRoom(chat.NewLedger(capacity, chat.DefaultMaxBodyLength), chat.NewFavorites(), chat.NewRegistry())
	coordinator := broadcast.NewCoordinator(protocol.NewFormatter("", time.UTC), broadcast.Texts{})

	hub := NewHub(room, coordinator, WithShutdownGrace(0))
	RegisterChatHandlers(hub)

	go hub.Run()

	t.Cleanup(func() {
		hub.Shutdown()
		<-hub.Done()
	})

	return hub
}

func newMockClient(hub *Hub, id string) *Client {
	return &Client{
		ID:          chat.ConnectionID(id),
		DisplayName: "User-" + id,
		Color:       "#3498db",
		hub:         hub,
		send:        make(chan []byte, 256),
	}
}

// registers a client and consumes its initial state
func connect(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()

	client := newMockClient(hub, id)
	hub.Register <- client

	expectTypes(t, client,
		protocol.TypeIdentityAssigned,
		protocol.TypeHistory,
		protocol.TypeFavorites,
		protocol.TypeActiveCount,
	)

	return client
}

func emit(t *testing.T, hub *Hub, client *Client, eventType string, payload any) {
	t.Helper()

	env, err := protocol.NewEnvelope(eventType, payload)
	require.NoError(t, err)

	hub.Inbound <- &Message{ClientID: client.ID, Envelope: env}
}

func next(t *testing.T, client *Client) protocol.Envelope {
	t.Helper()

	select {
	case data, ok := <-client.send:
		require.True(t, ok, "send channel closed for %s", client.ID)

		var env protocol.Envelope
		require.NoError(t, json.Unmarshal(data, &env))

		return env

	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event on %s", client.ID)
	}

	return protocol.Envelope{}
}

func expectTypes(t *testing.T, client *Client, types ...string) []protocol.Envelope {
	t.Helper()

	envs := make([]protocol.Envelope, 0, len(types))

	for _, want := range types {
		env := next(t, client)
		require.Equal(t, want, env.Type, "unexpected event for %s", client.ID)
		envs = append(envs, env)
	}

	return envs
}

// pings through the hub loop; the pong must be the next event, so nothing else was queued
func expectQuiet(t *testing.T, hub *Hub, client *Client) {
	t.Helper()

	emit(t, hub, client, protocol.TypePing, nil)
	expectTypes(t, client, protocol.TypePong)
}

func decode[T any](t *testing.T, env protocol.Envelope) T {
	t.Helper()

	var payload T
	require.NoError(t, json.Unmarshal(env.Payload, &payload))

	return payload
}

func TestHubCreation(t *testing.T) {
	hub := NewHub(nil, nil)
	require.NotNil(t, hub)
	assert.NotNil(t, hub.Register)
	assert.NotNil(t, hub.Unregister)
	assert.NotNil(t, hub.Inbound)
	assert.Equal(t, defaultShutdownGrace, hub.shutdownGrace)
}

func TestHubRegisterSendsInitialState(t *testing.T) {
	hub := newTestHub(t, 10)

	first := newMockClient(hub, "c1")
	hub.Register <- first

	envs := expectTypes(t, first,
		protocol.TypeIdentityAssigned,
		protocol.TypeHistory,
		protocol.TypeFavorites,
		protocol.TypeActiveCount,
	)

	identity := decode[protocol.IdentityAssignedPayload](t, envs[0])
	assert.Equal(t, "User-c1", identity.Name)
	assert.Equal(t, "#3498db", identity.Color)
	assert.Equal(t, broadcast.DefaultWelcomeText, identity.WelcomeText)
	assert.Empty(t, decode[protocol.HistoryPayload](t, envs[1]).Messages)
	assert.Equal(t, 1, decode[protocol.ActiveCountPayload](t, envs[3]).N)

	// sequence numbers only move forward
	for i := 1; i < len(envs); i++ {
		assert.Greater(t, envs[i].Sequence, envs[i-1].Sequence)
	}

	second := connect(t, hub, "c2")

	joinedEnvs := expectTypes(t, first, protocol.TypeUserJoined, protocol.TypeActiveCount)
	joined := decode[protocol.PresencePayload](t, joinedEnvs[0])
	assert.Equal(t, "User-c2", joined.Name)
	assert.Equal(t, "User-c2 joined the chat 👋", joined.Text)
	assert.Equal(t, 2, decode[protocol.ActiveCountPayload](t, joinedEnvs[1]).N)

	assert.Equal(t, 2, hub.ClientCount())
	expectQuiet(t, hub, second)
}

func TestHubRegisterDuplicateIDRejected(t *testing.T) {
	hub := newTestHub(t, 10)

	connect(t, hub, "c1")

	dup := newMockClient(hub, "c1")
	hub.Register <- dup

	require.Eventually(t, dup.IsClosed, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHubSendMessageBroadcastsToEveryone(t *testing.T) {
	hub := newTestHub(t, 10)

	c1 := connect(t, hub, "c1")
	c2 := connect(t, hub, "c2")
	expectTypes(t, c1, protocol.TypeUserJoined, protocol.TypeActiveCount)

	emit(t, hub, c1, protocol.TypeSendMessage, protocol.SendMessagePayload{Body: "  hello  "})

	for _, client := range []*Client{c1, c2} {
		env := expectTypes(t, client, protocol.TypeMessageCreated)[0]
		created := decode[protocol.MessageCreatedPayload](t, env)

		assert.Equal(t, uint64(1), created.Message.ID)
		assert.Equal(t, "hello", created.Message.Body)
		assert.Equal(t, "c1", created.Message.AuthorID)
		assert.Equal(t, "User-c1", created.Message.AuthorName)
		assert.False(t, created.Message.Edited)
		assert.Nil(t, created.Message.EditedAt)
	}

	history := hub.Room().History()
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0].Body)
}

func TestHubRejectsInvalidEvents(t *testing.T) {
	hub := newTestHub(t, 10)

	c1 := connect(t, hub, "c1")
	c2 := connect(t, hub, "c2")
	expectTypes(t, c1, protocol.TypeUserJoined, protocol.TypeActiveCount)

	tests := []struct {
		name      string
		eventType string
		payload   any
	}{
		{
			name:      "blank body",
			eventType: protocol.TypeSendMessage,
			payload:   protocol.SendMessagePayload{Body: "   "},
		},
		{
			name:      "missing body",
			eventType: protocol.TypeSendMessage,
			payload:   map[string]string{},
		},
		{
			name:      "oversized body",
			eventType: protocol.TypeSendMessage,
			payload:   protocol.SendMessagePayload{Body: strings.Repeat("é", 501)},
		},
		{
			name:      "unknown type",
			eventType: "shout",
			payload:   map[string]string{"body": "hi"},
		},
		{
			name:      "edit without id",
			eventType: protocol.TypeEditMessage,
			payload:   map[string]string{"newBody": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emit(t, hub, c1, tt.eventType, tt.payload)

			env := expectTypes(t, c1, protocol.TypeError)[0]
			resp := decode[errors.ErrorResponse](t, env)
			assert.Equal(t, errors.CodeValidationError, resp.Error)

			expectQuiet(t, hub, c2)
		})
	}

	assert.Empty(t, hub.Room().History())
}

func TestHubEditByNonAuthorIsForbidden(t *testing.T) {
	hub := newTestHub(t, 10)

	c1 := connect(t, hub, "c1")
	c2 := connect(t, hub, "c2")
	expectTypes(t, c1, protocol.TypeUserJoined, protocol.TypeActiveCount)

	emit(t, hub, c1, protocol.TypeSendMessage, protocol.SendMessagePayload{Body: "hi"})
	expectTypes(t, c1, protocol.TypeMessageCreated)
	expectTypes(t, c2, protocol.TypeMessageCreated)

	emit(t, hub, c2, protocol.TypeEditMessage, protocol.EditMessagePayload{MessageID: 1, NewBody: "pwned"})

	resp := decode[errors.ErrorResponse](t, expectTypes(t, c2, protocol.TypeError)[0])
	assert.Equal(t, errors.CodeForbidden, resp.Error)

	emit(t, hub, c2, protocol.TypeDeleteMessage, protocol.DeleteMessagePayload{MessageID: 1})

	resp = decode[errors.ErrorResponse](t, expectTypes(t, c2, protocol.TypeError)[0])
	assert.Equal(t, errors.CodeForbidden, resp.Error)

	expectQuiet(t, hub, c1)

	history := hub.Room().History()
	require.Len(t, history, 1)
	assert.Equal(t, "hi", history[0].Body)
	assert.False(t, history[0].Edited)
}

func TestHubEditRefreshesFavoritesAfterPrimaryEvent(t *testing.T) {
	hub := newTestHub(t, 10)

	c1 := connect(t, hub, "c1")
	c2 := connect(t, hub, "c2")
	expectTypes(t, c1, protocol.TypeUserJoined, protocol.TypeActiveCount)

	emit(t, hub, c1, protocol.TypeSendMessage, protocol.SendMessagePayload{Body: "hi"})
	expectTypes(t, c1, protocol.TypeMessageCreated)
	expectTypes(t, c2, protocol.TypeMessageCreated)

	emit(t, hub, c2, protocol.TypeToggleFavorite, protocol.ToggleFavoritePayload{MessageID: 1})

	favorites := decode[protocol.FavoritesPayload](t, expectTypes(t, c2, protocol.TypeFavorites)[0])
	require.Len(t, favorites.Messages, 1)
	assert.Equal(t, "hi", favorites.Messages[0].Body)
	expectQuiet(t, hub, c1)

	emit(t, hub, c1, protocol.TypeEditMessage, protocol.EditMessagePayload{MessageID: 1, NewBody: "hello"})

	edited := decode[protocol.MessageEditedPayload](t, expectTypes(t, c1, protocol.TypeMessageEdited)[0])
	assert.Equal(t, "hello", edited.Message.Body)
	assert.True(t, edited.Message.Edited)
	require.NotNil(t, edited.Message.EditedAt)
	expectQuiet(t, hub, c1)

	envs := expectTypes(t, c2, protocol.TypeMessageEdited, protocol.TypeFavorites)
	assert.Less(t, envs[0].Sequence, envs[1].Sequence)

	favorites = decode[protocol.FavoritesPayload](t, envs[1])
	require.Len(t, favorites.Messages, 1)
	assert.Equal(t, "hello", favorites.Messages[0].Body)
	assert.True(t, favorites.Messages[0].Edited)
}

func TestHubDeleteRefreshesFavorites(t *testing.T) {
	hub := newTestHub(t, 10)

	c1 := connect(t, hub, "c1")
	c2 := connect(t, hub, "c2")
	expectTypes(t, c1, protocol.TypeUserJoined, protocol.TypeActiveCount)

	emit(t, hub, c1, protocol.TypeSendMessage, protocol.SendMessagePayload{Body: "hi"})
	expectTypes(t, c1, protocol.TypeMessageCreated)
	expectTypes(t, c2, protocol.TypeMessageCreated)

	emit(t, hub, c2, protocol.TypeToggleFavorite, protocol.ToggleFavoritePayload{MessageID: 1})
	expectTypes(t, c2, protocol.TypeFavorites)

	emit(t, hub, c1, protocol.TypeDeleteMessage, protocol.DeleteMessagePayload{MessageID: 1})

	deleted := decode[protocol.MessageDeletedPayload](t, expectTypes(t, c1, protocol.TypeMessageDeleted)[0])
	assert.Equal(t, uint64(1), deleted.MessageID)
	expectQuiet(t, hub, c1)

	envs := expectTypes(t, c2, protocol.TypeMessageDeleted, protocol.TypeFavorites)
	assert.Empty(t, decode[protocol.FavoritesPayload](t, envs[1]).Messages)

	assert.Empty(t, hub.Room().History())
}

func TestHubToggleUnknownMessageIsDropped(t *testing.T) {
	hub := newTestHub(t, 10)

	c1 := connect(t, hub, "c1")

	emit(t, hub, c1, protocol.TypeToggleFavorite, protocol.ToggleFavoritePayload{MessageID: 99})
	emit(t, hub, c1, protocol.TypeEditMessage, protocol.EditMessagePayload{MessageID: 99, NewBody: "x"})

	// not-found is never echoed back
	expectQuiet(t, hub, c1)
}

func TestHubEvictionPrunesFavorites(t *testing.T) {
	hub := newTestHub(t, 3)

	c1 := connect(t, hub, "c1")
	c2 := connect(t, hub, "c2")
	expectTypes(t, c1, protocol.TypeUserJoined, protocol.TypeActiveCount)

	for _, body := range []string{"A", "B", "C"} {
		emit(t, hub, c1, protocol.TypeSendMessage, protocol.SendMessagePayload{Body: body})
		expectTypes(t, c1, protocol.TypeMessageCreated)
		expectTypes(t, c2, protocol.TypeMessageCreated)
	}

	emit(t, hub, c2, protocol.TypeToggleFavorite, protocol.ToggleFavoritePayload{MessageID: 1})
	expectTypes(t, c2, protocol.TypeFavorites)

	emit(t, hub, c1, protocol.TypeSendMessage, protocol.SendMessagePayload{Body: "D"})
	expectTypes(t, c1, protocol.TypeMessageCreated)
	expectTypes(t, c2, protocol.TypeMessageCreated)

	// eviction does not push a refresh
	expectQuiet(t, hub, c2)

	bodies := make([]string, 0, 3)
	for _, msg := range hub.Room().History() {
		bodies = append(bodies, msg.Body)
	}

	assert.Equal(t, []string{"B", "C", "D"}, bodies)

	favorites, err := hub.Room().FavoritedMessages("c2")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestHubUnregisterClient(t *testing.T) {
	hub := newTestHub(t, 10)

	c1 := connect(t, hub, "c1")
	c2 := connect(t, hub, "c2")
	expectTypes(t, c1, protocol.TypeUserJoined, protocol.TypeActiveCount)

	emit(t, hub, c1, protocol.TypeSendMessage, protocol.SendMessagePayload{Body: "mine"})
	expectTypes(t, c1, protocol.TypeMessageCreated)
	expectTypes(t, c2, protocol.TypeMessageCreated)

	hub.Unregister <- c1

	envs := expectTypes(t, c2, protocol.TypeUserLeft, protocol.TypeActiveCount)
	left := decode[protocol.PresencePayload](t, envs[0])
	assert.Equal(t, "User-c1 left the chat 👋", left.Text)
	assert.Equal(t, 1, decode[protocol.ActiveCountPayload](t, envs[1]).N)

	assert.True(t, c1.IsClosed())
	assert.Equal(t, 1, hub.ClientCount())

	// a late event from the departed connection changes nothing
	emit(t, hub, c1, protocol.TypeEditMessage, protocol.EditMessagePayload{MessageID: 1, NewBody: "stale"})
	expectQuiet(t, hub, c2)

	history := hub.Room().History()
	require.Len(t, history, 1)
	assert.Equal(t, "mine", history[0].Body)
	assert.Equal(t, chat.ConnectionID("c1"), history[0].AuthorID)

	// unregistering twice is a no-op
	hub.Unregister <- c1
	expectQuiet(t, hub, c2)
}

func TestHubShutdownNotifiesClients(t *testing.T) {
	hub := newTestHub(t, 10)

	c1 := connect(t, hub, "c1")

	hub.Shutdown()
	hub.Shutdown()

	env := expectTypes(t, c1, protocol.TypeServerShutdown)[0]
	assert.NotEmpty(t, decode[protocol.ServerShutdownPayload](t, env).Reason)

	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, ok := <-c1.send
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, 0, hub.Room().ActiveCount())
}

func TestHubClientLookup(t *testing.T) {
	hub := newTestHub(t, 10)

	connect(t, hub, "c1")

	client, err := hub.lookup("c1")
	require.NoError(t, err)
	assert.Equal(t, chat.ConnectionID("c1"), client.ID)

	_, err = hub.lookup("missing")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestHubRejectDistinguishesRecoverableErrors(t *testing.T) {
	hub := newTestHub(t, 10)

	hub.RegisterHandler("claim-name", func(_ *Hub, _ *Client, _ *Message) error {
		return fmt.Errorf("%w: name already taken", errors.ErrConflict)
	})
	hub.RegisterHandler("explode", func(_ *Hub, _ *Client, _ *Message) error {
		return fmt.Errorf("disk on fire")
	})

	u1 := connect(t, hub, "u1")

	emit(t, hub, u1, "claim-name", nil)
	env := next(t, u1)
	require.Equal(t, protocol.TypeError, env.Type)
	assert.Equal(t, errors.CodeConflict, decode[errors.ErrorResponse](t, env).Error)

	emit(t, hub, u1, "explode", nil)
	env = next(t, u1)
	require.Equal(t, protocol.TypeError, env.Type)
	assert.Equal(t, errors.CodeServerError, decode[errors.ErrorResponse](t, env).Error)

	// the connection survives both
	expectQuiet(t, hub, u1)
}
