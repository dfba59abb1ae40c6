package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/honeybee-human/Chatroom/internal/broadcast"
	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/errors"
	"github.com/honeybee-human/Chatroom/internal/logger"
	"github.com/honeybee-human/Chatroom/internal/metrics"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

// sets how long clients get to read server-shutdown before connections close
func WithShutdownGrace(d time.Duration) HubOption {
	return func(h *Hub) {
		h.shutdownGrace = d
	}
}

func NewHub(room *chat.Room, coordinator *broadcast.Coordinator, opts ...HubOption) *Hub {
	h := &Hub{
		clients:       make(map[chat.ConnectionID]*Client),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		Inbound:       make(chan *Message, 256),
		handlers:      make(map[string]MessageHandler),
		room:          room,
		coordinator:   coordinator,
		shutdown:      make(chan struct{}),
		done:          make(chan struct{}),
		shutdownGrace: defaultShutdownGrace,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// registers a handler for a specific message type
func (h *Hub) RegisterHandler(messageType string, handler MessageHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[messageType] = handler
}

// starts the hub's main loop. every event runs to completion before the next one.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Inbound:
			h.handleMessage(message)

		case <-h.shutdown:
			h.closeAllConnections()
			return
		}
	}
}

// closed once the main loop has exited
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// joins the room and sends the initial state
func (h *Hub) registerClient(client *Client) {
	joined, err := h.room.Join(client.ID, client.DisplayName, client.Color)
	if err != nil {
		logger.Warn("client registration rejected",
			"client_id", client.ID,
			"error", err,
		)

		client.Close()
		return
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	metrics.ConnectionsActive.Inc()

	logger.Info("client registered",
		"client_id", client.ID,
		"display_name", client.DisplayName,
		"ip", client.IPAddress,
		"active", joined.ActiveCount,
	)

	h.Deliver(h.coordinator.Joined(joined))
}

// removes a client from the hub and the room. authored messages stay.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()

	current, exists := h.clients[client.ID]
	if !exists || current != client {
		h.mu.Unlock()
		return
	}

	delete(h.clients, client.ID)
	h.mu.Unlock()

	client.Close()
	metrics.ConnectionsActive.Dec()

	left, err := h.room.Leave(client.ID)
	if err != nil {
		logger.Warn("client missing from room on unregister",
			"client_id", client.ID,
			"error", err,
		)
		return
	}

	logger.Info("client unregistered",
		"client_id", client.ID,
		"active", left.ActiveCount,
	)

	h.Deliver(h.coordinator.Left(left))
}

// processes an incoming event
func (h *Hub) handleMessage(msg *Message) {
	eventType := msg.Envelope.Type

	h.mu.RLock()
	sender, exists := h.clients[msg.ClientID]
	handler, handled := h.handlers[eventType]
	h.mu.RUnlock()

	if !exists {
		metrics.EventsRejected.WithLabelValues(errors.CodeNotFound).Inc()

		logger.Warn("event from unregistered connection dropped",
			"client_id", msg.ClientID,
			"message_type", eventType,
		)
		return
	}

	if !handled {
		h.reject(sender, eventType, fmt.Errorf("%w: unsupported message type %q", errors.ErrValidation, eventType))
		return
	}

	if err := handler(h, sender, msg); err != nil {
		h.reject(sender, eventType, err)
		return
	}

	metrics.EventsTotal.WithLabelValues(eventType).Inc()
}

// reports a failed event. not-found is logged only; everything else goes back to the sender.
func (h *Hub) reject(client *Client, eventType string, err error) {
	info := errors.Classify(err)
	metrics.EventsRejected.WithLabelValues(info.Code).Inc()

	switch info.Code {
	case errors.CodeNotFound:
		logger.Warn("event dropped",
			"client_id", client.ID,
			"message_type", eventType,
			"error", err,
		)

	case errors.CodeValidationError:
		logger.Debug("event rejected",
			"client_id", client.ID,
			"message_type", eventType,
			"error", err,
		)

		message := "invalid message format"
		if eventType != "" {
			message = "invalid " + eventType + " request"
		}

		client.SendError(info.Code, message, info.Sanitized)

	case errors.CodeForbidden:
		logger.Warn("unauthorized event",
			"client_id", client.ID,
			"message_type", eventType,
			"error", err,
		)

		client.SendError(info.Code, "you can only change your own messages", info.Sanitized)

	default:
		if errors.IsRecoverable(err) {
			logger.Warn("event refused",
				"client_id", client.ID,
				"message_type", eventType,
				"error", err,
			)

			client.SendError(info.Code, "request conflicts with the current room state", info.Sanitized)
			return
		}

		logger.ErrorErr(err, "handler error",
			"client_id", client.ID,
			"message_type", eventType,
		)

		client.SendError(errors.CodeServerError, "failed to process message", info.Sanitized)
	}
}

// dispatches a delivery plan in order. each event is marshaled once and
// stamped with the next sequence number.
func (h *Hub) Deliver(plan []broadcast.Delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, d := range plan {
		env, err := protocol.NewEnvelope(d.Type, d.Payload)
		if err != nil {
			logger.ErrorErr(err, "failed to build event", "message_type", d.Type)
			continue
		}

		h.sequence++
		env.Sequence = h.sequence

		data, err := json.Marshal(env)
		if err != nil {
			logger.ErrorErr(err, "failed to marshal event", "message_type", d.Type)
			continue
		}

		switch d.Scope {
		case broadcast.ScopeOne:
			if client, ok := h.clients[d.Target]; ok {
				h.enqueue(client, d.Type, data)
			}

		case broadcast.ScopeOthers, broadcast.ScopeAll:
			for id, client := range h.clients {
				if d.Scope == broadcast.ScopeOthers && id == d.Target {
					continue
				}

				h.enqueue(client, d.Type, data)
			}
		}
	}
}

// must be called with lock held
func (h *Hub) enqueue(client *Client, eventType string, data []byte) {
	if err := client.enqueue(data); err != nil {
		logger.Debug("failed to send event to client",
			"client_id", client.ID,
			"message_type", eventType,
			"error", err,
		)
	}
}

// returns the live client with the given id
func (h *Hub) lookup(id chat.ConnectionID) (*Client, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}

	return client, nil
}

// returns the number of live clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// returns the room the hub drives
func (h *Hub) Room() *chat.Room {
	return h.room
}

// stops the main loop after notifying and disconnecting every client. safe to call more than once.
func (h *Hub) Shutdown() {
	h.shutdownOnce.Do(func() {
		close(h.shutdown)
	})
}

func (h *Hub) closeAllConnections() {
	logger.Info("notifying clients of server shutdown")

	h.Deliver([]broadcast.Delivery{{
		Scope:   broadcast.ScopeAll,
		Type:    protocol.TypeServerShutdown,
		Payload: protocol.ServerShutdownPayload{Reason: "server is shutting down"},
	}})

	// give clients time to receive the shutdown message
	time.Sleep(h.shutdownGrace)

	h.mu.Lock()
	defer h.mu.Unlock()

	logger.Info("closing all websocket connections", "count", len(h.clients))

	for id, client := range h.clients {
		client.Close()

		if _, err := h.room.Leave(id); err != nil {
			logger.Debug("client already gone from room", "client_id", id)
		}

		metrics.ConnectionsActive.Dec()
	}

	h.clients = make(map[chat.ConnectionID]*Client)
}
