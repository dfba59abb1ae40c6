package websocket

import (
	"github.com/honeybee-human/Chatroom/internal/metrics"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

// registers the handlers for every inbound chat event
func RegisterChatHandlers(hub *Hub) {
	hub.RegisterHandler(protocol.TypeSendMessage, SendMessageHandler())
	hub.RegisterHandler(protocol.TypeEditMessage, EditMessageHandler())
	hub.RegisterHandler(protocol.TypeDeleteMessage, DeleteMessageHandler())
	hub.RegisterHandler(protocol.TypeToggleFavorite, ToggleFavoriteHandler())
	hub.RegisterHandler(protocol.TypePing, PingHandler())
}

// handles new chat messages
func SendMessageHandler() MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		var payload protocol.SendMessagePayload
		if err := msg.Envelope.Decode(&payload); err != nil {
			return err
		}

		posted, err := hub.room.Post(client.ID, payload.Body)
		if err != nil {
			return err
		}

		if n := len(posted.Evicted); n > 0 {
			metrics.EvictionsTotal.Add(float64(n))
		}

		metrics.LedgerMessages.Set(float64(hub.room.Stats().Messages))

		hub.Deliver(hub.coordinator.Posted(posted))
		return nil
	}
}

// handles edits; only the author may edit
func EditMessageHandler() MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		var payload protocol.EditMessagePayload
		if err := msg.Envelope.Decode(&payload); err != nil {
			return err
		}

		edited, err := hub.room.Edit(client.ID, payload.MessageID, payload.NewBody)
		if err != nil {
			return err
		}

		hub.Deliver(hub.coordinator.Edited(edited))
		return nil
	}
}

// handles deletes; only the author may delete
func DeleteMessageHandler() MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		var payload protocol.DeleteMessagePayload
		if err := msg.Envelope.Decode(&payload); err != nil {
			return err
		}

		deleted, err := hub.room.Delete(client.ID, payload.MessageID)
		if err != nil {
			return err
		}

		metrics.LedgerMessages.Set(float64(hub.room.Stats().Messages))

		hub.Deliver(hub.coordinator.Deleted(deleted))
		return nil
	}
}

// handles favorite toggles; only the requester hears back
func ToggleFavoriteHandler() MessageHandler {
	return func(hub *Hub, client *Client, msg *Message) error {
		var payload protocol.ToggleFavoritePayload
		if err := msg.Envelope.Decode(&payload); err != nil {
			return err
		}

		toggled, err := hub.room.ToggleFavorite(client.ID, payload.MessageID)
		if err != nil {
			return err
		}

		hub.Deliver(hub.coordinator.Toggled(toggled))
		return nil
	}
}

func PingHandler() MessageHandler {
	return func(_ *Hub, client *Client, _ *Message) error {
		// respond with pong
		pongMsg, err := protocol.NewEnvelope(protocol.TypePong, nil)
		if err != nil {
			return err
		}

		client.Send(pongMsg) //nolint:errcheck,gosec // best-effort pong
		return nil
	}
}
