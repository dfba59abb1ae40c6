package tui

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/honeybee-human/Chatroom/internal/errors"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

func NewRoomState() *RoomState {
	return &RoomState{
		Messages:  []protocol.MessagePayload{},
		Favorites: make(map[uint64]bool),
	}
}

// applies one server event to the local view
func (s *RoomState) Apply(env protocol.Envelope) error {
	switch env.Type {
	case protocol.TypeIdentityAssigned:
		var p protocol.IdentityAssignedPayload
		if err := decode(env, &p); err != nil {
			return err
		}

		s.Name, s.Color, s.Welcome = p.Name, p.Color, p.WelcomeText
		s.notice(p.WelcomeText)

	case protocol.TypeHistory:
		var p protocol.HistoryPayload
		if err := decode(env, &p); err != nil {
			return err
		}

		s.Messages = p.Messages
		s.trim()

	case protocol.TypeFavorites:
		var p protocol.FavoritesPayload
		if err := decode(env, &p); err != nil {
			return err
		}

		s.Favorites = make(map[uint64]bool, len(p.Messages))
		for _, m := range p.Messages {
			s.Favorites[m.ID] = true
		}

	case protocol.TypeMessageCreated:
		var p protocol.MessageCreatedPayload
		if err := decode(env, &p); err != nil {
			return err
		}

		s.Messages = append(s.Messages, p.Message)
		s.trim()

	case protocol.TypeMessageEdited:
		var p protocol.MessageEditedPayload
		if err := decode(env, &p); err != nil {
			return err
		}

		if i := s.index(p.Message.ID); i >= 0 {
			s.Messages[i] = p.Message
		}

	case protocol.TypeMessageDeleted:
		var p protocol.MessageDeletedPayload
		if err := decode(env, &p); err != nil {
			return err
		}

		if i := s.index(p.MessageID); i >= 0 {
			s.Messages = slices.Delete(s.Messages, i, i+1)
		}

		delete(s.Favorites, p.MessageID)

	case protocol.TypeUserJoined, protocol.TypeUserLeft:
		var p protocol.PresencePayload
		if err := decode(env, &p); err != nil {
			return err
		}

		s.notice(p.Text)

	case protocol.TypeActiveCount:
		var p protocol.ActiveCountPayload
		if err := decode(env, &p); err != nil {
			return err
		}

		s.Active = p.N

	case protocol.TypeError:
		var p errors.ErrorResponse
		if err := decode(env, &p); err != nil {
			return err
		}

		s.LastError = p.Message
		if p.Details != "" {
			s.LastError += ": " + p.Details
		}

	case protocol.TypeServerShutdown:
		var p protocol.ServerShutdownPayload
		if err := decode(env, &p); err != nil {
			return err
		}

		s.Shutdown = true
		s.notice(p.Reason)

	case protocol.TypePong:
		s.notice("pong")
	}

	return nil
}

// returns the message with the given id
func (s *RoomState) Find(id uint64) (protocol.MessagePayload, bool) {
	if i := s.index(id); i >= 0 {
		return s.Messages[i], true
	}

	return protocol.MessagePayload{}, false
}

func (s *RoomState) index(id uint64) int {
	return slices.IndexFunc(s.Messages, func(m protocol.MessagePayload) bool {
		return m.ID == id
	})
}

// mirrors server-side eviction once the capacity is known. favorites of
// evicted messages go with them; the server never pushes that refresh.
func (s *RoomState) trim() {
	if s.Capacity <= 0 || len(s.Messages) <= s.Capacity {
		return
	}

	cut := len(s.Messages) - s.Capacity

	for _, m := range s.Messages[:cut] {
		delete(s.Favorites, m.ID)
	}

	s.Messages = slices.Clone(s.Messages[cut:])
}

func (s *RoomState) notice(text string) {
	if text == "" {
		return
	}

	s.Notices = append(s.Notices, text)
	if len(s.Notices) > maxNotices {
		s.Notices = s.Notices[len(s.Notices)-maxNotices:]
	}
}

func decode(env protocol.Envelope, dst any) error {
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", env.Type, err)
	}

	return nil
}
