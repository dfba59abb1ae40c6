// Package broadcast decides who hears about each change to the room.
//
// A Coordinator turns the outcome of a chat.Room mutation into an ordered list
// of deliveries. It never touches connections; the websocket hub dispatches the
// plan in order, so a primary event always reaches a client before any
// favorites refresh derived from the same mutation.
package broadcast

import (
	"fmt"

	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

const (
	DefaultWelcomeText = "Welcome to the chatroom! 🎉"
	defaultJoinedText  = "%s joined the chat 👋"
	defaultLeftText    = "%s left the chat 👋"
)

type Coordinator struct {
	format protocol.Formatter
	texts  Texts
}

func NewCoordinator(format protocol.Formatter, texts Texts) *Coordinator {
	if texts.Welcome == "" {
		texts.Welcome = DefaultWelcomeText
	}

	if texts.Joined == "" {
		texts.Joined = defaultJoinedText
	}

	if texts.Left == "" {
		texts.Left = defaultLeftText
	}

	return &Coordinator{format: format, texts: texts}
}

// identity, history and favorites to the newcomer, a join notice to everyone
// else, then the new count to all
func (c *Coordinator) Joined(out chat.Joined) []Delivery {
	id := out.Session.ID

	return []Delivery{
		{Scope: ScopeOne, Target: id, Type: protocol.TypeIdentityAssigned, Payload: protocol.IdentityAssignedPayload{
			Name:        out.Session.DisplayName,
			Color:       out.Session.Color,
			WelcomeText: c.texts.Welcome,
		}},
		{Scope: ScopeOne, Target: id, Type: protocol.TypeHistory, Payload: protocol.HistoryPayload{
			Messages: c.format.Messages(out.History),
		}},
		{Scope: ScopeOne, Target: id, Type: protocol.TypeFavorites, Payload: protocol.FavoritesPayload{
			Messages: c.format.Messages(out.Favorites),
		}},
		{Scope: ScopeOthers, Target: id, Type: protocol.TypeUserJoined, Payload: protocol.PresencePayload{
			Name:  out.Session.DisplayName,
			Color: out.Session.Color,
			Text:  fmt.Sprintf(c.texts.Joined, out.Session.DisplayName),
		}},
		c.count(out.ActiveCount),
	}
}

func (c *Coordinator) Left(out chat.Left) []Delivery {
	return []Delivery{
		{Scope: ScopeOthers, Target: out.Session.ID, Type: protocol.TypeUserLeft, Payload: protocol.PresencePayload{
			Name:  out.Session.DisplayName,
			Color: out.Session.Color,
			Text:  fmt.Sprintf(c.texts.Left, out.Session.DisplayName),
		}},
		c.count(out.ActiveCount),
	}
}

// evictions are implied by the new message and not pushed
func (c *Coordinator) Posted(out chat.Posted) []Delivery {
	return []Delivery{
		{Scope: ScopeAll, Type: protocol.TypeMessageCreated, Payload: protocol.MessageCreatedPayload{
			Message: c.format.Message(out.Message),
		}},
	}
}

func (c *Coordinator) Edited(out chat.Edited) []Delivery {
	plan := []Delivery{
		{Scope: ScopeAll, Type: protocol.TypeMessageEdited, Payload: protocol.MessageEditedPayload{
			Message: c.format.Message(out.Message),
		}},
	}

	return append(plan, c.refresh(out.Refresh)...)
}

func (c *Coordinator) Deleted(out chat.Deleted) []Delivery {
	plan := []Delivery{
		{Scope: ScopeAll, Type: protocol.TypeMessageDeleted, Payload: protocol.MessageDeletedPayload{
			MessageID: out.MessageID,
		}},
	}

	return append(plan, c.refresh(out.Refresh)...)
}

func (c *Coordinator) Toggled(out chat.Toggled) []Delivery {
	return []Delivery{c.favorites(out.User, out.Favorites)}
}

func (c *Coordinator) refresh(views []chat.FavoritesView) []Delivery {
	plan := make([]Delivery, 0, len(views))

	for _, view := range views {
		plan = append(plan, c.favorites(view.User, view.Messages))
	}

	return plan
}

func (c *Coordinator) favorites(user chat.ConnectionID, messages []chat.Message) Delivery {
	return Delivery{Scope: ScopeOne, Target: user, Type: protocol.TypeFavorites, Payload: protocol.FavoritesPayload{
		Messages: c.format.Messages(messages),
	}}
}

func (c *Coordinator) count(n int) Delivery {
	return Delivery{Scope: ScopeAll, Type: protocol.TypeActiveCount, Payload: protocol.ActiveCountPayload{N: n}}
}
