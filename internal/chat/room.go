package chat

import (
	"fmt"
	"sync"

	"github.com/honeybee-human/Chatroom/internal/errors"
)

// Room owns the ledger, the favorites index and the session registry as a
// single unit. Every method takes the same lock, so a mutation and the
// favorites pruning it triggers are never observed half-applied.
//
// Methods return outcome values describing what changed; deciding who hears
// about it is left to the caller.
type Room struct {
	mu        sync.Mutex
	ledger    *Ledger
	favorites *Favorites
	sessions  *Registry
}

func NewRoom(ledger *Ledger, favorites *Favorites, sessions *Registry) *Room {
	ledger.OnRemove(func(id uint64) {
		favorites.Remove(id)
	})

	return &Room{
		ledger:    ledger,
		favorites: favorites,
		sessions:  sessions,
	}
}

// registers a connection and returns the initial state it should receive
func (r *Room) Join(id ConnectionID, displayName, color string) (Joined, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.sessions.Register(id, displayName, color)
	if err != nil {
		return Joined{}, err
	}

	r.favorites.Ensure(id)
	history := r.ledger.History()

	return Joined{
		Session:     session,
		History:     history,
		Favorites:   r.favorites.Resolve(id, history),
		ActiveCount: r.sessions.ActiveCount(),
	}, nil
}

// removes a connection and its favorites. authored messages stay.
func (r *Room) Leave(id ConnectionID) (Left, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.sessions.Unregister(id)
	if err != nil {
		return Left{}, err
	}

	r.favorites.Drop(id)

	return Left{
		Session:     session,
		ActiveCount: r.sessions.ActiveCount(),
	}, nil
}

// appends a message authored by the connection
func (r *Room) Post(id ConnectionID, body string) (Posted, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.sessions.Lookup(id)
	if err != nil {
		return Posted{}, err
	}

	return r.ledger.Append(session.ID, session.DisplayName, session.Color, body)
}

// edits a message the connection authored
func (r *Room) Edit(id ConnectionID, messageID uint64, newBody string) (Edited, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.sessions.Lookup(id); err != nil {
		return Edited{}, err
	}

	msg, err := r.ledger.Edit(messageID, id, newBody)
	if err != nil {
		return Edited{}, err
	}

	return Edited{
		Message: msg,
		Refresh: r.views(r.favorites.Holders(messageID)),
	}, nil
}

// deletes a message the connection authored
func (r *Room) Delete(id ConnectionID, messageID uint64) (Deleted, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.sessions.Lookup(id); err != nil {
		return Deleted{}, err
	}

	// holders must be captured before the ledger prunes them
	holders := r.favorites.Holders(messageID)

	if err := r.ledger.Delete(messageID, id); err != nil {
		return Deleted{}, err
	}

	return Deleted{
		MessageID: messageID,
		Refresh:   r.views(holders),
	}, nil
}

// flips the favorite state of a message for the connection.
// adding an id that is not in the ledger fails with ErrNotFound.
func (r *Room) ToggleFavorite(id ConnectionID, messageID uint64) (Toggled, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.sessions.Lookup(id); err != nil {
		return Toggled{}, err
	}

	if !r.favorites.Has(id, messageID) && !r.ledger.Contains(messageID) {
		return Toggled{}, fmt.Errorf("%w: message %d", errors.ErrNotFound, messageID)
	}

	favorited := r.favorites.Toggle(id, messageID)

	return Toggled{
		User:      id,
		MessageID: messageID,
		Favorited: favorited,
		Favorites: r.favorites.Resolve(id, r.ledger.History()),
	}, nil
}

// returns the current history snapshot
func (r *Room) History() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledger.History()
}

// returns the connection's favorited messages in ledger order
func (r *Room) FavoritedMessages(id ConnectionID) ([]Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.sessions.Lookup(id); err != nil {
		return nil, err
	}

	return r.favorites.Resolve(id, r.ledger.History()), nil
}

// returns the message with the given id while it is still in the ledger
func (r *Room) Message(messageID uint64) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg, ok := r.ledger.Get(messageID)
	if !ok {
		return Message{}, fmt.Errorf("%w: message %d", errors.ErrNotFound, messageID)
	}

	return msg, nil
}

func (r *Room) Sessions() []Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sessions.Sessions()
}

func (r *Room) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sessions.ActiveCount()
}

func (r *Room) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Stats{
		ActiveUsers: r.sessions.ActiveCount(),
		Messages:    r.ledger.Len(),
		Capacity:    r.ledger.Capacity(),
		LastID:      r.ledger.LastID(),
	}
}

// must be called with lock held
func (r *Room) views(users []ConnectionID) []FavoritesView {
	if len(users) == 0 {
		return nil
	}

	history := r.ledger.History()
	views := make([]FavoritesView, 0, len(users))

	for _, user := range users {
		views = append(views, FavoritesView{
			User:     user,
			Messages: r.favorites.Resolve(user, history),
		})
	}

	return views
}
