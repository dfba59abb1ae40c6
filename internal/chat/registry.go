package chat

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/honeybee-human/Chatroom/internal/errors"
	"github.com/samber/lo"
)

// Registry tracks live sessions by connection id.
// Not safe for concurrent use; Room serializes access.
type Registry struct {
	sessions map[ConnectionID]Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[ConnectionID]Session),
		now:      time.Now,
	}
}

func (r *Registry) Register(id ConnectionID, displayName, color string) (Session, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Session{}, fmt.Errorf("%w: connection id is required", errors.ErrValidation)
	}

	if _, exists := r.sessions[id]; exists {
		return Session{}, fmt.Errorf("%w: connection %s already registered", errors.ErrConflict, id)
	}

	session := Session{
		ID:          id,
		DisplayName: displayName,
		Color:       color,
		ConnectedAt: r.now(),
	}

	r.sessions[id] = session

	return session, nil
}

func (r *Registry) Lookup(id ConnectionID) (Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: session %s", errors.ErrNotFound, id)
	}

	return session, nil
}

func (r *Registry) Unregister(id ConnectionID) (Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: session %s", errors.ErrNotFound, id)
	}

	delete(r.sessions, id)

	return session, nil
}

func (r *Registry) ActiveCount() int {
	return len(r.sessions)
}

// returns all sessions ordered by connect time
func (r *Registry) Sessions() []Session {
	sessions := lo.Values(r.sessions)

	slices.SortFunc(sessions, func(a, b Session) int {
		if c := a.ConnectedAt.Compare(b.ConnectedAt); c != 0 {
			return c
		}

		return strings.Compare(string(a.ID), string(b.ID))
	})

	return sessions
}
