package chat

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/honeybee-human/Chatroom/internal/errors"
)

// Ledger is the ordered, bounded message history. Oldest first.
// It is not safe for concurrent use; Room serializes access.
type Ledger struct {
	capacity      int
	maxBodyLength int
	messages      []Message
	lastID        uint64
	now           func() time.Time
	onRemove      []func(id uint64)
}

type LedgerOption func(*Ledger)

// overrides the clock used for createdAt and editedAt
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

func NewLedger(capacity, maxBodyLength int, opts ...LedgerOption) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	if maxBodyLength <= 0 {
		maxBodyLength = DefaultMaxBodyLength
	}

	l := &Ledger{
		capacity:      capacity,
		maxBodyLength: maxBodyLength,
		messages:      make([]Message, 0, capacity),
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// registers a callback run synchronously for every id removed by delete or eviction
func (l *Ledger) OnRemove(fn func(id uint64)) {
	l.onRemove = append(l.onRemove, fn)
}

func (l *Ledger) Capacity() int {
	return l.capacity
}

func (l *Ledger) Len() int {
	return len(l.messages)
}

// the most recently assigned id, zero before the first append
func (l *Ledger) LastID() uint64 {
	return l.lastID
}

// trims and checks a body against the length bounds
func (l *Ledger) ValidateBody(body string) (string, error) {
	trimmed := strings.TrimSpace(body)

	if trimmed == "" {
		return "", fmt.Errorf("%w: message cannot be empty", errors.ErrValidation)
	}

	if n := utf8.RuneCountInString(trimmed); n > l.maxBodyLength {
		return "", fmt.Errorf("%w: message is %d characters, maximum is %d", errors.ErrValidation, n, l.maxBodyLength)
	}

	return trimmed, nil
}

// adds a message and evicts the oldest entries beyond capacity
func (l *Ledger) Append(authorID ConnectionID, authorName, authorColor, body string) (Posted, error) {
	trimmed, err := l.ValidateBody(body)
	if err != nil {
		return Posted{}, err
	}

	l.lastID++

	msg := Message{
		ID:          l.lastID,
		AuthorID:    authorID,
		AuthorName:  authorName,
		AuthorColor: authorColor,
		Body:        trimmed,
		CreatedAt:   l.now(),
	}

	l.messages = append(l.messages, msg)

	var evicted []uint64

	for len(l.messages) > l.capacity {
		oldest := l.messages[0]
		l.messages[0] = Message{}
		l.messages = l.messages[1:]
		evicted = append(evicted, oldest.ID)
	}

	for _, id := range evicted {
		l.notifyRemoved(id)
	}

	return Posted{Message: msg, Evicted: evicted}, nil
}

// replaces the body of a message owned by requesterID
func (l *Ledger) Edit(messageID uint64, requesterID ConnectionID, newBody string) (Message, error) {
	idx, err := l.owned(messageID, requesterID, "edit")
	if err != nil {
		return Message{}, err
	}

	trimmed, err := l.ValidateBody(newBody)
	if err != nil {
		return Message{}, err
	}

	editedAt := l.now()

	msg := &l.messages[idx]
	msg.Body = trimmed
	msg.Edited = true
	msg.EditedAt = &editedAt

	return *msg, nil
}

// removes a message owned by requesterID, preserving the order of the rest
func (l *Ledger) Delete(messageID uint64, requesterID ConnectionID) error {
	idx, err := l.owned(messageID, requesterID, "delete")
	if err != nil {
		return err
	}

	l.messages = slices.Delete(l.messages, idx, idx+1)
	l.notifyRemoved(messageID)

	return nil
}

// returns a copy of the message with the given id
func (l *Ledger) Get(messageID uint64) (Message, bool) {
	idx := l.index(messageID)
	if idx < 0 {
		return Message{}, false
	}

	return l.messages[idx], true
}

func (l *Ledger) Contains(messageID uint64) bool {
	return l.index(messageID) >= 0
}

// returns a snapshot of the current history, oldest first
func (l *Ledger) History() []Message {
	return slices.Clone(l.messages)
}

func (l *Ledger) owned(messageID uint64, requesterID ConnectionID, action string) (int, error) {
	idx := l.index(messageID)
	if idx < 0 {
		return -1, fmt.Errorf("%w: message %d", errors.ErrNotFound, messageID)
	}

	if l.messages[idx].AuthorID != requesterID {
		return -1, fmt.Errorf("%w: only the author can %s message %d", errors.ErrAuthorization, action, messageID)
	}

	return idx, nil
}

// ids are strictly increasing along the slice, so binary search applies
func (l *Ledger) index(messageID uint64) int {
	idx, found := slices.BinarySearchFunc(l.messages, messageID, func(m Message, id uint64) int {
		switch {
		case m.ID < id:
			return -1
		case m.ID > id:
			return 1
		}

		return 0
	})

	if !found {
		return -1
	}

	return idx
}

func (l *Ledger) notifyRemoved(id uint64) {
	for _, fn := range l.onRemove {
		fn(id)
	}
}
