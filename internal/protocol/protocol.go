package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/honeybee-human/Chatroom/internal/chat"
	"github.com/honeybee-human/Chatroom/internal/errors"
	"github.com/samber/lo"
)

// default layout for rendered timestamps, e.g. "3:04:05 PM"
const DefaultTimeLayout = "3:04:05 PM"

var validate = validator.New()

// builds an envelope with a marshaled payload
func NewEnvelope(eventType string, payload any) (*Envelope, error) {
	env := &Envelope{
		Type:      eventType,
		Timestamp: time.Now(),
	}

	if payload == nil {
		return env, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	env.Payload = raw

	return env, nil
}

// parses an inbound frame. malformed frames are validation errors.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope

	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: invalid message format: %v", errors.ErrValidation, err)
	}

	if env.Type == "" {
		return nil, fmt.Errorf("%w: message type is required", errors.ErrValidation)
	}

	return &env, nil
}

// unmarshals and validates the payload into dst
func (e *Envelope) Decode(dst any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%w: %s requires a payload", errors.ErrValidation, e.Type)
	}

	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("%w: malformed %s payload: %v", errors.ErrValidation, e.Type, err)
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: invalid %s payload: %v", errors.ErrValidation, e.Type, err)
	}

	return nil
}

func (p *DeleteMessagePayload) UnmarshalJSON(data []byte) error {
	id, err := decodeMessageRef(data)
	if err != nil {
		return err
	}

	p.MessageID = id
	return nil
}

func (p *ToggleFavoritePayload) UnmarshalJSON(data []byte) error {
	id, err := decodeMessageRef(data)
	if err != nil {
		return err
	}

	p.MessageID = id
	return nil
}

// accepts either {"messageId": n} or a bare n
func decodeMessageRef(data []byte) (uint64, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] != '{' {
		return strconv.ParseUint(string(trimmed), 10, 64)
	}

	var ref struct {
		MessageID uint64 `json:"messageId"`
	}

	if err := json.Unmarshal(trimmed, &ref); err != nil {
		return 0, err
	}

	return ref.MessageID, nil
}

// renders chat values for the wire
type Formatter struct {
	Layout   string
	Location *time.Location
}

func NewFormatter(layout string, loc *time.Location) Formatter {
	if layout == "" {
		layout = DefaultTimeLayout
	}

	if loc == nil {
		loc = time.Local
	}

	return Formatter{Layout: layout, Location: loc}
}

// a zero Formatter renders in local time with DefaultTimeLayout
func (f Formatter) Time(t time.Time) string {
	layout, loc := f.Layout, f.Location

	if layout == "" {
		layout = DefaultTimeLayout
	}

	if loc == nil {
		loc = time.Local
	}

	return t.In(loc).Format(layout)
}

func (f Formatter) Message(m chat.Message) MessagePayload {
	payload := MessagePayload{
		ID:          m.ID,
		AuthorID:    string(m.AuthorID),
		AuthorName:  m.AuthorName,
		AuthorColor: m.AuthorColor,
		Body:        m.Body,
		CreatedAt:   f.Time(m.CreatedAt),
		Edited:      m.Edited,
	}

	if m.EditedAt != nil {
		editedAt := f.Time(*m.EditedAt)
		payload.EditedAt = &editedAt
	}

	return payload
}

// always returns a non-nil slice so empty lists encode as []
func (f Formatter) Messages(messages []chat.Message) []MessagePayload {
	if len(messages) == 0 {
		return []MessagePayload{}
	}

	return lo.Map(messages, func(m chat.Message, _ int) MessagePayload {
		return f.Message(m)
	})
}
