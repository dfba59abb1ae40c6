package messages

import (
	"github.com/honeybee-human/Chatroom/api/rest/pagination"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

const (
	defaultLimit = 50
	maxLimit     = 10000
)

type ListMessagesResponse struct {
	Messages   []protocol.MessagePayload `json:"messages"`
	Pagination pagination.Meta           `json:"pagination"`
}

type MessageResponse struct {
	Message protocol.MessagePayload `json:"message"`
}

type StatsResponse struct {
	ActiveUsers int    `json:"active_users"`
	Messages    int    `json:"messages"`
	Capacity    int    `json:"capacity"`
	LastID      uint64 `json:"last_id"`
}

type SessionResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}
