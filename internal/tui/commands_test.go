package tui

import (
	"testing"

	"github.com/honeybee-human/Chatroom/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *Action
		wantErr bool
	}{
		{name: "blank", line: "   ", want: nil},
		{
			name: "plain message",
			line: "  hello world ",
			want: &Action{Type: protocol.TypeSendMessage, Payload: protocol.SendMessagePayload{Body: "hello world"}},
		},
		{
			name: "edit",
			line: "/edit 3 fixed typo",
			want: &Action{Type: protocol.TypeEditMessage, Payload: protocol.EditMessagePayload{MessageID: 3, NewBody: "fixed typo"}},
		},
		{name: "edit without body", line: "/edit 3", wantErr: true},
		{name: "edit with bad id", line: "/edit x text", wantErr: true},
		{
			name: "delete with hash id",
			line: "/delete #7",
			want: &Action{Type: protocol.TypeDeleteMessage, Payload: protocol.DeleteMessagePayload{MessageID: 7}},
		},
		{name: "delete zero", line: "/del 0", wantErr: true},
		{
			name: "favorite",
			line: "/fav 2",
			want: &Action{Type: protocol.TypeToggleFavorite, Payload: protocol.ToggleFavoritePayload{MessageID: 2}},
		},
		{name: "ping", line: "/ping", want: &Action{Type: protocol.TypePing}},
		{name: "help", line: "/help", want: &Action{Local: "help"}},
		{name: "quit", line: "/QUIT", want: &Action{Local: "quit"}},
		{name: "unknown", line: "/dance", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInput(tt.line)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
