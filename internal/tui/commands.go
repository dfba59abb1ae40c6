package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/honeybee-human/Chatroom/internal/protocol"
)

const helpText = `# chatroom

Type a message and press **enter** to send it.

| command | does |
|---|---|
| ` + "`/edit <id> <text>`" + ` | edit one of your messages |
| ` + "`/delete <id>`" + ` | delete one of your messages |
| ` + "`/fav <id>`" + ` | star or unstar any message |
| ` + "`/ping`" + ` | check the connection |
| ` + "`/help`" + ` | toggle this help |
| ` + "`/quit`" + ` | leave the chat |
`

// turns a line of input into an event or a local action
func parseInput(line string) (*Action, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	if !strings.HasPrefix(line, "/") {
		return &Action{Type: protocol.TypeSendMessage, Payload: protocol.SendMessagePayload{Body: line}}, nil
	}

	name, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "edit", "e":
		idText, body, _ := strings.Cut(rest, " ")

		id, err := parseID(idText)
		if err != nil {
			return nil, err
		}

		body = strings.TrimSpace(body)
		if body == "" {
			return nil, fmt.Errorf("usage: /edit <id> <text>")
		}

		return &Action{Type: protocol.TypeEditMessage, Payload: protocol.EditMessagePayload{MessageID: id, NewBody: body}}, nil

	case "delete", "del", "d":
		id, err := parseID(rest)
		if err != nil {
			return nil, err
		}

		return &Action{Type: protocol.TypeDeleteMessage, Payload: protocol.DeleteMessagePayload{MessageID: id}}, nil

	case "fav", "star", "f":
		id, err := parseID(rest)
		if err != nil {
			return nil, err
		}

		return &Action{Type: protocol.TypeToggleFavorite, Payload: protocol.ToggleFavoritePayload{MessageID: id}}, nil

	case "ping":
		return &Action{Type: protocol.TypePing}, nil

	case "help", "h", "?":
		return &Action{Local: "help"}, nil

	case "quit", "q", "exit":
		return &Action{Local: "quit"}, nil
	}

	return nil, fmt.Errorf("unknown command: /%s", name)
}

func parseID(text string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(text, "#"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid message id %q", text)
	}

	return id, nil
}
