package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/honeybee-human/Chatroom/internal/protocol"
)

// renders the message list, oldest first
func renderMessages(room *RoomState) string {
	if len(room.Messages) == 0 {
		return infoStyle.Render("no messages yet. say hello!")
	}

	lines := make([]string, 0, len(room.Messages))

	for _, m := range room.Messages {
		lines = append(lines, renderMessage(m, room.Favorites[m.ID]))
	}

	return strings.Join(lines, "\n")
}

func renderMessage(m protocol.MessagePayload, favorited bool) string {
	var b strings.Builder

	b.WriteString(idStyle.Render(fmt.Sprintf("#%d", m.ID)))
	b.WriteString(" ")
	b.WriteString(timeStyle.Render(m.CreatedAt))
	b.WriteString(" ")
	b.WriteString(nameStyle(m.AuthorColor).Render(m.AuthorName))
	b.WriteString(": ")
	b.WriteString(bodyStyle.Render(m.Body))

	if m.Edited {
		b.WriteString(" ")
		b.WriteString(editedStyle.Render("(edited)"))
	}

	if favorited {
		b.WriteString(" ")
		b.WriteString(starStyle.Render("★"))
	}

	return b.String()
}

func (m *Model) headerView() string {
	title := titleStyle.Render("chatroom")

	who := infoStyle.Render("connecting...")
	if m.room.Name != "" {
		who = "you are " + nameStyle(m.room.Color).Render(m.room.Name)
	}

	online := infoStyle.Render(fmt.Sprintf("%d online", m.room.Active))

	return lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", who, "  ", online)
}

func (m *Model) statusView() string {
	switch {
	case m.err != nil:
		return errorStyle.Render(m.err.Error())

	case m.room.LastError != "":
		return errorStyle.Render(m.room.LastError)

	case m.state == StateConnecting:
		return m.spinner.View() + infoStyle.Render(" connecting to "+m.ws.endpoint)

	case m.state == StateDisconnected:
		return errorStyle.Render("disconnected. press ctrl+c to exit")

	case len(m.room.Notices) > 0:
		return infoStyle.Render(m.room.Notices[len(m.room.Notices)-1])
	}

	return ""
}

// renders help markdown; falls back to the raw text if rendering fails
func (m *Model) helpView() string {
	if m.renderer == nil {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(max(m.width-4, 20)),
		)
		if err != nil {
			return helpText
		}

		m.renderer = renderer
	}

	out, err := m.renderer.Render(helpText)
	if err != nil {
		return helpText
	}

	return out
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press Ctrl+C to exit\n", err)
}
