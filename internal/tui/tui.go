package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kelseyhightower/envconfig"
)

// reads client endpoints from the environment
func LoadOptions() (Options, error) {
	var opts Options
	if err := envconfig.Process("", &opts); err != nil {
		return Options{}, err
	}

	return opts, nil
}

func NewApp(opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "say something... (/help for commands)"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputTextStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		state:    StateConnecting,
		ws:       NewWSClient(opts.WSEndpoint),
		rest:     NewRESTClient(opts.APIEndpoint),
		room:     NewRoomState(),
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.ws.ConnectCmd(), m.rest.StatsCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.ws.Close()
			return m, tea.Quit

		case "enter":
			return m, m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()

	case WSConnectedMsg:
		m.state = StateConnected
		return m, m.ws.WaitForEvent()

	case WSConnectErrorMsg:
		m.state = StateDisconnected
		m.err = msg.err
		return m, nil

	case WSEventMsg:
		if err := m.room.Apply(msg.env); err != nil {
			m.err = err
		}

		m.refresh()
		return m, m.ws.WaitForEvent()

	case WSClosedMsg:
		m.state = StateDisconnected
		return m, nil

	case StatsMsg:
		m.room.Capacity = msg.stats.Capacity
		m.room.trim()
		m.refresh()
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.state != StateConnecting {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if m.err != nil && m.state == StateDisconnected && m.room.Name == "" {
		return errorView(m.err)
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(borderStyle.Width(max(m.width-2, 20)).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[Enter: Send] [/help: Commands] [Ctrl+C: Exit]"))

	return b.String()
}

// handles a submitted line of input
func (m *Model) submit() tea.Cmd {
	action, err := parseInput(m.input.Value())
	m.input.SetValue("")
	m.err = nil
	m.room.LastError = ""

	if err != nil {
		m.err = err
		return nil
	}

	if action == nil {
		return nil
	}

	switch action.Local {
	case "quit":
		m.ws.Close()
		return tea.Quit

	case "help":
		m.showHelp = !m.showHelp
		m.refresh()
		return nil
	}

	return m.ws.SendCmd(action.Type, action.Payload)
}

func (m *Model) resize() {
	// header, input box (3 lines), status and help lines
	m.viewport.Width = max(m.width, 20)
	m.viewport.Height = max(m.height-6, 3)
	m.input.Width = max(m.width-8, 10)
	m.renderer = nil
	m.refresh()
}

func (m *Model) refresh() {
	if m.showHelp {
		m.viewport.SetContent(m.helpView())
		m.viewport.GotoTop()
		return
	}

	m.viewport.SetContent(renderMessages(m.room))
	m.viewport.GotoBottom()
}
