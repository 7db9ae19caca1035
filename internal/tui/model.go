package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea model for an interactive session: a transcript of
// past commands and replies above a single-line prompt.
type Model struct {
	d          Dispatcher
	input      textinput.Model
	styles     Styles
	greeting   string
	transcript []string
	height     int
	done       bool // An exit command was dispatched.
	aborted    bool // The user quit with ctrl+c or esc.
	err        error
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPrompt sets the text shown before the input field.
func WithPrompt(prompt string) ModelOption {
	return func(m *Model) { m.input.Prompt = prompt }
}

// WithGreeting sets the banner shown above the transcript.
func WithGreeting(greeting string) ModelOption {
	return func(m *Model) { m.greeting = greeting }
}

// WithStyles sets reply and prompt styles.
func WithStyles(s Styles) ModelOption {
	return func(m *Model) { m.styles = s }
}

// NewModel creates a Model feeding input lines to d.
func NewModel(d Dispatcher, opts ...ModelOption) Model {
	in := textinput.New()
	in.Prompt = ""
	in.Focus()

	m := Model{d: d, input: in}
	for _, opt := range opts {
		opt(&m)
	}
	m.input.PromptStyle = m.styles.Prompt
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the current input line.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.transcript = append(m.transcript, m.styles.Prompt.Render(m.input.Prompt)+line)

	reply, err := m.d.Dispatch(line)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.transcript = append(m.transcript, strings.Split(m.styles.Reply(reply), "\n")...)

	if m.d.Terminated() {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the greeting, the transcript tail that fits the window, and
// the prompt while the session is live.
func (m Model) View() string {
	var b strings.Builder

	lines := m.transcript
	if m.height > 0 {
		// Greeting and prompt take a line each.
		room := max(m.height-2, 0)
		if len(lines) > room {
			lines = lines[len(lines)-room:]
		}
	}

	if m.greeting != "" {
		b.WriteString(m.styles.Info.Render(m.greeting))
		b.WriteString("\n")
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if !m.done && !m.aborted && m.err == nil {
		b.WriteString(m.input.View())
	}
	return b.String()
}

// Result reports how the session ended: nil after an exit command,
// the dispatch error if one stopped it, ErrInputClosed otherwise.
func (m Model) Result() error {
	switch {
	case m.err != nil:
		return m.err
	case m.done:
		return nil
	default:
		return ErrInputClosed
	}
}
