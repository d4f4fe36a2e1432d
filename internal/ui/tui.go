// Package ui renders session output, either as plain console text or as a
// chat-style terminal UI.
package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskline/internal/session"
)

// SessionBuilder creates the session the TUI drives. The TUI supplies the
// renderer.
type SessionBuilder func(r session.Renderer) (*session.Session, error)

// RunTUI starts the chat window and blocks until the user leaves.
func RunTUI(ctx context.Context, build SessionBuilder, taskFile string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	var out bytes.Buffer
	s, err := build(NewConsole(&out))
	if err != nil {
		return err
	}

	program := tea.NewProgram(newChatModel(ctx, s, &out, taskFile), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

type speaker int

const (
	fromBot speaker = iota
	fromUser
)

type chatMessage struct {
	from   speaker
	text   string
	failed bool
}

type chatModel struct {
	ctx      context.Context
	session  *session.Session
	out      *bytes.Buffer
	input    textinput.Model
	messages []chatMessage
	taskFile string
	width    int
	height   int
	quitting bool
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	userStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	errorStyle = botStyle.
			BorderForeground(lipgloss.Color("203")).
			Foreground(lipgloss.Color("203"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

func newChatModel(ctx context.Context, s *session.Session, out *bytes.Buffer, taskFile string) *chatModel {
	ti := textinput.New()
	ti.Placeholder = "todo buy milk"
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	m := &chatModel{
		ctx:      ctx,
		session:  s,
		out:      out,
		input:    ti,
		taskFile: taskFile,
	}
	s.Greet()
	m.pushReply(false)
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	m.messages = append(m.messages, chatMessage{from: fromUser, text: line})
	res, err := m.session.Handle(m.ctx, line)
	m.pushReply(err != nil)

	if res.IsExit() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// pushReply moves whatever the session rendered into a bot message.
func (m *chatModel) pushReply(failed bool) {
	text := strings.TrimRight(m.out.String(), "\n")
	m.out.Reset()
	if text == "" {
		return
	}
	m.messages = append(m.messages, chatMessage{from: fromBot, text: text, failed: failed})
}

func (m *chatModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskline") + "\n\n")

	history := m.renderHistory()
	if m.height > 0 {
		// title (2) + input (2) + footer (1)
		history = lastLines(history, m.height-5)
	}
	b.WriteString(history)

	if m.quitting {
		return b.String() + "\n"
	}
	b.WriteString("\n" + m.input.View() + "\n\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("enter to send | esc to quit | %s", m.taskFile)))
	return b.String()
}

func (m *chatModel) renderHistory() string {
	var parts []string
	for _, msg := range m.messages {
		parts = append(parts, m.renderMessage(msg))
	}
	return strings.Join(parts, "\n")
}

func (m *chatModel) renderMessage(msg chatMessage) string {
	if msg.from == fromUser {
		return userStyle.Render("you: " + msg.text)
	}
	style := botStyle
	if msg.failed {
		style = errorStyle
	}
	if m.width > 8 {
		style = style.MaxWidth(m.width - 2)
	}
	return style.Render(msg.text)
}

func lastLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
