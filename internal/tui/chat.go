// Package tui is a terminal client for the portfolio assistant.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/chat"
)

const (
	headerHeight = 3
	inputHeight  = 3
	footerHeight = 1
)

// Options tune the terminal client.
type Options struct {
	Pacing chat.Pacing
	// Style is a glamour style name ("dark", "light", "notty") or "auto".
	Style string
}

// replyMsg delivers a reply once its typing delay has elapsed.
type replyMsg struct {
	result chat.Result
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	userLabel      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)
	assistantLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")).MarginTop(1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	inputBox       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
)

// Model is the bubbletea model of the chat window.
type Model struct {
	responder *chat.Responder
	pacing    chat.Pacing
	style     string

	conv     chat.Conversation
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	name     string
	thinking bool
	ready    bool
	width    int
	height   int
}

// New returns a chat model over r. The assistant opens with its greeting.
func New(r *chat.Responder, opts Options) Model {
	if opts.Style == "" {
		opts.Style = "dark"
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about skills, projects, experience... (Enter to send, Esc to quit)"
	ti.Prompt = "│ "
	ti.CharLimit = 1000
	ti.Width = 76
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = assistantLabel

	m := Model{
		responder: r,
		pacing:    opts.Pacing,
		style:     opts.Style,
		input:     ti,
		viewport:  viewport.New(80, 20),
		spinner:   sp,
		name:      r.Profile().Name,
		width:     80,
	}
	m.renderer = newRenderer(m.style, 76)

	greeting := r.Respond("hello")
	m.conv.Append(chat.RoleAssistant, greeting.Text)
	m.viewport.SetContent(m.renderHistory())
	return m
}

func newRenderer(style string, wrap int) *glamour.TermRenderer {
	styleOpt := glamour.WithStylePath(style)
	if style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.thinking {
				return m, nil
			}
			return m.submit()
		}
		if !m.thinking {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := msg.Height - headerHeight - inputHeight - footerHeight
		if vpHeight < 3 {
			vpHeight = 3
		}
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = vpHeight
		m.input.Width = msg.Width - 6
		if wrap := msg.Width - 6; wrap > 20 {
			m.renderer = newRenderer(m.style, wrap)
		}
		m.ready = true
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.thinking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case replyMsg:
		m.thinking = false
		m.conv.Append(chat.RoleAssistant, msg.result.Text)
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit sends the typed line. The reply is computed now but revealed after
// the pacing delay while the spinner runs.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if text == "/quit" || text == "/exit" {
		return m, tea.Quit
	}

	m.input.Reset()
	m.conv.Append(chat.RoleUser, text)
	res := m.responder.Reply(m.conv.Turns())

	m.thinking = true
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.spinner.Tick,
		tea.Tick(m.pacing.Delay(res.Text), func(time.Time) tea.Msg {
			return replyMsg{result: res}
		}),
	)
}

// Turns returns the conversation so far.
func (m Model) Turns() []chat.Turn {
	return m.conv.Turns()
}

func (m Model) renderHistory() string {
	var sb strings.Builder
	for _, t := range m.conv.Turns() {
		if t.Role == chat.RoleUser {
			sb.WriteString(userLabel.Render("You") + "\n")
			sb.WriteString(t.Content + "\n")
			continue
		}
		sb.WriteString(assistantLabel.Render(m.name+"'s assistant") + "\n")
		sb.WriteString(m.renderMarkdown(t.Content))
	}
	return sb.String()
}

func (m Model) renderMarkdown(content string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = content + "\n"
		}
	}()
	if m.renderer == nil {
		return content + "\n"
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return rendered
}

func (m Model) View() string {
	header := titleStyle.Render("Chat with "+m.name) + "\n" +
		subtitleStyle.Render("Answers come from a fixed portfolio knowledge base.") + "\n"

	body := m.viewport.View()
	if m.thinking {
		body += "\n" + m.spinner.View() + " typing..."
	}

	footer := footerStyle.Render("Enter send · Esc quit · ↑/↓ scroll")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		inputBox.Render(m.input.View()),
		footer,
	)
}

// Run starts the full-screen chat and blocks until the user quits.
func Run(r *chat.Responder, opts Options) error {
	p := tea.NewProgram(New(r, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
