package tui

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"errkb/internal/chat"
)

// ChatPort is the TUI-facing side of the chat handler.
type ChatPort interface {
	Handle(ctx context.Context, msg chat.Message) string
}

// replyMsg carries a handler reply back into the update loop.
type replyMsg struct {
	text string
}

type entry struct {
	fromUser bool
	text     string
}

// Model is the Bubble Tea model for the chat console.
type Model struct {
	ctx        context.Context
	handler    ChatPort
	senderID   string
	input      textinput.Model
	viewport   viewport.Model
	transcript []entry
	codeRe     *regexp.Regexp
	status     string
	waiting    bool
	ready      bool
}

// New creates a new chat console. Messages are sent as senderID; prefix is
// used to highlight error codes in replies.
func New(ctx context.Context, handler ChatPort, senderID, prefix string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type an error code or /search <keyword> and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		ctx:      ctx,
		handler:  handler,
		senderID: senderID,
		input:    ti,
		viewport: vp,
		codeRe:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(prefix) + `[0-9]+`),
		status:   "Ready. /help lists commands, Ctrl+C quits.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and reply events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around transcript and input boxes
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		totalHeaderLines := 1 // header
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + ih + 1
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.refresh()
		return m, nil
	case replyMsg:
		m.waiting = false
		m.status = "Ready."
		m.transcript = append(m.transcript, entry{text: msg.text})
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.input.SetValue("")
			m.waiting = true
			m.status = "Working..."
			m.transcript = append(m.transcript, entry{fromUser: true, text: text})
			m.refresh()
			return m, m.send(text)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send runs the handler off the update loop; lookups may rebuild the store
// or call the translator.
func (m Model) send(text string) tea.Cmd {
	handler, ctx, sender := m.handler, m.ctx, m.senderID
	return func() tea.Msg {
		return replyMsg{text: handler.Handle(ctx, chat.Message{SenderID: sender, Text: text})}
	}
}

// View renders the console layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Error Code Knowledge Base")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	parts := make([]string, 0, len(m.transcript))
	for _, e := range m.transcript {
		if e.fromUser {
			parts = append(parts, userStyle.Render("> "+e.text))
			continue
		}
		parts = append(parts, highlightCodes(m.codeRe, e.text))
	}
	return strings.Join(parts, "\n\n")
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	highlightStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func highlightCodes(re *regexp.Regexp, text string) string {
	return re.ReplaceAllStringFunc(text, func(code string) string {
		return highlightStyle.Render(code)
	})
}
