package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"novabot/internal/session"
)

// AssistantPort is the TUI-facing subset of the assistant service.
type AssistantPort interface {
	session.Answerer
	Suggestions(n int) []string
}

// Model is the Bubble Tea model for the NovaBank dashboard.
type Model struct {
	assistant   AssistantPort
	state       session.State
	input       textinput.Model
	viewport    viewport.Model
	score       progress.Model
	suggestions []string
	suggestion  int
	summary     string
	status      string
	width       int
	ready       bool
}

// New creates a new TUI model instance.
func New(assistant AssistantPort, summary string, suggestions int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask NovaBot a question and press Enter"
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return Model{
		assistant:   assistant,
		state:       session.New(),
		input:       ti,
		viewport:    vp,
		score:       bar,
		suggestions: assistant.Suggestions(suggestions),
		suggestion:  -1,
		summary:     summary,
		status:      "ctrl+t opens the chat with NovaBot.",
	}
}

// State returns the dashboard state.
func (m Model) State() session.State { return m.state }

// Init initializes the model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		_, ch := chatBoxStyle.GetFrameSize()
		// tabs, page body, score, suggestions, input and status
		reserved := 18 + ch
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = max(3, msg.Height-reserved)
		m.score.Width = max(10, min(60, msg.Width-20))
		m.refreshTranscript()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyCtrlT:
			return m.setChat(!m.state.ChatOpen)
		case tea.KeyEsc:
			return m.setChat(false)
		case tea.KeyTab:
			return m.shiftPage(1), nil
		case tea.KeyShiftTab:
			return m.shiftPage(-1), nil
		}
		if !m.state.ChatOpen {
			return m.handlePageKey(msg), nil
		}
		switch msg.Type {
		case tea.KeyEnter:
			return m.ask(), nil
		case tea.KeyUp:
			return m.cycleSuggestion(-1), nil
		case tea.KeyDown:
			return m.cycleSuggestion(1), nil
		}
	}
	if !m.state.ChatOpen {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handlePageKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyLeft:
		return m.shiftPage(-1)
	case tea.KeyRight:
		return m.shiftPage(1)
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && int(msg.Runes[0]-'1') < len(session.Pages) {
			return m.gotoPage(session.Pages[msg.Runes[0]-'1'])
		}
	}
	return m
}

func (m Model) shiftPage(delta int) Model {
	i := pageIndex(m.state.Page)
	n := len(session.Pages)
	return m.gotoPage(session.Pages[((i+delta)%n+n)%n])
}

func (m Model) gotoPage(p session.Page) Model {
	st, err := m.state.Navigate(p)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.state = st
	return m
}

func (m Model) setChat(open bool) (Model, tea.Cmd) {
	if open {
		m.state = m.state.OpenChat()
		m.refreshTranscript()
		m.status = "Enter asks, up/down picks a suggestion, esc closes the chat."
		return m, m.input.Focus()
	}
	m.state = m.state.CloseChat()
	m.input.Blur()
	m.status = "ctrl+t opens the chat with NovaBot."
	return m, nil
}

func (m Model) ask() Model {
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		return m
	}
	m.state = m.state.Ask(q, m.assistant)
	m.input.Reset()
	m.suggestion = -1
	last := m.state.Turns[len(m.state.Turns)-1]
	if last.Text == session.UnavailableMessage {
		m.status = "The assistant is unavailable."
	} else {
		m.status = fmt.Sprintf("Answered %q (match %.2f)", q, last.Score)
	}
	m.refreshTranscript()
	return m
}

func (m Model) cycleSuggestion(delta int) Model {
	if len(m.suggestions) == 0 {
		return m
	}
	n := len(m.suggestions)
	if m.suggestion < 0 && delta < 0 {
		m.suggestion = n - 1
	} else {
		m.suggestion = ((m.suggestion+delta)%n + n) % n
	}
	m.input.SetValue(m.suggestions[m.suggestion])
	m.input.CursorEnd()
	return m
}

func (m *Model) refreshTranscript() {
	var b strings.Builder
	for i, t := range m.state.Turns {
		if i > 0 {
			b.WriteString("\n")
		}
		if t.Role == session.RoleUser {
			b.WriteString(userStyle.Render("You: ") + t.Text)
		} else {
			b.WriteString(botStyle.Render("NovaBot: ") + t.Text)
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(max(20, m.viewport.Width)).Render(b.String()))
	m.viewport.GotoBottom()
}

// View renders the dashboard.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("NovaBank") + "  " + summaryStyle.Render(m.summary) + "\n")
	b.WriteString(m.renderTabs() + "\n\n")
	b.WriteString(renderPage(m.state.Page, m.width))
	if m.state.ChatOpen {
		b.WriteString("\n" + chatBoxStyle.Render(m.renderChat()))
	}
	b.WriteString("\n" + statusStyle.Render(m.status))
	b.WriteString("\n" + helpStyle.Render("←/→ or 1-6 pages • tab cycles • ctrl+t chat • ctrl+c quit"))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(session.Pages))
	for i, p := range session.Pages {
		label := fmt.Sprintf("%d %s", i+1, p.Title())
		if p == m.state.Page {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderChat() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("NovaBot") + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(summaryStyle.Render("match ") + m.score.ViewAs(m.state.LastScore()) + "\n")
	if len(m.suggestions) > 0 {
		b.WriteString(summaryStyle.Render("Try asking:") + "\n")
		for i, s := range m.suggestions {
			line := "  " + s
			if i == m.suggestion {
				line = highlightStyle.Render("› " + s)
			}
			b.WriteString(line + "\n")
		}
	}
	b.WriteString(m.input.View())
	return b.String()
}

func renderPage(p session.Page, width int) string {
	c, ok := pageContents[p]
	if !ok {
		return ""
	}
	w := max(40, width-4)
	var b strings.Builder
	b.WriteString(headingStyle.Render(c.heading) + "\n")
	if c.intro != "" {
		b.WriteString(lipgloss.NewStyle().Width(w).Render(c.intro) + "\n")
	}
	for _, f := range c.features {
		b.WriteString("\n" + featureStyle.Render(f.title) + "  " + summaryStyle.Render(f.blurb) + "\n")
		for _, pt := range f.points {
			b.WriteString("  ✓ " + pt + "\n")
		}
	}
	return b.String()
}

func pageIndex(p session.Page) int {
	for i, known := range session.Pages {
		if known == p {
			return i
		}
	}
	return 0
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9567E3"))
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true)
	headingStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	featureStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C967E3"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	botStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9567E3"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
