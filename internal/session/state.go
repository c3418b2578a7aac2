// Package session holds the per-user dashboard state: the current page,
// whether the chat panel is open, and the chat transcript.
//
// State is a value. Every transition returns a new State and leaves the
// receiver untouched, so handlers can be tested without a UI.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"novabot/internal/domain"
)

// Page is a dashboard page.
type Page string

const (
	PageHome        Page = "home"
	PageAccounts    Page = "accounts"
	PageLoans       Page = "loans"
	PageInvestments Page = "investments"
	PageServices    Page = "services"
	PageAbout       Page = "about"
)

// Pages lists the dashboard pages in menu order.
var Pages = []Page{PageHome, PageAccounts, PageLoans, PageInvestments, PageServices, PageAbout}

// ParsePage resolves a page name case-insensitively.
func ParsePage(name string) (Page, error) {
	p := Page(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Pages {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, name)
}

// Title returns the menu label of the page.
func (p Page) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const (
	// Greeting opens every transcript.
	Greeting = "Hi there! I'm NovaBot, your AI banking assistant. How can I help you today?"
	// UnavailableMessage is recorded when no answer could be produced.
	UnavailableMessage = "Sorry, the assistant is unavailable right now. Please try again later."
)

// Turn is one message of the transcript.
type Turn struct {
	ID    uuid.UUID `json:"id"`
	Role  Role      `json:"role"`
	Text  string    `json:"text"`
	Score float64   `json:"score,omitempty"`
	At    time.Time `json:"at"`
}

// State is the dashboard state of one user.
type State struct {
	ID       uuid.UUID `json:"id"`
	Page     Page      `json:"page"`
	ChatOpen bool      `json:"chat_open"`
	Turns    []Turn    `json:"turns"`
}

// Answerer produces the best corpus match for a question.
type Answerer interface {
	Ask(query string) (domain.Match, error)
}

// New returns a fresh state on the home page with the chat closed and the
// greeting as the only turn.
func New() State {
	return State{
		ID:    uuid.New(),
		Page:  PageHome,
		Turns: []Turn{newTurn(RoleAssistant, Greeting, 0)},
	}
}

// Navigate switches to page.
func (s State) Navigate(page Page) (State, error) {
	p, err := ParsePage(string(page))
	if err != nil {
		return s, err
	}
	s.Page = p
	return s, nil
}

func (s State) OpenChat() State {
	s.ChatOpen = true
	return s
}

func (s State) CloseChat() State {
	s.ChatOpen = false
	return s
}

func (s State) ToggleChat() State {
	s.ChatOpen = !s.ChatOpen
	return s
}

// Reply records a user message and the given answer. Blank input is ignored.
func (s State) Reply(input, answer string) State {
	return s.exchange(input, answer, 0)
}

// Ask records a user message and the answer a produces for it. If a fails,
// the assistant turn carries UnavailableMessage. Blank input is ignored.
func (s State) Ask(input string, a Answerer) State {
	q := strings.TrimSpace(input)
	if q == "" {
		return s
	}
	match, err := a.Ask(q)
	if err != nil {
		return s.exchange(q, UnavailableMessage, 0)
	}
	return s.Record(q, match)
}

// Record stores a user message together with a match already computed for it.
func (s State) Record(input string, match domain.Match) State {
	return s.exchange(input, match.Entry.Answer, match.Score)
}

// LastScore returns the score of the most recent assistant turn.
func (s State) LastScore() float64 {
	for i := len(s.Turns) - 1; i >= 0; i-- {
		if s.Turns[i].Role == RoleAssistant {
			return s.Turns[i].Score
		}
	}
	return 0
}

func (s State) exchange(input, answer string, score float64) State {
	q := strings.TrimSpace(input)
	if q == "" {
		return s
	}
	turns := make([]Turn, len(s.Turns), len(s.Turns)+2)
	copy(turns, s.Turns)
	s.Turns = append(turns, newTurn(RoleUser, q, 0), newTurn(RoleAssistant, answer, score))
	return s
}

func newTurn(role Role, text string, score float64) Turn {
	return Turn{ID: uuid.New(), Role: role, Text: text, Score: score, At: time.Now().UTC()}
}
