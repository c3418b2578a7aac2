package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novabot/internal/domain"
)

type stubAnswerer struct {
	match domain.Match
	err   error
	calls []string
}

func (s *stubAnswerer) Ask(query string) (domain.Match, error) {
	s.calls = append(s.calls, query)
	return s.match, s.err
}

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, PageHome, s.Page)
	assert.False(t, s.ChatOpen)
	require.Len(t, s.Turns, 1)
	assert.Equal(t, RoleAssistant, s.Turns[0].Role)
	assert.Equal(t, Greeting, s.Turns[0].Text)
	assert.NotEqual(t, New().ID, s.ID)
}

func TestNavigate(t *testing.T) {
	s := New()
	for _, p := range Pages {
		next, err := s.Navigate(p)
		require.NoError(t, err)
		assert.Equal(t, p, next.Page)
	}

	next, err := s.Navigate("LOANS")
	require.NoError(t, err)
	assert.Equal(t, PageLoans, next.Page)

	same, err := s.Navigate("casino")
	assert.ErrorIs(t, err, ErrUnknownPage)
	assert.Equal(t, PageHome, same.Page)
	assert.Equal(t, PageHome, s.Page)
}

func TestChatToggle(t *testing.T) {
	s := New()
	opened := s.OpenChat()
	assert.True(t, opened.ChatOpen)
	assert.False(t, s.ChatOpen)
	assert.False(t, opened.CloseChat().ChatOpen)
	assert.True(t, s.ToggleChat().ChatOpen)
	assert.False(t, s.ToggleChat().ToggleChat().ChatOpen)
}

func TestReply_CopiesTranscript(t *testing.T) {
	s := New()
	next := s.Reply("  hello ", "hi")
	require.Len(t, next.Turns, 3)
	assert.Len(t, s.Turns, 1)
	assert.Equal(t, "hello", next.Turns[1].Text)
	assert.Equal(t, RoleUser, next.Turns[1].Role)
	assert.Equal(t, "hi", next.Turns[2].Text)

	// appending to one branch must not leak into another
	a := next.Reply("a", "1")
	b := next.Reply("b", "2")
	assert.Equal(t, "a", a.Turns[3].Text)
	assert.Equal(t, "b", b.Turns[3].Text)

	assert.Len(t, s.Reply("   ", "ignored").Turns, 1)
}

func TestAsk(t *testing.T) {
	stub := &stubAnswerer{match: domain.Match{Index: 2, Score: 0.75, Entry: domain.QAEntry{Question: "q", Answer: "answer"}}}
	s := New().Ask(" What is NovaBank? ", stub)
	require.Len(t, s.Turns, 3)
	assert.Equal(t, []string{"What is NovaBank?"}, stub.calls)
	assert.Equal(t, "answer", s.Turns[2].Text)
	assert.InDelta(t, 0.75, s.LastScore(), 1e-12)

	blank := New().Ask("\t", stub)
	assert.Len(t, blank.Turns, 1)
	assert.Len(t, stub.calls, 1)

	failing := &stubAnswerer{err: errors.New("empty corpus")}
	s = New().Ask("balance", failing)
	require.Len(t, s.Turns, 3)
	assert.Equal(t, UnavailableMessage, s.Turns[2].Text)
	assert.Zero(t, s.LastScore())
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Investments", PageInvestments.Title())
	assert.Equal(t, "", Page("").Title())
}

func TestRecord(t *testing.T) {
	s := New().Record("loan?", domain.Match{Score: 0.5, Entry: domain.QAEntry{Answer: "Apply online."}})
	require.Len(t, s.Turns, 3)
	assert.Equal(t, "Apply online.", s.Turns[2].Text)
	assert.InDelta(t, 0.5, s.LastScore(), 1e-12)
}
