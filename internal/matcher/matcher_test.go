package matcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novabot/internal/corpus"
	"novabot/internal/domain"
	"novabot/internal/textnorm"
)

const (
	balanceAnswer = "Check via app or text BAL to 29292."
	loanAnswer    = "Apply online or via the app."
)

func bankCorpus() domain.Corpus {
	return domain.NewCorpus([]domain.QAEntry{
		{Question: "How do I check my balance?", Answer: balanceAnswer},
		{Question: "How do I apply for a loan?", Answer: loanAnswer},
	})
}

func policies() []IDFPolicy { return []IDFPolicy{IDFJoint, IDFCorpus} }

func newMatcher(t *testing.T, opts ...Option) *Matcher {
	t.Helper()
	m, err := New(opts...)
	require.NoError(t, err)
	return m
}

func TestMatch_Scenarios(t *testing.T) {
	for _, policy := range policies() {
		t.Run(string(policy), func(t *testing.T) {
			m := newMatcher(t, WithIDFPolicy(policy))
			c := bankCorpus()

			tests := []struct {
				name  string
				query string
				want  string
			}{
				{"balance question", "what's my balance", balanceAnswer},
				{"loan question", "I need a LOAN!", loanAnswer},
				{"empty query falls to first entry", "", balanceAnswer},
				{"whitespace query", "   \t ", balanceAnswer},
				{"stop words and punctuation only", "the and of!!", balanceAnswer},
				{"no shared vocabulary", "mortgage rates", balanceAnswer},
				{"no-break space separates terms", "apply\u00a0loan", loanAnswer},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := m.Match(tt.query, c)
					require.NoError(t, err)
					assert.Equal(t, tt.want, got)
				})
			}
		})
	}
}

func TestMatch_ExactQuestionReturnsItsAnswer(t *testing.T) {
	c := corpus.Builtin()
	stop := textnorm.EnglishStopWords()
	for _, policy := range policies() {
		m := newMatcher(t, WithIDFPolicy(policy))
		for i, e := range c.Entries() {
			if len(textnorm.Tokenize(textnorm.Normalize(e.Question), stop)) == 0 {
				continue
			}
			match, err := m.Best(e.Question, c)
			require.NoError(t, err)
			assert.Equal(t, i, match.Index, "policy %s question %q", policy, e.Question)
			assert.InDelta(t, 1.0, match.Score, 1e-9)

			// case and punctuation do not matter
			shouted, err := m.Match("  "+e.Question+"!!! ", c)
			require.NoError(t, err)
			assert.Equal(t, e.Answer, shouted)
		}
	}
}

func TestMatch_DuplicateQuestionPrefersEarliest(t *testing.T) {
	c := domain.NewCorpus([]domain.QAEntry{
		{Question: "How do I reset my password?", Answer: "first"},
		{Question: "How do I check my balance?", Answer: "balance"},
		{Question: "How do I reset my password?", Answer: "second"},
	})
	for _, policy := range policies() {
		m := newMatcher(t, WithIDFPolicy(policy))
		match, err := m.Best("how do i reset my password", c)
		require.NoError(t, err)
		assert.Equal(t, 0, match.Index)
		assert.Equal(t, "first", match.Entry.Answer)
	}
}

func TestMatch_EmptyCorpus(t *testing.T) {
	m := newMatcher(t)
	for _, q := range []string{"", "balance", "the and of!!"} {
		_, err := m.Match(q, domain.NewCorpus(nil))
		assert.ErrorIs(t, err, ErrEmptyCorpus)
	}
}

func TestMatch_FallbackAnswer(t *testing.T) {
	m := newMatcher(t, WithFallbackAnswer("Sorry, I don't understand."))

	match, err := m.Best("mortgage rates", bankCorpus())
	require.NoError(t, err)
	assert.Equal(t, NoMatch, match.Index)
	assert.Equal(t, "Sorry, I don't understand.", match.Entry.Answer)

	got, err := m.Match("balance", bankCorpus())
	require.NoError(t, err)
	assert.Equal(t, balanceAnswer, got)
}

func TestMatch_CorpusIndexMemoized(t *testing.T) {
	m := newMatcher(t, WithIDFPolicy(IDFCorpus))
	c := bankCorpus()

	_, err := m.Match("balance", c)
	require.NoError(t, err)
	first := m.index
	require.NotNil(t, first)
	_, err = m.Match("loan", c)
	require.NoError(t, err)
	assert.Same(t, first, m.index)

	// a different corpus replaces the cached index instead of adding one
	_, err = m.Match("balance", corpus.Builtin())
	require.NoError(t, err)
	require.NotSame(t, first, m.index)
	assert.Equal(t, corpus.Builtin().Fingerprint(), m.index.fingerprint)

	got, err := m.Match("loan", c)
	require.NoError(t, err)
	assert.Equal(t, loanAnswer, got)
	assert.Equal(t, c.Fingerprint(), m.index.fingerprint)
}

func TestMatch_JointPolicyKeepsNoIndex(t *testing.T) {
	m := newMatcher(t)
	_, err := m.Match("balance", bankCorpus())
	require.NoError(t, err)
	assert.Nil(t, m.index)
	assert.Equal(t, IDFJoint, m.Policy())
}

func TestNew_Options(t *testing.T) {
	_, err := New(WithIDFPolicy("bm25"))
	assert.ErrorIs(t, err, ErrUnknownIDFPolicy)

	m, err := New(WithLogger(nil), WithWorkers(0), WithStopWords(textnorm.NoStopWords()))
	require.NoError(t, err)
	assert.Equal(t, 1, m.workers)

	// without stop words "how do i" now carries weight and still picks entry 0
	got, err := m.Match("how do i", bankCorpus())
	require.NoError(t, err)
	assert.Equal(t, balanceAnswer, got)
}

func TestMatchAll(t *testing.T) {
	m := newMatcher(t, WithWorkers(4))
	queries := []string{"balance", "loan", "", "check my balance please", "apply loan"}

	results, err := m.MatchAll(context.Background(), queries, bankCorpus())
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	want := []string{balanceAnswer, loanAnswer, balanceAnswer, balanceAnswer, loanAnswer}
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, queries[i], r.Query)
		assert.Equal(t, want[i], r.Match.Entry.Answer)
	}
}

func TestMatchAll_Errors(t *testing.T) {
	m := newMatcher(t)

	_, err := m.MatchAll(context.Background(), []string{"x"}, domain.NewCorpus(nil))
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := m.MatchAll(ctx, []string{"balance", "loan"}, bankCorpus())
	require.NoError(t, err)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}

	empty, err := m.MatchAll(context.Background(), nil, bankCorpus())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
