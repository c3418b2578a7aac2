// Package matcher selects the FAQ entry whose question is lexically closest
// to a free-text query.
//
// Questions and the query are normalized, weighted as TF-IDF vectors over
// whitespace-delimited terms minus stop words, and compared by cosine
// similarity. The highest score wins; ties go to the lowest index, and a query
// sharing no term with any question selects entry 0 unless a fallback answer
// is configured.
package matcher

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"novabot/internal/domain"
	"novabot/internal/embedding"
	"novabot/internal/embedding/tfidf"
	"novabot/internal/textnorm"
	"novabot/internal/vectorstore"
	"novabot/internal/vectorstore/memory"
)

// IDFPolicy selects which documents contribute to inverse document frequency.
type IDFPolicy string

const (
	// IDFJoint recomputes IDF on every call over all questions plus the query.
	IDFJoint IDFPolicy = "joint"
	// IDFCorpus fits IDF once over the questions only and projects each query
	// against that fixed table.
	IDFCorpus IDFPolicy = "corpus"
)

// NoMatch is the Match.Index reported when the fallback answer was returned.
const NoMatch = -1

// ParseIDFPolicy resolves a configured policy name. Empty selects IDFJoint.
func ParseIDFPolicy(name string) (IDFPolicy, error) {
	switch IDFPolicy(name) {
	case "", IDFJoint:
		return IDFJoint, nil
	case IDFCorpus:
		return IDFCorpus, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIDFPolicy, name)
	}
}

// Matcher answers queries against a corpus. It is safe for concurrent use;
// the corpus is only read.
type Matcher struct {
	policy         IDFPolicy
	stopwords      textnorm.StopWords
	newEmbedder    embedding.Factory
	fallbackAnswer string
	workers        int
	logger         *slog.Logger

	mu    sync.Mutex
	index *corpusIndex
}

// corpusIndex is the memoized corpus side of the IDFCorpus policy. Only the
// index of the most recently matched corpus is kept.
type corpusIndex struct {
	fingerprint string
	embedder    embedding.Embedder
	store       vectorstore.Storage
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithIDFPolicy sets the IDF policy. Default is IDFJoint.
func WithIDFPolicy(p IDFPolicy) Option {
	return func(m *Matcher) error {
		policy, err := ParseIDFPolicy(string(p))
		if err != nil {
			return err
		}
		m.policy = policy
		return nil
	}
}

// WithStopWords sets the stop-word set. Default is English.
func WithStopWords(stop textnorm.StopWords) Option {
	return func(m *Matcher) error {
		m.stopwords = stop
		return nil
	}
}

// WithEmbedderFactory overrides how vectorizers are built.
func WithEmbedderFactory(f embedding.Factory) Option {
	return func(m *Matcher) error {
		if f != nil {
			m.newEmbedder = f
		}
		return nil
	}
}

// WithFallbackAnswer makes the matcher return answer instead of entry 0 when
// no question shares a term with the query. Empty disables it.
func WithFallbackAnswer(answer string) Option {
	return func(m *Matcher) error {
		m.fallbackAnswer = answer
		return nil
	}
}

// WithWorkers sets the worker pool size used by MatchAll.
// Default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(m *Matcher) error {
		if n < 1 {
			n = 1
		}
		m.workers = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// New creates a matcher.
func New(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		policy:    IDFJoint,
		stopwords: textnorm.EnglishStopWords(),
		workers:   runtime.NumCPU(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if m.newEmbedder == nil {
		stop := m.stopwords
		m.newEmbedder = func() embedding.Embedder { return tfidf.NewEmbedder(tfidf.WithStopWords(stop)) }
	}
	return m, nil
}

// Policy returns the configured IDF policy.
func (m *Matcher) Policy() IDFPolicy { return m.policy }

// Match returns the answer of the corpus entry closest to query.
func (m *Matcher) Match(query string, corpus domain.Corpus) (string, error) {
	match, err := m.Best(query, corpus)
	if err != nil {
		return "", err
	}
	return match.Entry.Answer, nil
}

// Best returns the closest corpus entry together with its index and score.
func (m *Matcher) Best(query string, corpus domain.Corpus) (domain.Match, error) {
	if corpus.Len() == 0 {
		return domain.Match{}, ErrEmptyCorpus
	}
	normalized := textnorm.Normalize(query)

	var (
		match domain.Match
		err   error
	)
	switch m.policy {
	case IDFCorpus:
		match, err = m.bestCorpusIDF(normalized, corpus)
	default:
		match, err = m.bestJointIDF(normalized, corpus)
	}
	if err != nil {
		return domain.Match{}, err
	}

	if match.Score == 0 && m.fallbackAnswer != "" {
		m.logger.Debug("no shared terms, returning fallback answer", "query", query)
		return domain.Match{Index: NoMatch, Entry: domain.QAEntry{Answer: m.fallbackAnswer}}, nil
	}
	m.logger.Debug("query matched", "query", query, "index", match.Index, "score", match.Score, "policy", m.policy)
	return match, nil
}

func (m *Matcher) bestJointIDF(query string, corpus domain.Corpus) (domain.Match, error) {
	questions := corpus.Questions()
	docs := make([]string, 0, len(questions)+1)
	for _, q := range questions {
		docs = append(docs, textnorm.Normalize(q))
	}
	docs = append(docs, query)

	emb := m.newEmbedder()
	if err := emb.Prepare(docs); err != nil {
		return domain.Match{}, err
	}
	store, err := buildStore(emb, corpus.Entries(), docs[:len(questions)])
	if err != nil {
		return domain.Match{}, err
	}
	qv, err := emb.Embed(query)
	if err != nil {
		return domain.Match{}, err
	}
	return store.Best(qv)
}

func (m *Matcher) bestCorpusIDF(query string, corpus domain.Corpus) (domain.Match, error) {
	idx, err := m.indexFor(corpus)
	if err != nil {
		return domain.Match{}, err
	}
	qv, err := idx.embedder.Embed(query)
	if err != nil {
		return domain.Match{}, err
	}
	return idx.store.Best(qv)
}

func (m *Matcher) indexFor(corpus domain.Corpus) (*corpusIndex, error) {
	key := corpus.Fingerprint()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index != nil && m.index.fingerprint == key {
		return m.index, nil
	}

	questions := corpus.Questions()
	docs := make([]string, len(questions))
	for i, q := range questions {
		docs[i] = textnorm.Normalize(q)
	}
	emb := m.newEmbedder()
	if err := emb.Prepare(docs); err != nil {
		return nil, err
	}
	store, err := buildStore(emb, corpus.Entries(), docs)
	if err != nil {
		return nil, err
	}
	idx := &corpusIndex{fingerprint: key, embedder: emb, store: store}
	m.index = idx
	m.logger.Debug("corpus index built", "fingerprint", key, "entries", corpus.Len(), "dimension", emb.Dimension())
	return idx, nil
}

func buildStore(emb embedding.Embedder, entries []domain.QAEntry, docs []string) (vectorstore.Storage, error) {
	store := memory.NewStorage()
	if err := store.Init(emb.Dimension()); err != nil {
		return nil, err
	}
	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		v, err := emb.Embed(doc)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	if err := store.Upsert(entries, vectors); err != nil {
		return nil, err
	}
	return store, nil
}
