package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"novabot/internal/corpus"
	"novabot/internal/domain"
	"novabot/internal/matcher"
	"novabot/internal/suggest"
)

// Assistant owns the loaded FAQ corpus and answers questions against it.
type Assistant struct {
	loader    *corpus.Loader
	matcher   *matcher.Matcher
	suggester *suggest.FrequencySuggester
	logger    *slog.Logger

	mu     sync.RWMutex
	corpus domain.Corpus
}

func NewAssistant(loader *corpus.Loader, m *matcher.Matcher, suggester *suggest.FrequencySuggester, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{loader: loader, matcher: m, suggester: suggester, logger: logger}
}

// LoadCorpus reads the corpus at path (the embedded corpus when empty) and
// returns a one-line summary of what was loaded. An unreadable path is logged
// and the embedded corpus is used instead.
func (a *Assistant) LoadCorpus(path string) (string, error) {
	c, err := a.loader.Load(path)
	origin := path
	if origin == "" {
		origin = "builtin"
	}
	if err != nil {
		if !errors.Is(err, corpus.ErrSourceUnavailable) {
			return "", err
		}
		a.logger.Warn("falling back to builtin corpus", "err", err)
		origin = "builtin"
	}

	a.mu.Lock()
	a.corpus = c
	a.mu.Unlock()

	summary := fmt.Sprintf("loaded %d entries from %s (fingerprint %s, idf %s)", c.Len(), origin, c.Fingerprint(), a.matcher.Policy())
	a.logger.Info("corpus ready", "entries", c.Len(), "origin", origin, "fingerprint", c.Fingerprint())
	return summary, nil
}

// Corpus returns the loaded corpus. It is empty before LoadCorpus.
func (a *Assistant) Corpus() domain.Corpus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.corpus
}

// Ask returns the best match for query.
func (a *Assistant) Ask(query string) (domain.Match, error) {
	return a.matcher.Best(query, a.Corpus())
}

// Answer returns only the answer text of the best match.
func (a *Assistant) Answer(query string) (string, error) {
	return a.matcher.Match(query, a.Corpus())
}

// Suggestions returns up to n corpus questions to offer as prompts.
func (a *Assistant) Suggestions(n int) []string {
	return a.suggester.Suggest(a.Corpus(), n)
}
