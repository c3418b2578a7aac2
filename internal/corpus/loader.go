package corpus

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"novabot/internal/domain"
)

// DefaultMaxEntries bounds corpus size so a match stays well under
// interactive latency.
const DefaultMaxEntries = 500

//go:embed data/novabank.txt
var builtinText string

var minimalEntry = domain.QAEntry{
	Question: "What is NovaBank?",
	Answer:   "NovaBank is a modern digital bank offering checking, savings, credit, loans, and investment services.",
}

// Builtin returns the embedded NovaBank FAQ corpus. It is never empty.
func Builtin() domain.Corpus {
	c := Parse(builtinText)
	if c.Len() == 0 {
		return domain.NewCorpus([]domain.QAEntry{minimalEntry})
	}
	return c
}

// Loader reads a corpus once at startup.
type Loader struct {
	maxEntries int
	logger     *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithMaxEntries caps the number of entries kept. Values below 1 keep the default.
func WithMaxEntries(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxEntries = n
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// NewLoader creates a corpus loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{maxEntries: DefaultMaxEntries, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses the corpus at path. An empty path selects the embedded corpus.
//
// When path cannot be read, Load returns the embedded corpus together with an
// error wrapping ErrSourceUnavailable; the returned corpus is usable either way.
func (l *Loader) Load(path string) (domain.Corpus, error) {
	if path == "" {
		return l.bound(Builtin(), "builtin"), nil
	}
	f, err := os.Open(path)
	if err != nil {
		l.logger.Warn("corpus source unreadable, using builtin corpus", "path", path, "err", err)
		return l.bound(Builtin(), "builtin"), fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	c, err := ParseReader(f)
	if err != nil {
		l.logger.Warn("corpus source unreadable, using builtin corpus", "path", path, "err", err)
		return l.bound(Builtin(), "builtin"), fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return l.bound(c, path), nil
}

func (l *Loader) bound(c domain.Corpus, origin string) domain.Corpus {
	if c.Len() > l.maxEntries {
		l.logger.Warn("corpus truncated", "origin", origin, "entries", c.Len(), "max", l.maxEntries)
		c = domain.NewCorpus(c.Entries()[:l.maxEntries])
	}
	l.logger.Debug("corpus loaded", "origin", origin, "entries", c.Len(), "fingerprint", c.Fingerprint())
	return c
}
