package matcher

import "errors"

var (
	// ErrEmptyCorpus is returned when a match is requested against a corpus
	// with no usable entries.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrUnknownIDFPolicy is returned for an IDF policy other than joint or corpus.
	ErrUnknownIDFPolicy = errors.New("unknown IDF policy")
)
