package corpus

import "errors"

var (
	// ErrSourceUnavailable indicates the configured corpus source could not be
	// read. The loader recovers by serving the built-in corpus.
	ErrSourceUnavailable = errors.New("corpus source unavailable")
)
