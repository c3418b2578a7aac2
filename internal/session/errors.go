package session

import "errors"

var (
	// ErrUnknownPage is returned when navigating to a page that does not exist.
	ErrUnknownPage = errors.New("unknown page")
	// ErrNotFound is returned by Store.Get for missing or expired sessions.
	ErrNotFound = errors.New("session not found")
)
