package tutor

import "errors"

var (
	// ErrMissingCorpus means a question or quiz was requested before any
	// course material was ingested.
	ErrMissingCorpus = errors.New("no course material has been ingested")

	// ErrInvalidRequest means the caller's input was malformed or out of
	// range. The wrapped message says what was wrong.
	ErrInvalidRequest = errors.New("invalid request")
)
