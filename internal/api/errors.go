package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable indicates the backend could not be contacted.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrBadResponse indicates the backend returned a body that could
	// not be parsed as JSON.
	ErrBadResponse = errors.New("unparseable backend response")
)

// StatusError is returned for any non-2xx backend response. Snippet
// holds at most 200 bytes of the response body.
type StatusError struct {
	Status  int
	Snippet string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Snippet)
}

const snippetLimit = 200

func snippet(body []byte) string {
	if len(body) > snippetLimit {
		return string(body[:snippetLimit])
	}
	return string(body)
}
