package notes

import (
	"context"
	"errors"
	"strings"
)

// Note is a server-identified text record.
type Note struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

var (
	// ErrEmptyText is returned by Add when the text is blank after trimming.
	// No remote call is made in that case.
	ErrEmptyText = errors.New("note text is empty")

	// ErrDecode wraps failures to decode a response body from the notes API.
	ErrDecode = errors.New("decode notes response")

	// ErrNotFound is returned when an id does not resolve to a known note.
	ErrNotFound = errors.New("note not found")
)

// Remote is the notes HTTP API as seen by the synchronizer.
type Remote interface {
	List(ctx context.Context) ([]Note, error)
	Create(ctx context.Context, text string) (Note, error)
	Delete(ctx context.Context, id string) error
}

// IsBlank reports whether text has no content once surrounding whitespace is
// removed.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
