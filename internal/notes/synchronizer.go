package notes

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"scribble/internal/logs"
)

// Synchronizer holds the local, ordered copy of the remote note collection
// and keeps it in step with the outcome of list, create and delete calls.
//
// The local sequence is a best-effort cache. It is replaced wholesale by
// Refresh, grows by one on a successful Add, and shrinks on Remove whether or
// not the remote delete succeeds. Nothing is rolled back.
type Synchronizer struct {
	remote Remote

	mu    sync.Mutex
	notes []Note
}

// NewSynchronizer creates a Synchronizer with an empty local sequence.
func NewSynchronizer(remote Remote) *Synchronizer {
	return &Synchronizer{remote: remote}
}

// Notes returns a copy of the local sequence.
func (s *Synchronizer) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notes)
}

// Len returns the number of notes held locally.
func (s *Synchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// Get returns the local note with the given id.
func (s *Synchronizer) Get(id string) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// Refresh fetches the remote list and replaces the local sequence with it.
// On error the previous sequence is left untouched.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	fetched, err := s.remote.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh notes: %w", err)
	}

	s.mu.Lock()
	s.notes = slices.Clone(fetched)
	s.mu.Unlock()

	logs.Logger.Debug("Notes refreshed", "count", len(fetched))
	return nil
}

// Add creates a note from text and appends the server's record to the local
// sequence. Blank text returns ErrEmptyText without contacting the server.
// The text is sent as given, untrimmed.
func (s *Synchronizer) Add(ctx context.Context, text string) (Note, error) {
	if IsBlank(text) {
		return Note{}, ErrEmptyText
	}

	created, err := s.remote.Create(ctx, text)
	if err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}

	s.mu.Lock()
	s.notes = append(s.notes, created)
	s.mu.Unlock()

	logs.Logger.Debug("Note created", "id", created.ID)
	return created, nil
}

// Remove drops every local note with the given id and then asks the server
// to delete it. The local removal happens first and is kept even when the
// returned error is non-nil.
func (s *Synchronizer) Remove(ctx context.Context, id string) error {
	return s.StartRemove(id)(ctx)
}

// StartRemove performs the local half of Remove right away and returns the
// remote half, for callers that issue the network call elsewhere.
func (s *Synchronizer) StartRemove(id string) func(context.Context) error {
	s.mu.Lock()
	s.notes = slices.DeleteFunc(s.notes, func(n Note) bool { return n.ID == id })
	s.mu.Unlock()

	return func(ctx context.Context) error {
		if err := s.remote.Delete(ctx, id); err != nil {
			logs.Logger.Warn("Remote delete failed, local copy already removed", "id", id, "error", err)
			return fmt.Errorf("delete note %s: %w", id, err)
		}
		logs.Logger.Debug("Note deleted", "id", id)
		return nil
	}
}

// FindByPrefix resolves an id or id prefix against the local sequence.
// Prefixes shorter than four characters must match exactly.
func (s *Synchronizer) FindByPrefix(prefix string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []Note
	for _, n := range s.notes {
		if n.ID == prefix {
			return n, nil
		}
		if len(prefix) >= 4 && strings.HasPrefix(n.ID, prefix) {
			matches = append(matches, n)
		}
	}

	if len(matches) == 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	if len(matches) > 1 {
		return Note{}, fmt.Errorf("multiple notes match ID '%s', please be more specific", prefix)
	}
	return matches[0], nil
}
