package server

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"scribble/internal/notes"
)

// Store is the in-memory note collection served by the development server.
// Notes are kept in creation order.
type Store struct {
	mu    sync.RWMutex
	notes []notes.Note
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// List returns a snapshot of all notes.
func (s *Store) List() []notes.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.notes)
	if out == nil {
		out = []notes.Note{}
	}
	return out
}

// Create stores a note with a fresh random id.
func (s *Store) Create(text string) notes.Note {
	n := notes.Note{ID: uuid.NewString(), Text: text}

	s.mu.Lock()
	s.notes = append(s.notes, n)
	s.mu.Unlock()

	return n
}

// Delete removes the note with the given id and reports whether one existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.notes)
	s.notes = slices.DeleteFunc(s.notes, func(n notes.Note) bool { return n.ID == id })
	return len(s.notes) != before
}

// Len returns the number of stored notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}
