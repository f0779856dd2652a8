package messages

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scribble/internal/notes"
)

// Op identifies one of the remote operations that can be in flight.
type Op int

const (
	OpRefresh Op = iota
	OpCreate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpRefresh:
		return "refresh"
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// NotesRefreshedMsg reports the end of a refresh.
type NotesRefreshedMsg struct {
	Err error
}

// NoteCreatedMsg reports the end of a create. Note is zero when Err is set.
type NoteCreatedMsg struct {
	Note notes.Note
	Err  error
}

// NoteRemovedMsg reports the end of a remote delete. The note has already
// left the local list by the time this arrives.
type NoteRemovedMsg struct {
	ID  string
	Err error
}

// ClearStatusMsg clears a transient status message if it is still the one
// identified by Seq.
type ClearStatusMsg struct {
	Seq int
}

// Refresh reloads the whole list from the server.
func Refresh(sync *notes.Synchronizer) tea.Cmd {
	return func() tea.Msg {
		return NotesRefreshedMsg{Err: sync.Refresh(context.Background())}
	}
}

// AddNote creates a note from text.
func AddNote(sync *notes.Synchronizer, text string) tea.Cmd {
	return func() tea.Msg {
		n, err := sync.Add(context.Background(), text)
		return NoteCreatedMsg{Note: n, Err: err}
	}
}

// RemoveNote drops the note locally before returning and issues the remote
// delete as a command.
func RemoveNote(sync *notes.Synchronizer, id string) tea.Cmd {
	remote := sync.StartRemove(id)
	return func() tea.Msg {
		return NoteRemovedMsg{ID: id, Err: remote(context.Background())}
	}
}

// ClearStatusAfter schedules a ClearStatusMsg.
func ClearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
