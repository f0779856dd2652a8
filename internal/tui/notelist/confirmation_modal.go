package notelist

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scribble/internal/notes"
	"scribble/internal/tui/theme"
)

// maxPreviewLines bounds how much of a long note the dialog shows.
const maxPreviewLines = 4

// DeleteConfirm asks before a note is deleted. It holds the note it was
// opened for, so the answer always refers to that note even if the list
// changes underneath it.
type DeleteConfirm struct {
	Note  notes.Note
	Width int
}

// ConfirmationResultMsg carries the answer for the note with ID.
type ConfirmationResultMsg struct {
	ID        string
	Confirmed bool
}

// NewDeleteConfirm opens the dialog for n
func NewDeleteConfirm(n notes.Note, width int) *DeleteConfirm {
	return &DeleteConfirm{Note: n, Width: width}
}

// Update answers on y/enter or n/esc. Other keys are swallowed.
func (d *DeleteConfirm) Update(msg tea.KeyMsg) tea.Cmd {
	var confirmed bool
	switch msg.String() {
	case "y", "Y", "enter":
		confirmed = true
	case "n", "N", "esc":
	default:
		return nil
	}

	result := ConfirmationResultMsg{ID: d.Note.ID, Confirmed: confirmed}
	return func() tea.Msg { return result }
}

// View renders the dialog: the short id, a wrapped preview of the text and
// the answer keys.
func (d *DeleteConfirm) View() string {
	inner := max(d.Width-6, 10) // border (2) + padding (4)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Delete note") + " " + theme.NoteID.Render(shortID(d.Note.ID)) + "\n\n")
	b.WriteString(preview(d.Note.Text, inner) + "\n\n")
	b.WriteString(theme.Ok.Render("[y]") + " delete  " + theme.Error.Render("[n/esc]") + " keep")

	return theme.ModalBox.Width(d.Width).Render(b.String())
}

// preview wraps text to width and keeps at most maxPreviewLines lines,
// marking the cut with an ellipsis.
func preview(text string, width int) string {
	wrapped := lipgloss.NewStyle().Width(width).Render(oneLine(text))
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= maxPreviewLines {
		return wrapped
	}
	lines = lines[:maxPreviewLines]
	last := []rune(strings.TrimRight(lines[maxPreviewLines-1], " "))
	if len(last) > width-1 {
		last = last[:width-1]
	}
	lines[maxPreviewLines-1] = string(last) + "…"
	return strings.Join(lines, "\n")
}
